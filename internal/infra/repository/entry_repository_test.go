package repository

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/testutil"
)

func TestCountEntriesInRange(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &journalEntryRecord{})
	repo := NewEntryRepository(db)

	day := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	entries := []journalEntryRecord{
		{ID: "e1", Body: "previous evening", WrittenAt: day.Add(-30 * time.Minute)},
		{ID: "e2", Body: "midnight exactly", WrittenAt: day},
		{ID: "e3", Body: "late night", WrittenAt: day.Add(23*time.Hour + 59*time.Minute)},
		{ID: "e4", Body: "next midnight", WrittenAt: day.AddDate(0, 0, 1)},
	}
	for _, e := range entries {
		if err := db.WithContext(ctx).Create(&e).Error; err != nil {
			t.Fatalf("failed to seed entry %s: %v", e.ID, err)
		}
	}

	// The window is half-open: midnight in, next midnight out.
	count, err := repo.CountEntriesInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("CountEntriesInRange() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestCountEntriesInRangeEmpty(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &journalEntryRecord{})
	repo := NewEntryRepository(db)

	day := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	count, err := repo.CountEntriesInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("CountEntriesInRange() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
