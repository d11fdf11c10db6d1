package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/testutil"
)

func TestReminderRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	def := &domain.ReminderDefinition{
		ID:              "rem-1",
		TimeOfDay:       domain.TimeOfDay{Hour: 8, Minute: 30},
		ActiveDays:      domain.NewDaySet(0, 1, 2, 3, 4),
		IsActive:        true,
		FallbackEnabled: true,
		Label:           "Morning pages",
	}

	if err := repo.Save(ctx, def); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, "rem-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TimeOfDay != def.TimeOfDay {
		t.Errorf("TimeOfDay = %v, want %v", got.TimeOfDay, def.TimeOfDay)
	}
	if got.ActiveDays != def.ActiveDays {
		t.Errorf("ActiveDays = %v, want %v", got.ActiveDays, def.ActiveDays)
	}
	if !got.FallbackEnabled || !got.IsActive {
		t.Errorf("flags = active %v fallback %v, want both true", got.IsActive, got.FallbackEnabled)
	}
	if got.Label != def.Label {
		t.Errorf("Label = %q, want %q", got.Label, def.Label)
	}
}

func TestReminderRepositorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	def := &domain.ReminderDefinition{
		ID:         "rem-1",
		TimeOfDay:  domain.TimeOfDay{Hour: 8, Minute: 0},
		ActiveDays: domain.AllDays,
		IsActive:   true,
	}
	if err := repo.Save(ctx, def); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	def.TimeOfDay = domain.TimeOfDay{Hour: 21, Minute: 15}
	def.IsActive = false
	if err := repo.Save(ctx, def); err != nil {
		t.Fatalf("Save() update error = %v", err)
	}

	got, err := repo.Get(ctx, "rem-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TimeOfDay != (domain.TimeOfDay{Hour: 21, Minute: 15}) {
		t.Errorf("TimeOfDay = %v, want 21:15", got.TimeOfDay)
	}
	if got.IsActive {
		t.Error("expected reminder inactive after update")
	}
}

func TestReminderRepositoryGetNotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	_, err := repo.Get(ctx, "missing")
	if !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("Get() error = %v, want ErrReminderNotFound", err)
	}
}

func TestReminderRepositoryMalformedDaysFailOpen(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	// A corrupted row written by an older build.
	record := reminderRecord{
		ID:         "rem-1",
		Hour:       8,
		Minute:     0,
		ActiveDays: "1,banana,9",
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		t.Fatalf("failed to seed corrupted row: %v", err)
	}

	got, err := repo.Get(ctx, "rem-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ActiveDays != domain.AllDays {
		t.Errorf("ActiveDays = %v, want every day for malformed stored value", got.ActiveDays)
	}
}

func TestReminderRepositoryListActive(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	for _, def := range []*domain.ReminderDefinition{
		{ID: "rem-active", TimeOfDay: domain.TimeOfDay{Hour: 8}, ActiveDays: domain.AllDays, IsActive: true},
		{ID: "rem-paused", TimeOfDay: domain.TimeOfDay{Hour: 9}, ActiveDays: domain.AllDays, IsActive: false},
	} {
		if err := repo.Save(ctx, def); err != nil {
			t.Fatalf("Save(%s) error = %v", def.ID, err)
		}
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != "rem-active" {
		t.Errorf("ListActive() = %v, want only rem-active", active)
	}
}

func TestReminderRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupSQLiteDB(t, &reminderRecord{})
	repo := NewReminderRepository(db)

	def := &domain.ReminderDefinition{
		ID:         "rem-1",
		TimeOfDay:  domain.TimeOfDay{Hour: 8},
		ActiveDays: domain.AllDays,
		IsActive:   true,
	}
	if err := repo.Save(ctx, def); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Delete(ctx, "rem-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.Get(ctx, "rem-1"); !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrReminderNotFound", err)
	}
}
