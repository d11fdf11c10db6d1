package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// journalEntryRecord is a written journal entry. The scheduling engine only
// reads this table; entries are authored elsewhere in the app.
type journalEntryRecord struct {
	ID        string `gorm:"primaryKey"`
	Body      string
	WrittenAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (journalEntryRecord) TableName() string { return "journal_entries" }

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// CountEntriesInRange counts entries written in [start, end).
func (r *EntryRepository) CountEntriesInRange(ctx context.Context, start, end time.Time) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&journalEntryRecord{}).
		Where("written_at >= ? AND written_at < ?", start, end).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count journal entries: %w", err)
	}
	return int(count), nil
}
