package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// reminderRecord is the persisted shape of a writing reminder. ActiveDays is
// stored as a comma-separated day list; a malformed value read back from
// disk resolves to every day rather than losing the reminder.
type reminderRecord struct {
	ID              string `gorm:"primaryKey"`
	Hour            int
	Minute          int
	ActiveDays      string
	IsActive        bool
	FallbackEnabled bool
	Label           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (reminderRecord) TableName() string { return "reminders" }

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Save(ctx context.Context, def *domain.ReminderDefinition) error {
	if def == nil || def.ID == "" {
		return ErrInvalidReminderData
	}

	record := reminderRecord{
		ID:              def.ID,
		Hour:            def.TimeOfDay.Hour,
		Minute:          def.TimeOfDay.Minute,
		ActiveDays:      def.ActiveDays.String(),
		IsActive:        def.IsActive,
		FallbackEnabled: def.FallbackEnabled,
		Label:           def.Label,
	}

	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Get(ctx context.Context, id string) (*domain.ReminderDefinition, error) {
	var record reminderRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReminderNotFound
		}
		return nil, err
	}
	return record.toDomain(ctx), nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).
		Delete(&reminderRecord{}).Error; err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) ListActive(ctx context.Context) ([]domain.ReminderDefinition, error) {
	var records []reminderRecord
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}

	defs := make([]domain.ReminderDefinition, 0, len(records))
	for _, record := range records {
		defs = append(defs, *record.toDomain(ctx))
	}
	return defs, nil
}

func (record *reminderRecord) toDomain(ctx context.Context) *domain.ReminderDefinition {
	set := domain.DaySetFromStored(record.ActiveDays)
	if _, err := domain.ParseDaySet(record.ActiveDays); err != nil {
		slog.WarnContext(ctx, "malformed active days in stored reminder, treating as every day",
			slog.String("reminder_id", record.ID),
			slog.String("active_days", record.ActiveDays),
		)
	}

	return &domain.ReminderDefinition{
		ID:              record.ID,
		TimeOfDay:       domain.TimeOfDay{Hour: record.Hour, Minute: record.Minute},
		ActiveDays:      set,
		IsActive:        record.IsActive,
		FallbackEnabled: record.FallbackEnabled,
		Label:           record.Label,
	}
}
