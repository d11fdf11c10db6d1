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

type goalRecord struct {
	ID         string `gorm:"primaryKey"`
	Hour       int
	Minute     int
	ActiveDays string
	IsActive   bool
	Title      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (goalRecord) TableName() string { return "goals" }

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Save(ctx context.Context, def *domain.GoalDefinition) error {
	if def == nil || def.ID == "" {
		return ErrInvalidGoalData
	}

	record := goalRecord{
		ID:         def.ID,
		Hour:       def.TimeOfDay.Hour,
		Minute:     def.TimeOfDay.Minute,
		ActiveDays: def.ActiveDays.String(),
		IsActive:   def.IsActive,
		Title:      def.Title,
	}

	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Get(ctx context.Context, id string) (*domain.GoalDefinition, error) {
	var record goalRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return record.toDomain(ctx), nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).
		Delete(&goalRecord{}).Error; err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) ListActive(ctx context.Context) ([]domain.GoalDefinition, error) {
	var records []goalRecord
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}

	defs := make([]domain.GoalDefinition, 0, len(records))
	for _, record := range records {
		defs = append(defs, *record.toDomain(ctx))
	}
	return defs, nil
}

func (record *goalRecord) toDomain(ctx context.Context) *domain.GoalDefinition {
	set := domain.DaySetFromStored(record.ActiveDays)
	if _, err := domain.ParseDaySet(record.ActiveDays); err != nil {
		slog.WarnContext(ctx, "malformed active days in stored goal, treating as every day",
			slog.String("goal_id", record.ID),
			slog.String("active_days", record.ActiveDays),
		)
	}

	return &domain.GoalDefinition{
		ID:         record.ID,
		TimeOfDay:  domain.TimeOfDay{Hour: record.Hour, Minute: record.Minute},
		ActiveDays: set,
		IsActive:   record.IsActive,
		Title:      record.Title,
	}
}
