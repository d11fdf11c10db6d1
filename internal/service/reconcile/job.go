package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/metrics"
)

// Installer is the slice of the engine the job drives. Both calls recompute
// the deadline from "now" and overwrite any existing installation, which is
// what makes the job idempotent.
type Installer interface {
	ScheduleWritingReminder(ctx context.Context, def *domain.ReminderDefinition) error
	ScheduleGoalReminder(ctx context.Context, def *domain.GoalDefinition) error
}

// Result summarizes one reconciliation run.
type Result struct {
	RemindersInstalled int
	GoalsInstalled     int
	Failed             int
}

// Job re-derives and re-installs every active definition's schedule from
// the persisted source of truth. It runs at boot and on-demand, making the
// system self-healing after a reboot or a missed update. One definition's
// failure never aborts the rest.
type Job struct {
	reminders domain.ReminderStore
	goals     domain.GoalStore
	installer Installer
	metrics   *metrics.ReminderMetrics
}

func NewJob(
	reminders domain.ReminderStore,
	goals domain.GoalStore,
	installer Installer,
	reminderMetrics *metrics.ReminderMetrics,
) *Job {
	return &Job{
		reminders: reminders,
		goals:     goals,
		installer: installer,
		metrics:   reminderMetrics,
	}
}

func (j *Job) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	var listErrs []error

	reminders, err := j.reminders.ListActive(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list active reminders",
			slog.String("error", err.Error()),
		)
		listErrs = append(listErrs, fmt.Errorf("list reminders: %w", err))
	}
	for i := range reminders {
		def := reminders[i]
		if err := j.installer.ScheduleWritingReminder(ctx, &def); err != nil {
			slog.WarnContext(ctx, "failed to reinstall reminder, continuing",
				slog.String("reminder_id", def.ID),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}
		result.RemindersInstalled++
	}

	goals, err := j.goals.ListActive(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list active goals",
			slog.String("error", err.Error()),
		)
		listErrs = append(listErrs, fmt.Errorf("list goals: %w", err))
	}
	for i := range goals {
		def := goals[i]
		if err := j.installer.ScheduleGoalReminder(ctx, &def); err != nil {
			slog.WarnContext(ctx, "failed to reinstall goal, continuing",
				slog.String("goal_id", def.ID),
				slog.String("error", err.Error()),
			)
			result.Failed++
			continue
		}
		result.GoalsInstalled++
	}

	installed := result.RemindersInstalled + result.GoalsInstalled
	if j.metrics != nil {
		j.metrics.RecordReconcile(ctx, time.Since(start), installed, result.Failed)
	}

	slog.InfoContext(ctx, "reconciliation finished",
		slog.Int("reminders", result.RemindersInstalled),
		slog.Int("goals", result.GoalsInstalled),
		slog.Int("failed", result.Failed),
		slog.Duration("took", time.Since(start)),
	)

	return result, errors.Join(listErrs...)
}
