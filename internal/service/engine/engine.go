package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/alarm"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/deadline"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/dispatch"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/reconcile"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/requestcode"
)

// Engine is the public surface of the reminder scheduling core. It owns the
// single-shot-then-reinstall discipline: the timer facility never re-arms
// itself, so every firing re-derives and reinstalls its chain's next
// occurrence here before the dispatch runs.
type Engine struct {
	reminders      domain.ReminderStore
	goals          domain.GoalStore
	alarms         alarm.Scheduler
	dispatcher     *dispatch.Dispatcher
	reconciler     *reconcile.Job
	fallbackOffset time.Duration
	metrics        *metrics.ReminderMetrics
	now            func() time.Time
}

func New(
	reminders domain.ReminderStore,
	goals domain.GoalStore,
	alarms alarm.Scheduler,
	dispatcher *dispatch.Dispatcher,
	fallbackOffset time.Duration,
	reminderMetrics *metrics.ReminderMetrics,
) *Engine {
	if fallbackOffset <= 0 {
		fallbackOffset = deadline.DefaultFallbackOffset
	}
	e := &Engine{
		reminders:      reminders,
		goals:          goals,
		alarms:         alarms,
		dispatcher:     dispatcher,
		fallbackOffset: fallbackOffset,
		metrics:        reminderMetrics,
		now:            time.Now,
	}
	e.reconciler = reconcile.NewJob(reminders, goals, e, reminderMetrics)
	return e
}

// ScheduleWritingReminder derives and installs the next occurrence for a
// writing reminder, plus its dependent fallback schedule when enabled. An
// inactive definition resolves to cancellation: inactive reminders must
// have no live schedule.
func (e *Engine) ScheduleWritingReminder(ctx context.Context, def *domain.ReminderDefinition) error {
	if err := validateDefinition(def.TimeOfDay, def.ActiveDays); err != nil {
		return err
	}

	if !def.IsActive {
		e.cancelReminderSchedules(def.ID)
		return nil
	}

	now := e.now()
	if err := e.install(ctx, domain.KindWriting, def.ID, deadline.NextFireTime(def.TimeOfDay, now)); err != nil {
		return err
	}

	if def.FallbackEnabled {
		if err := e.ScheduleFallback(ctx, def); err != nil {
			return err
		}
	} else {
		// Toggling fallback off drops the dependent schedule.
		e.alarms.Cancel(requestcode.Handle(domain.KindFallback, def.ID))
	}

	return nil
}

// ScheduleFallback installs the dependent did-you-write schedule, placed
// strictly after the owning reminder's next fire time.
func (e *Engine) ScheduleFallback(ctx context.Context, def *domain.ReminderDefinition) error {
	fireAt := deadline.NextFallbackTime(def.TimeOfDay, e.fallbackOffset, e.now())
	return e.install(ctx, domain.KindFallback, def.ID, fireAt)
}

// ScheduleGoalReminder derives and installs the next occurrence for a goal
// check-in reminder.
func (e *Engine) ScheduleGoalReminder(ctx context.Context, def *domain.GoalDefinition) error {
	if err := validateDefinition(def.TimeOfDay, def.ActiveDays); err != nil {
		return err
	}

	if !def.IsActive {
		e.CancelGoalReminder(def.ID)
		return nil
	}

	return e.install(ctx, domain.KindGoal, def.ID, deadline.NextFireTime(def.TimeOfDay, e.now()))
}

// SnoozeReminder installs a one-shot wakeup for an existing reminder after
// the given delay. Snooze wakeups dispatch like writing reminders but are
// never re-armed.
func (e *Engine) SnoozeReminder(ctx context.Context, id string, delay time.Duration) error {
	if delay <= 0 {
		return fmt.Errorf("snooze delay must be positive, got %v", delay)
	}

	def, err := e.reminders.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("snooze reminder %s: %w", id, err)
	}
	if !def.IsActive {
		return fmt.Errorf("snooze reminder %s: %w", id, domain.ErrReminderNotFound)
	}

	return e.install(ctx, domain.KindSnooze, id, e.now().Add(delay))
}

// CancelReminder removes a writing reminder's live schedules: main first,
// then the dependent fallback, then any pending snooze. A crash between the
// cancels leaves at worst a stale dependent wakeup, which fires as a
// harmless no-op once the record is gone.
func (e *Engine) CancelReminder(id string) {
	e.cancelReminderSchedules(id)
}

func (e *Engine) cancelReminderSchedules(id string) {
	e.alarms.Cancel(requestcode.Handle(domain.KindWriting, id))
	e.alarms.Cancel(requestcode.Handle(domain.KindFallback, id))
	e.alarms.Cancel(requestcode.Handle(domain.KindSnooze, id))
}

// CancelGoalReminder removes a goal's live schedule.
func (e *Engine) CancelGoalReminder(id string) {
	e.alarms.Cancel(requestcode.Handle(domain.KindGoal, id))
}

// RescheduleAll re-derives and reinstalls every active definition from the
// persisted source of truth. Callers should await it before considering the
// process ready after boot.
func (e *Engine) RescheduleAll(ctx context.Context) (*reconcile.Result, error) {
	return e.reconciler.Run(ctx)
}

// HandleFire is the alarm scheduler's sink. The firing's chain is re-armed
// first so a dispatch-side failure can never kill the schedule, then the
// terminal dispatch runs.
func (e *Engine) HandleFire(kind domain.Kind, ownerID string) {
	ctx := context.Background()

	if kind.Rearms() {
		e.rearm(ctx, kind, ownerID)
	}

	if err := e.dispatcher.Dispatch(ctx, kind, ownerID); err != nil {
		slog.ErrorContext(ctx, "dispatch failed",
			slog.String("kind", kind.String()),
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		)
	}
}

// rearm reinstalls only the fired chain's own next occurrence. A writing
// firing must not touch the fallback handle: today's fallback is still
// pending, and the fallback chain re-arms itself when it fires.
func (e *Engine) rearm(ctx context.Context, kind domain.Kind, ownerID string) {
	switch kind {
	case domain.KindWriting, domain.KindFallback:
		def, err := e.reminders.Get(ctx, ownerID)
		if err != nil {
			if !errors.Is(err, domain.ErrReminderNotFound) {
				slog.WarnContext(ctx, "failed to load reminder for re-arm",
					slog.String("reminder_id", ownerID),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		if !def.IsActive {
			return
		}
		if kind == domain.KindFallback && !def.FallbackEnabled {
			return
		}

		var fireAt time.Time
		if kind == domain.KindWriting {
			fireAt = deadline.NextFireTime(def.TimeOfDay, e.now())
		} else {
			fireAt = deadline.NextFallbackTime(def.TimeOfDay, e.fallbackOffset, e.now())
		}
		if err := e.install(ctx, kind, ownerID, fireAt); err != nil {
			slog.WarnContext(ctx, "failed to re-arm reminder chain",
				slog.String("kind", kind.String()),
				slog.String("reminder_id", ownerID),
				slog.String("error", err.Error()),
			)
		}

	case domain.KindGoal:
		goal, err := e.goals.Get(ctx, ownerID)
		if err != nil {
			if !errors.Is(err, domain.ErrGoalNotFound) {
				slog.WarnContext(ctx, "failed to load goal for re-arm",
					slog.String("goal_id", ownerID),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		if !goal.IsActive {
			return
		}
		if err := e.install(ctx, domain.KindGoal, ownerID, deadline.NextFireTime(goal.TimeOfDay, e.now())); err != nil {
			slog.WarnContext(ctx, "failed to re-arm goal chain",
				slog.String("goal_id", ownerID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (e *Engine) install(ctx context.Context, kind domain.Kind, ownerID string, fireAt time.Time) error {
	d := domain.ScheduledDeadline{
		Kind:    kind,
		OwnerID: ownerID,
		FireAt:  fireAt,
		Handle:  requestcode.Handle(kind, ownerID),
	}

	if err := e.alarms.Install(ctx, d); err != nil {
		return fmt.Errorf("install %s wakeup for %s: %w", kind, ownerID, err)
	}

	if e.metrics != nil {
		e.metrics.RecordInstall(ctx, kind.String(), "requested")
	}

	slog.DebugContext(ctx, "schedule installed",
		slog.String("kind", kind.String()),
		slog.String("owner_id", ownerID),
		slog.Time("fire_at", fireAt),
	)
	return nil
}

func validateDefinition(tod domain.TimeOfDay, set domain.DaySet) error {
	if !tod.Valid() {
		return domain.ErrInvalidTimeOfDay
	}
	if set.IsEmpty() {
		return domain.ErrNoActiveDays
	}
	return nil
}
