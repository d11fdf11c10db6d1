package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/days"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/prompt"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/requestcode"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/verify"
)

// Dispatcher decides what, if anything, a fired wakeup shows to the user.
// Each dispatch is terminal: it never reschedules and never recurses, and
// it produces exactly zero or one notification. Re-arming the chain is the
// engine's concern, not the dispatcher's.
type Dispatcher struct {
	reminders   domain.ReminderStore
	goals       domain.GoalStore
	checkIns    domain.CheckInStore
	ledger      domain.DeliveryLedger
	presenter   domain.NotificationPresenter
	permissions domain.PermissionOracle
	verifier    *verify.Verifier
	prompts     *prompt.Picker
	metrics     *metrics.ReminderMetrics
	recorder    domain.DeliveryRecorder
	now         func() time.Time
}

func NewDispatcher(
	reminders domain.ReminderStore,
	goals domain.GoalStore,
	checkIns domain.CheckInStore,
	ledger domain.DeliveryLedger,
	presenter domain.NotificationPresenter,
	permissions domain.PermissionOracle,
	verifier *verify.Verifier,
	prompts *prompt.Picker,
	reminderMetrics *metrics.ReminderMetrics,
	recorder domain.DeliveryRecorder,
) *Dispatcher {
	return &Dispatcher{
		reminders:   reminders,
		goals:       goals,
		checkIns:    checkIns,
		ledger:      ledger,
		presenter:   presenter,
		permissions: permissions,
		verifier:    verifier,
		prompts:     prompts,
		metrics:     reminderMetrics,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Dispatch handles a single wakeup firing for (kind, ownerID).
func (d *Dispatcher) Dispatch(ctx context.Context, kind domain.Kind, ownerID string) error {
	if !d.permissions.CanShowNotifications() {
		// Degraded mode, not an error: terminate with no side effects.
		slog.DebugContext(ctx, "notifications not granted, dropping dispatch",
			slog.String("kind", kind.String()),
			slog.String("owner_id", ownerID),
		)
		d.record(ctx, kind, ownerID, "permission_denied")
		return nil
	}

	switch kind {
	case domain.KindWriting, domain.KindSnooze:
		return d.dispatchWriting(ctx, kind, ownerID)
	case domain.KindFallback:
		return d.dispatchFallback(ctx, ownerID)
	case domain.KindGoal:
		return d.dispatchGoal(ctx, ownerID)
	default:
		return fmt.Errorf("unknown dispatch kind %q", kind)
	}
}

func (d *Dispatcher) dispatchWriting(ctx context.Context, kind domain.Kind, ownerID string) error {
	def, ok := d.loadReminder(ctx, kind, ownerID)
	if !ok {
		return nil
	}

	if !days.IsActiveToday(def.ActiveDays, d.now().Weekday()) {
		slog.DebugContext(ctx, "reminder not active today",
			slog.String("reminder_id", def.ID),
			slog.String("weekday", d.now().Weekday().String()),
		)
		d.record(ctx, kind, ownerID, "inactive_day")
		return nil
	}

	if !d.markDelivered(ctx, kind, ownerID) {
		d.record(ctx, kind, ownerID, "duplicate")
		return nil
	}

	n := &domain.Notification{
		ID:        requestcode.Handle(kind, def.ID),
		Channel:   domain.ChannelWriting,
		Title:     "Time to write",
		Body:      d.prompts.WritingPrompt(d.now()),
		TapAction: "inkwell://write",
	}

	if err := d.presenter.Show(ctx, n); err != nil {
		d.record(ctx, kind, ownerID, "present_failed")
		return fmt.Errorf("show writing notification for %s: %w", def.ID, err)
	}

	slog.InfoContext(ctx, "writing reminder delivered",
		slog.String("reminder_id", def.ID),
		slog.String("kind", kind.String()),
		slog.String("label", def.Label),
	)
	d.record(ctx, kind, ownerID, "shown")
	return nil
}

func (d *Dispatcher) dispatchFallback(ctx context.Context, ownerID string) error {
	def, ok := d.loadReminder(ctx, domain.KindFallback, ownerID)
	if !ok {
		return nil
	}

	if !def.FallbackEnabled {
		// Toggled off after this wakeup was installed; harmless no-op.
		d.record(ctx, domain.KindFallback, ownerID, "skipped_stale")
		return nil
	}

	if !days.IsActiveToday(def.ActiveDays, d.now().Weekday()) {
		d.record(ctx, domain.KindFallback, ownerID, "inactive_day")
		return nil
	}

	// The verifier owns its own completion token and runs detached; the
	// dispatch itself stays terminal.
	d.verifier.Launch(ctx, def)
	d.record(ctx, domain.KindFallback, ownerID, "verify_launched")
	return nil
}

func (d *Dispatcher) dispatchGoal(ctx context.Context, ownerID string) error {
	goal, err := d.goals.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			// Stale wakeup for a deleted goal: harmless no-op.
			slog.DebugContext(ctx, "stale goal wakeup, owning record gone",
				slog.String("goal_id", ownerID),
			)
			d.record(ctx, domain.KindGoal, ownerID, "skipped_stale")
			return nil
		}
		d.record(ctx, domain.KindGoal, ownerID, "load_failed")
		return fmt.Errorf("load goal %s: %w", ownerID, err)
	}

	if !goal.IsActive {
		d.record(ctx, domain.KindGoal, ownerID, "skipped_stale")
		return nil
	}

	if !days.IsActiveToday(goal.ActiveDays, d.now().Weekday()) {
		d.record(ctx, domain.KindGoal, ownerID, "inactive_day")
		return nil
	}

	if !d.markDelivered(ctx, domain.KindGoal, ownerID) {
		d.record(ctx, domain.KindGoal, ownerID, "duplicate")
		return nil
	}

	n := &domain.Notification{
		ID:        requestcode.Handle(domain.KindGoal, goal.ID),
		Channel:   domain.ChannelGoal,
		Title:     "Goal check-in",
		Body:      fmt.Sprintf("Check in on %s", goal.Title),
		TapAction: "inkwell://goals/" + goal.ID,
		InlineActions: []domain.InlineAction{
			{
				ID:           "mark_done",
				Label:        "Mark done",
				CallbackPath: "/api/v1/goals/" + goal.ID + "/checkin",
			},
		},
	}

	if err := d.presenter.Show(ctx, n); err != nil {
		d.record(ctx, domain.KindGoal, ownerID, "present_failed")
		return fmt.Errorf("show goal notification for %s: %w", goal.ID, err)
	}

	slog.InfoContext(ctx, "goal check-in delivered",
		slog.String("goal_id", goal.ID),
		slog.String("title", goal.Title),
	)
	d.record(ctx, domain.KindGoal, ownerID, "shown")
	return nil
}

// RecordGoalCheckIn is the inline mark-done action: it records a check-in
// for (goalID, day) only if one does not already exist, then shows a brief
// confirmation. Safe to invoke repeatedly.
func (d *Dispatcher) RecordGoalCheckIn(ctx context.Context, goalID, day string) (bool, error) {
	created, err := d.checkIns.RecordCheckIn(ctx, goalID, day)
	if err != nil {
		return false, fmt.Errorf("record check-in for goal %s on %s: %w", goalID, day, err)
	}

	if !created {
		slog.DebugContext(ctx, "check-in already recorded",
			slog.String("goal_id", goalID),
			slog.String("day", day),
		)
		return false, nil
	}

	confirm := &domain.Notification{
		ID:      requestcode.Handle(domain.KindGoal, goalID),
		Channel: domain.ChannelConfirm,
		Title:   "Checked in",
		Body:    "Nice, goal marked done for today.",
	}
	if err := d.presenter.Show(ctx, confirm); err != nil {
		// The check-in itself succeeded; a lost toast is not worth an error.
		slog.WarnContext(ctx, "failed to show check-in confirmation",
			slog.String("goal_id", goalID),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "goal check-in recorded",
		slog.String("goal_id", goalID),
		slog.String("day", day),
	)
	return true, nil
}

// loadReminder fetches the owning definition for a writing-family wakeup.
// A missing or inactive record means the wakeup is stale; that resolves to
// a logged no-op, never an error.
func (d *Dispatcher) loadReminder(ctx context.Context, kind domain.Kind, ownerID string) (*domain.ReminderDefinition, bool) {
	def, err := d.reminders.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrReminderNotFound) {
			slog.DebugContext(ctx, "stale wakeup, owning record gone",
				slog.String("kind", kind.String()),
				slog.String("reminder_id", ownerID),
			)
			d.record(ctx, kind, ownerID, "skipped_stale")
			return nil, false
		}
		slog.ErrorContext(ctx, "failed to load reminder for dispatch",
			slog.String("kind", kind.String()),
			slog.String("reminder_id", ownerID),
			slog.String("error", err.Error()),
		)
		d.record(ctx, kind, ownerID, "load_failed")
		return nil, false
	}

	if !def.IsActive {
		d.record(ctx, kind, ownerID, "skipped_stale")
		return nil, false
	}

	return def, true
}

// markDelivered consults the delivery ledger. Ledger failures fail open to
// delivery: a duplicate notification beats a silently dropped one.
func (d *Dispatcher) markDelivered(ctx context.Context, kind domain.Kind, ownerID string) bool {
	if d.ledger == nil {
		return true
	}

	first, err := d.ledger.MarkDelivered(ctx, kind, ownerID, domain.DayKey(d.now()))
	if err != nil {
		slog.WarnContext(ctx, "delivery ledger check failed, delivering anyway",
			slog.String("kind", kind.String()),
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()),
		)
		return true
	}
	return first
}

func (d *Dispatcher) record(ctx context.Context, kind domain.Kind, ownerID, outcome string) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(ctx, kind.String(), outcome)
	}
	if d.recorder != nil {
		rec := domain.DeliveryRecord{
			Kind:    kind.String(),
			OwnerID: ownerID,
			Outcome: outcome,
			FiredAt: d.now(),
		}
		if err := d.recorder.RecordDelivery(ctx, rec); err != nil {
			slog.DebugContext(ctx, "failed to record delivery outcome",
				slog.String("error", err.Error()),
			)
		}
	}
}
