package verify

import (
	"context"
	"log/slog"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/deadline"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/prompt"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/requestcode"
)

// DefaultCheckTimeout bounds the storage check so a hung store cannot hold
// the completion token indefinitely.
const DefaultCheckTimeout = 15 * time.Second

// Verifier runs the did-you-write-today fallback check. The check touches
// storage and must be allowed to finish even though the triggering dispatch
// context wants to exit immediately, so every launch holds a Gate token
// until the check and any resulting notification are fully issued.
type Verifier struct {
	entries   domain.EntryCountStore
	streaks   domain.StreakService
	presenter domain.NotificationPresenter
	prompts   *prompt.Picker
	gate      *Gate
	timeout   time.Duration
	metrics   *metrics.ReminderMetrics
	now       func() time.Time
}

func NewVerifier(
	entries domain.EntryCountStore,
	streaks domain.StreakService,
	presenter domain.NotificationPresenter,
	prompts *prompt.Picker,
	gate *Gate,
	timeout time.Duration,
	reminderMetrics *metrics.ReminderMetrics,
) *Verifier {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Verifier{
		entries:   entries,
		streaks:   streaks,
		presenter: presenter,
		prompts:   prompts,
		gate:      gate,
		timeout:   timeout,
		metrics:   reminderMetrics,
		now:       time.Now,
	}
}

// Launch starts the asynchronous check for the given reminder and returns
// immediately. The token is acquired before the goroutine starts so the
// gate can never observe a window where the work exists but is untracked.
func (v *Verifier) Launch(ctx context.Context, def *domain.ReminderDefinition) {
	token := v.gate.Begin()

	go func() {
		defer token.Release()

		// Detached from the trigger: the dispatch context is gone the
		// moment the dispatcher returns.
		checkCtx, cancel := context.WithTimeout(context.Background(), v.timeout)
		defer cancel()

		v.run(checkCtx, def)
	}()
}

func (v *Verifier) run(ctx context.Context, def *domain.ReminderDefinition) {
	start, end := deadline.DayWindow(v.now())

	count, err := v.entries.CountEntriesInRange(ctx, start, end)
	if err != nil {
		// Fail toward silence: a broken check must not spam the user.
		slog.WarnContext(ctx, "entry count failed, assuming the user has written",
			slog.String("reminder_id", def.ID),
			slog.String("error", err.Error()),
		)
		v.recordCheck(ctx, "assumed_written")
		return
	}

	if count > 0 {
		slog.DebugContext(ctx, "user already wrote today, skipping nudge",
			slog.String("reminder_id", def.ID),
			slog.Int("entry_count", count),
		)
		v.recordCheck(ctx, "already_written")
		return
	}

	streak := 0
	if v.streaks != nil {
		if s, err := v.streaks.CurrentStreak(ctx); err != nil {
			slog.WarnContext(ctx, "streak lookup failed, degrading to zero",
				slog.String("reminder_id", def.ID),
				slog.String("error", err.Error()),
			)
		} else {
			streak = s
		}
	}

	n := &domain.Notification{
		ID:        requestcode.Handle(domain.KindFallback, def.ID),
		Channel:   domain.ChannelNudge,
		Title:     "Still time to write",
		Body:      v.prompts.NudgeBody(streak),
		TapAction: "inkwell://write",
	}

	if err := v.presenter.Show(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to show nudge notification",
			slog.String("reminder_id", def.ID),
			slog.String("error", err.Error()),
		)
		v.recordCheck(ctx, "present_failed")
		return
	}

	slog.InfoContext(ctx, "fallback nudge shown",
		slog.String("reminder_id", def.ID),
		slog.Int("streak", streak),
	)
	v.recordCheck(ctx, "nudged")
}

func (v *Verifier) recordCheck(ctx context.Context, result string) {
	if v.metrics != nil {
		v.metrics.RecordFallbackCheck(ctx, result)
	}
}
