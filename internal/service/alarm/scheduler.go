package alarm

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// Mode is how a wakeup was installed against the timer facility.
type Mode string

const (
	// ModePrecise fires at the exact deadline, waking from idle states.
	ModePrecise Mode = "precise"
	// ModeBestEffort defers the deadline to a coarse boundary; delivery may
	// be late but is never dropped.
	ModeBestEffort Mode = "best_effort"
)

// Scheduler is the boundary to the timer facility. It is strictly one-shot:
// a fired deadline is gone and must be independently reinstalled for its
// next occurrence. Installing an existing handle overwrites; cancelling an
// unknown handle is a no-op.
type Scheduler interface {
	Install(ctx context.Context, d domain.ScheduledDeadline) error
	Cancel(handle int)
}

// FireFunc receives a wakeup on its own goroutine after the deadline's
// installation has already been retired.
type FireFunc func(kind domain.Kind, ownerID string)

// DefaultBestEffortGranularity is the coarse boundary best-effort installs
// are deferred to.
const DefaultBestEffortGranularity = time.Minute

type installation struct {
	deadline domain.ScheduledDeadline
	mode     Mode
	timer    *time.Timer
}

// TimerScheduler implements Scheduler on process-local timers. The mode of
// each install is decided at install time from the permission oracle, so a
// revoked exact-wakeup grant degrades the next reinstall without error.
type TimerScheduler struct {
	permissions domain.PermissionOracle
	granularity time.Duration
	now         func() time.Time

	mu        sync.Mutex
	installed map[int]*installation
	fire      FireFunc
}

func NewTimerScheduler(permissions domain.PermissionOracle) *TimerScheduler {
	return &TimerScheduler{
		permissions: permissions,
		granularity: DefaultBestEffortGranularity,
		now:         time.Now,
		installed:   make(map[int]*installation),
	}
}

// SetGranularity overrides the best-effort deferral boundary. It must be
// called before the first Install.
func (s *TimerScheduler) SetGranularity(d time.Duration) {
	if d > 0 {
		s.granularity = d
	}
}

// OnFire registers the wakeup sink. It must be called before the first
// Install.
func (s *TimerScheduler) OnFire(fn FireFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fire = fn
}

func (s *TimerScheduler) Install(ctx context.Context, d domain.ScheduledDeadline) error {
	mode := ModePrecise
	fireAt := d.FireAt

	if !s.permissions.CanScheduleExactWakeups() {
		mode = ModeBestEffort
		fireAt = fireAt.Truncate(s.granularity).Add(s.granularity)
		slog.WarnContext(ctx, "exact wakeups not granted, installing best-effort",
			slog.String("kind", d.Kind.String()),
			slog.String("owner_id", d.OwnerID),
			slog.Int("handle", d.Handle),
			slog.Time("requested", d.FireAt),
			slog.Time("deferred", fireAt),
		)
	}

	delay := fireAt.Sub(s.now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.installed[d.Handle]; ok {
		prev.timer.Stop()
	}

	inst := &installation{deadline: d, mode: mode}
	inst.timer = time.AfterFunc(delay, func() {
		s.onTimer(inst)
	})
	s.installed[d.Handle] = inst

	slog.DebugContext(ctx, "wakeup installed",
		slog.String("kind", d.Kind.String()),
		slog.String("owner_id", d.OwnerID),
		slog.Int("handle", d.Handle),
		slog.Time("fire_at", fireAt),
		slog.String("mode", string(mode)),
	)

	return nil
}

func (s *TimerScheduler) Cancel(handle int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.installed[handle]
	if !ok {
		// Cancelling a handle with no live installation is a no-op.
		return
	}

	inst.timer.Stop()
	delete(s.installed, handle)
}

// Stop cancels every live installation. Used at shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, inst := range s.installed {
		inst.timer.Stop()
		delete(s.installed, handle)
	}
}

// Snapshot returns the live installations keyed by handle.
func (s *TimerScheduler) Snapshot() map[int]domain.ScheduledDeadline {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[int]domain.ScheduledDeadline, len(s.installed))
	for handle, inst := range s.installed {
		snap[handle] = inst.deadline
	}
	return snap
}

// InstalledMode reports the mode of a live installation.
func (s *TimerScheduler) InstalledMode(handle int) (Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.installed[handle]
	if !ok {
		return "", false
	}
	return inst.mode, true
}

func (s *TimerScheduler) onTimer(inst *installation) {
	s.mu.Lock()
	// A concurrent reinstall or cancel supersedes an in-flight firing.
	if current, ok := s.installed[inst.deadline.Handle]; !ok || current != inst {
		s.mu.Unlock()
		return
	}
	delete(s.installed, inst.deadline.Handle)
	fire := s.fire
	s.mu.Unlock()

	if fire == nil {
		slog.Warn("wakeup fired with no sink registered",
			slog.String("kind", inst.deadline.Kind.String()),
			slog.String("owner_id", inst.deadline.OwnerID),
		)
		return
	}

	fire(inst.deadline.Kind, inst.deadline.OwnerID)
}
