package engine

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/alarm"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/dispatch"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/prompt"
	"github.com/KasumiMercury/inkwell-reminder-engine/internal/service/requestcode"
)

type fakeScheduler struct {
	mu        sync.Mutex
	installed map[int]domain.ScheduledDeadline
	cancelled []int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{installed: make(map[int]domain.ScheduledDeadline)}
}

func (f *fakeScheduler) Install(_ context.Context, d domain.ScheduledDeadline) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installed[d.Handle] = d
	return nil
}

func (f *fakeScheduler) Cancel(handle int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.installed, handle)
	f.cancelled = append(f.cancelled, handle)
}

func (f *fakeScheduler) get(handle int) (domain.ScheduledDeadline, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.installed[handle]
	return d, ok
}

type memReminderStore struct {
	defs map[string]*domain.ReminderDefinition
}

func (s *memReminderStore) Save(_ context.Context, def *domain.ReminderDefinition) error {
	s.defs[def.ID] = def
	return nil
}

func (s *memReminderStore) Get(_ context.Context, id string) (*domain.ReminderDefinition, error) {
	def, ok := s.defs[id]
	if !ok {
		return nil, domain.ErrReminderNotFound
	}
	return def, nil
}

func (s *memReminderStore) Delete(_ context.Context, id string) error {
	delete(s.defs, id)
	return nil
}

func (s *memReminderStore) ListActive(_ context.Context) ([]domain.ReminderDefinition, error) {
	var out []domain.ReminderDefinition
	for _, def := range s.defs {
		if def.IsActive {
			out = append(out, *def)
		}
	}
	return out, nil
}

type memGoalStore struct {
	defs map[string]*domain.GoalDefinition
}

func (s *memGoalStore) Save(_ context.Context, def *domain.GoalDefinition) error {
	s.defs[def.ID] = def
	return nil
}

func (s *memGoalStore) Get(_ context.Context, id string) (*domain.GoalDefinition, error) {
	def, ok := s.defs[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return def, nil
}

func (s *memGoalStore) Delete(_ context.Context, id string) error {
	delete(s.defs, id)
	return nil
}

func (s *memGoalStore) ListActive(_ context.Context) ([]domain.GoalDefinition, error) {
	var out []domain.GoalDefinition
	for _, def := range s.defs {
		if def.IsActive {
			out = append(out, *def)
		}
	}
	return out, nil
}

type deniedOracle struct{}

func (deniedOracle) CanScheduleExactWakeups() bool { return true }
func (deniedOracle) CanShowNotifications() bool    { return false }

type engineFixture struct {
	engine    *Engine
	scheduler *fakeScheduler
	reminders *memReminderStore
	goals     *memGoalStore
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	reminders := &memReminderStore{defs: make(map[string]*domain.ReminderDefinition)}
	goals := &memGoalStore{defs: make(map[string]*domain.GoalDefinition)}
	scheduler := newFakeScheduler()

	// The dispatcher is wired with notifications denied so firings terminate
	// without side effects; these tests exercise the scheduling surface.
	dispatcher := dispatch.NewDispatcher(
		reminders, goals, nil, nil, nil, deniedOracle{}, nil, prompt.NewPicker(), nil, nil,
	)

	e := New(reminders, goals, scheduler, dispatcher, 30*time.Minute, nil)
	e.now = func() time.Time {
		// Wednesday
		return time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)
	}
	return &engineFixture{engine: e, scheduler: scheduler, reminders: reminders, goals: goals}
}

func activeReminder(id string) *domain.ReminderDefinition {
	return &domain.ReminderDefinition{
		ID:              id,
		TimeOfDay:       domain.TimeOfDay{Hour: 8, Minute: 0},
		ActiveDays:      domain.AllDays,
		IsActive:        true,
		FallbackEnabled: true,
		Label:           "Morning pages",
	}
}

func TestScheduleWritingReminderInstallsMainAndFallback(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")

	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() error = %v", err)
	}

	main, ok := f.scheduler.get(requestcode.Handle(domain.KindWriting, def.ID))
	if !ok {
		t.Fatal("expected main schedule to be installed")
	}
	fallback, ok := f.scheduler.get(requestcode.Handle(domain.KindFallback, def.ID))
	if !ok {
		t.Fatal("expected fallback schedule to be installed")
	}

	if !fallback.FireAt.After(main.FireAt) {
		t.Errorf("fallback fires at %v, want strictly after main %v", fallback.FireAt, main.FireAt)
	}
	if got := fallback.FireAt.Sub(main.FireAt); got != 30*time.Minute {
		t.Errorf("fallback offset = %v, want 30m", got)
	}
}

func TestScheduleWritingReminderFallbackDisabled(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")

	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() error = %v", err)
	}

	// Disabling the fallback on an update drops the dependent schedule.
	def.FallbackEnabled = false
	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() update error = %v", err)
	}

	if _, ok := f.scheduler.get(requestcode.Handle(domain.KindFallback, def.ID)); ok {
		t.Error("expected fallback schedule to be cancelled")
	}
	if _, ok := f.scheduler.get(requestcode.Handle(domain.KindWriting, def.ID)); !ok {
		t.Error("expected main schedule to remain installed")
	}
}

func TestScheduleWritingReminderRejectsEmptyDays(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	def.ActiveDays = domain.NewDaySet()

	err := f.engine.ScheduleWritingReminder(context.Background(), def)
	if !errors.Is(err, domain.ErrNoActiveDays) {
		t.Fatalf("ScheduleWritingReminder() error = %v, want ErrNoActiveDays", err)
	}
	if len(f.scheduler.installed) != 0 {
		t.Error("expected no schedules installed for rejected definition")
	}
}

func TestScheduleWritingReminderInactiveCancels(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")

	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() error = %v", err)
	}

	def.IsActive = false
	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() deactivate error = %v", err)
	}

	if len(f.scheduler.installed) != 0 {
		t.Errorf("expected all schedules removed, %d remain", len(f.scheduler.installed))
	}
}

func TestCancelReminderRemovesAllChains(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	f.reminders.defs[def.ID] = def

	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() error = %v", err)
	}
	if err := f.engine.SnoozeReminder(context.Background(), def.ID, 10*time.Minute); err != nil {
		t.Fatalf("SnoozeReminder() error = %v", err)
	}

	f.engine.CancelReminder(def.ID)

	if len(f.scheduler.installed) != 0 {
		t.Errorf("expected all schedules removed, %d remain", len(f.scheduler.installed))
	}

	want := []int{
		requestcode.Handle(domain.KindWriting, def.ID),
		requestcode.Handle(domain.KindFallback, def.ID),
		requestcode.Handle(domain.KindSnooze, def.ID),
	}
	if !reflect.DeepEqual(f.scheduler.cancelled, want) {
		t.Errorf("cancel order = %v, want %v", f.scheduler.cancelled, want)
	}
}

func TestSnoozeReminderUnknownID(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.SnoozeReminder(context.Background(), "missing", 10*time.Minute)
	if !errors.Is(err, domain.ErrReminderNotFound) {
		t.Fatalf("SnoozeReminder() error = %v, want ErrReminderNotFound", err)
	}
}

func TestSnoozeReminderInstallsOneShot(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	f.reminders.defs[def.ID] = def

	if err := f.engine.SnoozeReminder(context.Background(), def.ID, 15*time.Minute); err != nil {
		t.Fatalf("SnoozeReminder() error = %v", err)
	}

	d, ok := f.scheduler.get(requestcode.Handle(domain.KindSnooze, def.ID))
	if !ok {
		t.Fatal("expected snooze schedule to be installed")
	}
	want := time.Date(2026, time.March, 4, 12, 15, 0, 0, time.UTC)
	if !d.FireAt.Equal(want) {
		t.Errorf("snooze fires at %v, want %v", d.FireAt, want)
	}
}

func TestScheduleGoalReminder(t *testing.T) {
	f := newEngineFixture(t)
	goal := &domain.GoalDefinition{
		ID:         "goal-1",
		TimeOfDay:  domain.TimeOfDay{Hour: 21, Minute: 30},
		ActiveDays: domain.AllDays,
		IsActive:   true,
		Title:      "Read 20 pages",
	}

	if err := f.engine.ScheduleGoalReminder(context.Background(), goal); err != nil {
		t.Fatalf("ScheduleGoalReminder() error = %v", err)
	}

	d, ok := f.scheduler.get(requestcode.Handle(domain.KindGoal, goal.ID))
	if !ok {
		t.Fatal("expected goal schedule to be installed")
	}
	want := time.Date(2026, time.March, 4, 21, 30, 0, 0, time.UTC)
	if !d.FireAt.Equal(want) {
		t.Errorf("goal fires at %v, want %v", d.FireAt, want)
	}

	f.engine.CancelGoalReminder(goal.ID)
	if _, ok := f.scheduler.get(requestcode.Handle(domain.KindGoal, goal.ID)); ok {
		t.Error("expected goal schedule removed after cancel")
	}
}

func TestHandleFireRearmsOnlyOwnChain(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	f.reminders.defs[def.ID] = def

	if err := f.engine.ScheduleWritingReminder(context.Background(), def); err != nil {
		t.Fatalf("ScheduleWritingReminder() error = %v", err)
	}
	fallbackBefore, _ := f.scheduler.get(requestcode.Handle(domain.KindFallback, def.ID))

	// As the timer facility would after retiring the installation.
	f.scheduler.Cancel(requestcode.Handle(domain.KindWriting, def.ID))
	f.engine.HandleFire(domain.KindWriting, def.ID)

	main, ok := f.scheduler.get(requestcode.Handle(domain.KindWriting, def.ID))
	if !ok {
		t.Fatal("expected main schedule to be re-armed after firing")
	}
	want := time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC)
	if !main.FireAt.Equal(want) {
		t.Errorf("re-armed main fires at %v, want %v", main.FireAt, want)
	}

	// Today's still-pending fallback must not be disturbed by the main firing.
	fallbackAfter, ok := f.scheduler.get(requestcode.Handle(domain.KindFallback, def.ID))
	if !ok {
		t.Fatal("expected fallback schedule to survive the main firing")
	}
	if !fallbackAfter.FireAt.Equal(fallbackBefore.FireAt) {
		t.Errorf("fallback moved from %v to %v on main firing", fallbackBefore.FireAt, fallbackAfter.FireAt)
	}
}

func TestHandleFireFallbackRearmsFallback(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	f.reminders.defs[def.ID] = def

	f.scheduler.Cancel(requestcode.Handle(domain.KindFallback, def.ID))
	f.engine.HandleFire(domain.KindFallback, def.ID)

	d, ok := f.scheduler.get(requestcode.Handle(domain.KindFallback, def.ID))
	if !ok {
		t.Fatal("expected fallback schedule to be re-armed after firing")
	}
	want := time.Date(2026, time.March, 5, 8, 30, 0, 0, time.UTC)
	if !d.FireAt.Equal(want) {
		t.Errorf("re-armed fallback fires at %v, want %v", d.FireAt, want)
	}
}

func TestHandleFireSnoozeDoesNotRearm(t *testing.T) {
	f := newEngineFixture(t)
	def := activeReminder("rem-1")
	f.reminders.defs[def.ID] = def

	f.engine.HandleFire(domain.KindSnooze, def.ID)

	if _, ok := f.scheduler.get(requestcode.Handle(domain.KindSnooze, def.ID)); ok {
		t.Error("snooze firing must not reinstall a snooze schedule")
	}
}

func TestHandleFireDeletedReminderIsNoOp(t *testing.T) {
	f := newEngineFixture(t)

	// The record is gone but a stale wakeup fires anyway.
	f.engine.HandleFire(domain.KindWriting, "ghost")

	if len(f.scheduler.installed) != 0 {
		t.Error("stale firing for a deleted reminder must not install anything")
	}
}

func TestRescheduleAllIdempotent(t *testing.T) {
	reminders := &memReminderStore{defs: map[string]*domain.ReminderDefinition{
		"rem-1": activeReminder("rem-1"),
		"rem-2": func() *domain.ReminderDefinition {
			d := activeReminder("rem-2")
			d.FallbackEnabled = false
			return d
		}(),
	}}
	goals := &memGoalStore{defs: map[string]*domain.GoalDefinition{
		"goal-1": {
			ID:         "goal-1",
			TimeOfDay:  domain.TimeOfDay{Hour: 21, Minute: 0},
			ActiveDays: domain.AllDays,
			IsActive:   true,
		},
	}}

	grantAll := alwaysGranted{}
	scheduler := alarm.NewTimerScheduler(grantAll)
	defer scheduler.Stop()
	scheduler.OnFire(func(domain.Kind, string) {})

	dispatcher := dispatch.NewDispatcher(
		reminders, goals, nil, nil, nil, deniedOracle{}, nil, prompt.NewPicker(), nil, nil,
	)
	e := New(reminders, goals, scheduler, dispatcher, 30*time.Minute, nil)
	// Pinned far ahead of the wall clock so no installed timer can fire and
	// retire itself mid-test.
	pinned := time.Now().Add(365 * 24 * time.Hour)
	e.now = func() time.Time { return pinned }

	res, err := e.RescheduleAll(context.Background())
	if err != nil {
		t.Fatalf("RescheduleAll() error = %v", err)
	}
	if res.RemindersInstalled != 2 || res.GoalsInstalled != 1 || res.Failed != 0 {
		t.Fatalf("first run = %+v, want 2 reminders, 1 goal, 0 failed", res)
	}
	first := scheduler.Snapshot()

	if _, err := e.RescheduleAll(context.Background()); err != nil {
		t.Fatalf("RescheduleAll() second run error = %v", err)
	}
	second := scheduler.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second run changed installations:\nfirst:  %v\nsecond: %v", first, second)
	}
}

type alwaysGranted struct{}

func (alwaysGranted) CanScheduleExactWakeups() bool { return true }
func (alwaysGranted) CanShowNotifications() bool    { return true }
