package permission

import "sync/atomic"

// RuntimeOracle holds the current permission grants. Grants change while
// the process runs, so reads must always see the latest value.
type RuntimeOracle struct {
	exactWakeups  atomic.Bool
	notifications atomic.Bool
}

func NewRuntimeOracle(exactWakeups, notifications bool) *RuntimeOracle {
	o := &RuntimeOracle{}
	o.exactWakeups.Store(exactWakeups)
	o.notifications.Store(notifications)
	return o
}

func (o *RuntimeOracle) CanScheduleExactWakeups() bool {
	return o.exactWakeups.Load()
}

func (o *RuntimeOracle) CanShowNotifications() bool {
	return o.notifications.Load()
}

func (o *RuntimeOracle) SetExactWakeups(granted bool) {
	o.exactWakeups.Store(granted)
}

func (o *RuntimeOracle) SetNotifications(granted bool) {
	o.notifications.Store(granted)
}
