package domain

import (
	"time"
)

// ScheduledDeadline is a derived wakeup installation. It is recomputed on
// every (re)install from the owning definition plus "now", never persisted.
type ScheduledDeadline struct {
	Kind    Kind
	OwnerID string
	FireAt  time.Time
	Handle  int
}

// DayKey renders a local calendar day as the stable key used for check-in
// and delivery-ledger records.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func ParseDayKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}
