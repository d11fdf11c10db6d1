package deadline

import (
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// DefaultFallbackOffset is how long after the owning writing reminder the
// did-you-write fallback check fires.
const DefaultFallbackOffset = 30 * time.Minute

// NextFireTime computes the next absolute instant a recurring local
// time-of-day fires. The instant is built in now's zone; if today's
// occurrence has already passed it rolls one calendar day, not 24 hours,
// so the wall-clock time survives DST transitions.
// The result is always strictly after now.
func NextFireTime(tod domain.TimeOfDay, now time.Time) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// NextFallbackTime computes the fallback deadline for a writing reminder:
// the owning reminder's next fire time plus offset, rolled one calendar day
// if that instant has somehow already passed. Structurally this places every
// fallback strictly after its owning main deadline.
func NextFallbackTime(tod domain.TimeOfDay, offset time.Duration, now time.Time) time.Time {
	fire := NextFireTime(tod, now).Add(offset)
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// DayWindow returns the half-open [start, end) interval covering now's
// local calendar day.
func DayWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
