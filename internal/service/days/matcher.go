package days

import (
	"time"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// IsActiveToday reports whether a definition with the given day selection
// should deliver on the given weekday. Pure and total: an empty selection
// matches nothing. Corrupt stored selections are handled upstream by
// domain.DaySetFromStored, which fails open to every day.
func IsActiveToday(set domain.DaySet, today time.Weekday) bool {
	return set.Contains(domain.WeekdayIndex(today))
}
