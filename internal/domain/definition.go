package domain

// TimeOfDay is a local wall-clock time with no date and no zone. It is
// always interpreted in the device's current zone at fire-time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// ReminderDefinition is a persisted writing reminder. ID is immutable for
// the lifetime of the reminder.
type ReminderDefinition struct {
	ID              string
	TimeOfDay       TimeOfDay
	ActiveDays      DaySet
	IsActive        bool
	FallbackEnabled bool
	Label           string
}

// GoalDefinition is a persisted goal check-in reminder. Title is used
// verbatim in the notification body.
type GoalDefinition struct {
	ID         string
	TimeOfDay  TimeOfDay
	ActiveDays DaySet
	IsActive   bool
	Title      string
}
