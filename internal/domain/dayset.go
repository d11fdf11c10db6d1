package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaySet is a set of weekday indices, Mon=0 .. Sun=6, stored as a bitmask.
type DaySet uint8

// AllDays selects all seven weekdays.
const AllDays DaySet = 0x7f

func NewDaySet(days ...int) DaySet {
	var set DaySet
	for _, d := range days {
		if d >= 0 && d <= 6 {
			set |= 1 << uint(d)
		}
	}
	return set
}

func (s DaySet) Contains(day int) bool {
	if day < 0 || day > 6 {
		return false
	}
	return s&(1<<uint(day)) != 0
}

func (s DaySet) IsEmpty() bool {
	return s&AllDays == 0
}

// Days returns the selected weekday indices in ascending order.
func (s DaySet) Days() []int {
	days := make([]int, 0, 7)
	for d := 0; d <= 6; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the set in its stored form, e.g. "0,2,4".
func (s DaySet) String() string {
	days := s.Days()
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// ParseDaySet parses the stored comma-separated weekday form. An empty
// string parses to the empty set; any token outside 0..6 is an error.
func ParseDaySet(raw string) (DaySet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}

	var set DaySet
	for _, part := range strings.Split(trimmed, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, fmt.Errorf("invalid day selection token %q: %w", part, err)
		}
		if day < 0 || day > 6 {
			return 0, fmt.Errorf("day index %d out of range 0..6", day)
		}
		set |= 1 << uint(day)
	}
	return set, nil
}

// DaySetFromStored parses a persisted day selection. Unparseable input fails
// open to every day: a corrupt definition should over-notify, never silently
// go dark. An explicitly empty selection stays empty.
func DaySetFromStored(raw string) DaySet {
	set, err := ParseDaySet(raw)
	if err != nil {
		return AllDays
	}
	return set
}

// WeekdayIndex converts time.Weekday (Sun=0) to the Mon=0..Sun=6 index.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
