package domain

import "errors"

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrNoActiveDays     = errors.New("reminder has no active days")
	ErrInvalidTimeOfDay = errors.New("time of day out of range")
)
