package repository

import "errors"

var (
	ErrRedisConnection     = errors.New("redis connection error")
	ErrInvalidReminderData = errors.New("invalid reminder data")
	ErrInvalidGoalData     = errors.New("invalid goal data")
)
