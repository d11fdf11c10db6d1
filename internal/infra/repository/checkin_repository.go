package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	checkInKeyPrefix = "reminder:checkin:"

	// Check-ins only matter for same-day idempotence and streak queries over
	// the trailing week.
	checkInTTL = 8 * 24 * time.Hour
)

type CheckInRepository struct {
	client *redis.Client
}

func NewCheckInRepository(client *redis.Client) *CheckInRepository {
	return &CheckInRepository{client: client}
}

// RecordCheckIn marks a goal as done for the given day. SETNX makes repeat
// taps on the same day's notification a no-op.
func (r *CheckInRepository) RecordCheckIn(ctx context.Context, goalID, day string) (bool, error) {
	key := checkInKeyPrefix + goalID + ":" + day

	created, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), checkInTTL).Result()
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *CheckInRepository) HasCheckIn(ctx context.Context, goalID, day string) (bool, error) {
	key := checkInKeyPrefix + goalID + ":" + day

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
