package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

const (
	deliveryKeyPrefix = "reminder:delivered:"

	// A ledger entry only guards against double delivery within its own day.
	deliveryTTL = 48 * time.Hour
)

// DeliveryLedgerRepository deduplicates user-visible deliveries per
// (kind, ownerID, day) on a SETNX key.
type DeliveryLedgerRepository struct {
	client *redis.Client
}

func NewDeliveryLedgerRepository(client *redis.Client) *DeliveryLedgerRepository {
	return &DeliveryLedgerRepository{client: client}
}

func (r *DeliveryLedgerRepository) MarkDelivered(ctx context.Context, kind domain.Kind, ownerID, day string) (bool, error) {
	key := deliveryKeyPrefix + kind.String() + ":" + ownerID + ":" + day

	first, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), deliveryTTL).Result()
	if err != nil {
		return false, err
	}
	return first, nil
}
