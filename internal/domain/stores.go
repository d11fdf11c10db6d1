package domain

import (
	"context"
	"time"
)

// ReminderStore persists writing reminder definitions, keyed by stable id.
type ReminderStore interface {
	Save(ctx context.Context, def *ReminderDefinition) error
	Get(ctx context.Context, id string) (*ReminderDefinition, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]ReminderDefinition, error)
}

// GoalStore persists goal definitions, keyed by stable id.
type GoalStore interface {
	Save(ctx context.Context, def *GoalDefinition) error
	Get(ctx context.Context, id string) (*GoalDefinition, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]GoalDefinition, error)
}

// CheckInStore records goal check-ins. RecordCheckIn is idempotent per
// (goalID, day): it reports whether this call created the record.
type CheckInStore interface {
	RecordCheckIn(ctx context.Context, goalID, day string) (created bool, err error)
	HasCheckIn(ctx context.Context, goalID, day string) (bool, error)
}

// DeliveryLedger deduplicates user-visible deliveries. MarkDelivered reports
// whether this is the first delivery for (kind, ownerID, day).
type DeliveryLedger interface {
	MarkDelivered(ctx context.Context, kind Kind, ownerID, day string) (first bool, err error)
}

// DeliveryRecord captures the outcome of one dispatch for offline analysis.
type DeliveryRecord struct {
	Kind    string
	OwnerID string
	Outcome string
	FiredAt time.Time
}

type DeliveryRecorder interface {
	RecordDelivery(ctx context.Context, record DeliveryRecord) error
	Close() error
}
