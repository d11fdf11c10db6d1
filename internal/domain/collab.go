package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=collab.go -destination=collab_mock.go -package=domain

// EntryCountStore exposes the journal entry count over a half-open
// [startInclusive, endExclusive) creation-time window. The read must be a
// point-in-time consistent snapshot.
type EntryCountStore interface {
	CountEntriesInRange(ctx context.Context, startInclusive, endExclusive time.Time) (int, error)
}

// StreakService returns the user's current writing streak. It may fail;
// callers must degrade to a streak of zero rather than abort.
type StreakService interface {
	CurrentStreak(ctx context.Context) (int, error)
}
