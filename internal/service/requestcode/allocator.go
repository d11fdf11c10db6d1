package requestcode

import (
	"hash/fnv"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// BucketSize is the width of the per-kind handle range. The kind offsets
// advance in BucketSize strides, so handles of different kinds can never
// collide even when two owner ids hash to the same bucket.
const BucketSize = 100000

const (
	writingOffset  = 0
	goalOffset     = 1 * BucketSize
	fallbackOffset = 2 * BucketSize
	snoozeOffset   = 3 * BucketSize
)

// Handle maps (kind, ownerID) to the integer request handle used to install
// and later cancel a wakeup. It is a pure function: re-deriving the handle
// at cancel time reproduces the install-time value with no lookup table.
//
// Two distinct owner ids within the same kind can hash to the same bucket.
// That residual collision risk is accepted; widening it away would require
// a persisted allocation table, which this layer deliberately has none of.
func Handle(kind domain.Kind, ownerID string) int {
	h := fnv.New32a()
	h.Write([]byte(ownerID)) //nolint:errcheck // fnv writes cannot fail

	bucket := int(h.Sum32() % BucketSize)
	return kindOffset(kind) + bucket
}

func kindOffset(kind domain.Kind) int {
	switch kind {
	case domain.KindGoal:
		return goalOffset
	case domain.KindFallback:
		return fallbackOffset
	case domain.KindSnooze:
		return snoozeOffset
	default:
		return writingOffset
	}
}
