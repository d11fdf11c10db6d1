package domain

// Kind identifies the scheduling namespace a wakeup belongs to.
type Kind string

const (
	KindWriting  Kind = "writing"
	KindGoal     Kind = "goal"
	KindFallback Kind = "fallback"
	KindSnooze   Kind = "snooze"
)

func (k Kind) String() string {
	return string(k)
}

// Rearms reports whether a firing of this kind keeps its chain alive.
// Snooze wakeups are strictly one-shot.
func (k Kind) Rearms() bool {
	return k != KindSnooze
}
