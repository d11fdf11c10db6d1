package domain

import "context"

//go:generate mockgen -source=notification.go -destination=notification_mock.go -package=domain

// ChannelKind selects the presentation channel for a notification.
type ChannelKind string

const (
	ChannelWriting ChannelKind = "writing"
	ChannelGoal    ChannelKind = "goal"
	ChannelNudge   ChannelKind = "nudge"
	// ChannelConfirm is a brief auto-dismissing confirmation toast.
	ChannelConfirm ChannelKind = "confirm"
)

// InlineAction is a button rendered on the notification that calls back
// into the engine without opening the app.
type InlineAction struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	CallbackPath string `json:"callback_path"`
}

// Notification is the payload handed to the presentation layer. ID is the
// deterministic request handle of the owning schedule, so a re-delivery
// replaces rather than stacks.
type Notification struct {
	ID            int            `json:"id"`
	Channel       ChannelKind    `json:"channel"`
	Title         string         `json:"title"`
	Body          string         `json:"body"`
	TapAction     string         `json:"tap_action,omitempty"`
	InlineActions []InlineAction `json:"inline_actions,omitempty"`
}

// NotificationPresenter renders a notification to the user.
type NotificationPresenter interface {
	Show(ctx context.Context, n *Notification) error
}

// PermissionOracle reports the runtime-granted capabilities the engine
// degrades around. Both can change while the process is running.
type PermissionOracle interface {
	CanScheduleExactWakeups() bool
	CanShowNotifications() bool
}
