package presenter

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/inkwell-reminder-engine/internal/domain"
)

// LogPresenter writes notifications to the log instead of a device. Used in
// local development when no push gateway is configured.
type LogPresenter struct{}

func NewLogPresenter() *LogPresenter {
	return &LogPresenter{}
}

func (p *LogPresenter) Show(ctx context.Context, n *domain.Notification) error {
	slog.InfoContext(ctx, "notification",
		slog.Int("notification_id", n.ID),
		slog.String("channel", string(n.Channel)),
		slog.String("title", n.Title),
		slog.String("body", n.Body),
	)
	return nil
}
