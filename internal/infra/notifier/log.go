package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

// LogNotifier writes notifications to the log. It stands in when no task
// queue is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Publish(ctx context.Context, notification domain.Notification) error {
	slog.WarnContext(ctx, "notification not delivered, no task queue configured",
		slog.String("kind", notification.Kind.String()),
		slog.String("subject", notification.Subject),
		slog.String("body", notification.Body),
	)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
