package notify

import (
	"context"
	"log/slog"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
)

// SlogNotifier writes cart notifications to the structured log. The server
// has no toast surface, so user feedback lands in the log stream where it
// can be shipped to the client over any future channel.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Notify(notification app.Notification) {
	level := slog.LevelInfo
	if notification.Kind == app.KindError {
		level = slog.LevelWarn
	}

	n.logger.LogAttrs(context.Background(), level, "cart notification",
		slog.String("kind", string(notification.Kind)),
		slog.String("title", notification.Title),
		slog.String("message", notification.Message),
	)
}

var _ app.Notifier = (*SlogNotifier)(nil)
