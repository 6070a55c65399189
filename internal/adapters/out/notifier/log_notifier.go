// Package notifier delivers customer notifications.
package notifier

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/ports"
)

// LogNotifier writes notifications to the log in place of an e-mail provider.
type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	n.logger.InfoContext(ctx, "notification sent",
		"customer_id", msg.CustomerID.String(),
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
