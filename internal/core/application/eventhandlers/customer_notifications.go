package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
)

// CustomerNotifications tells customers when their order is delivered, completed or cancelled.
type CustomerNotifications struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func NewCustomerNotifications(notifier ports.Notifier, logger *slog.Logger) CustomerNotifications {
	return CustomerNotifications{notifier: notifier, logger: logger.With("component", "customer-notifications")}
}

func (c CustomerNotifications) Publish(ctx context.Context, events ...ddd.DomainEvent) {
	for _, event := range events {
		changed, ok := event.(order.StatusChanged)
		if !ok {
			continue
		}
		n, ok := notificationFor(changed)
		if !ok {
			continue
		}
		if err := c.notifier.Notify(ctx, n); err != nil {
			c.logger.ErrorContext(ctx, "failed to notify customer",
				"customer_id", changed.CustomerID.String(),
				"order_id", changed.OrderID.String(),
				"error", err,
			)
		}
	}
}

func notificationFor(changed order.StatusChanged) (ports.Notification, bool) {
	var subject string
	switch {
	case changed.NewStatus == order.Delivered:
		subject = "Your order has arrived"
	case changed.NewStatus == order.Completed:
		subject = "Thanks for ordering"
	case changed.NewStatus.IsCancellation():
		subject = "Your order was cancelled"
	default:
		return ports.Notification{}, false
	}
	return ports.Notification{
		CustomerID: changed.CustomerID,
		Subject:    subject,
		Body:       fmt.Sprintf("Order %s is now %s.", changed.OrderID, changed.NewStatus),
	}, true
}
