package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Notification is a message for a customer.
type Notification struct {
	CustomerID kernel.UUID
	Subject    string
	Body       string
}

// Notifier sends customer notifications such as e-mail.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
