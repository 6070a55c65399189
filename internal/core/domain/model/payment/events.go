package payment

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
)

// StatusChangedEventName routes StatusChanged events.
const StatusChangedEventName = "payment.status_changed"

// StatusChanged is raised whenever a payment changes status.
// OrderID is nil once the payment has been detached from its order.
type StatusChanged struct {
	ddd.BaseEvent
	PaymentID kernel.UUID
	OrderID   *kernel.UUID
	OldStatus Status
	NewStatus Status
}
