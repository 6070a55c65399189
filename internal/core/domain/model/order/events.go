package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
)

// StatusChangedEventName routes StatusChanged events.
const StatusChangedEventName = "order.status_changed"

// StatusChanged is raised for every accepted transition.
// DriverID is the driver bound to the order before the transition, so
// cancellations still name the driver they released.
type StatusChanged struct {
	ddd.BaseEvent
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	DriverID   *kernel.UUID
	OldStatus  Status
	NewStatus  Status
}

func newStatusChanged(o *Order, oldStatus Status, driverID *kernel.UUID, now time.Time) StatusChanged {
	return StatusChanged{
		BaseEvent:  ddd.NewBaseEvent(StatusChangedEventName, now),
		OrderID:    o.id,
		CustomerID: o.customerID,
		DriverID:   driverID,
		OldStatus:  oldStatus,
		NewStatus:  o.status,
	}
}
