package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their item and vendor snapshots.
type OrderRepository interface {
	// Add persists a new order with its snapshots.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, driver and receivedDate changes.
	// The stored version must match the aggregate version, otherwise ConflictError is returned.
	// Total and snapshots are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes the order and its snapshots. Payments are detached by the caller.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetIDsByCustomer lists the identifiers of every order placed by a customer.
	GetIDsByCustomer(ctx context.Context, customerID kernel.UUID) ([]kernel.UUID, error)

	// HasActiveForCart reports whether the cart already backs an order that is
	// neither finished nor cancelled.
	HasActiveForCart(ctx context.Context, cartID kernel.UUID) (bool, error)

	// GetAllInStatusSince returns orders that entered status before the given instant.
	GetAllInStatusSince(ctx context.Context, status order.Status, before time.Time) ([]*order.Order, error)
}
