package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payments.
type PaymentRepository interface {
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update is version checked like OrderRepository.Update.
	Update(ctx context.Context, aggregate *payment.Payment) error

	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrder returns the payment attached to an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// ExistsForOrder reports whether any payment references the order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// DetachFromOrder clears the order reference of every payment pointing at orderID.
	DetachFromOrder(ctx context.Context, orderID kernel.UUID) error

	// GetAllStaleProcessing returns PROCESSING payments not updated since before.
	GetAllStaleProcessing(ctx context.Context, before time.Time) ([]*payment.Payment, error)
}
