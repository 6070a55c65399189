package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
)

// ChargeRequest describes one charge attempt.
type ChargeRequest struct {
	PaymentID kernel.UUID
	OrderID   kernel.UUID
	Amount    kernel.Money
	Method    payment.Method
}

// ChargeResult is the gateway verdict. Declined charges are not errors.
type ChargeResult struct {
	Approved  bool
	Reference string
	Reason    string
}

// PaymentGateway performs the external charge. Implementations must honour ctx
// cancellation; errors are treated as transient and may be retried.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
