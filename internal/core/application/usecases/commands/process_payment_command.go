package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand charges a PENDING payment through the gateway.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to charge a payment. Returns an error if the ID is invalid.
func NewProcessPaymentCommand(paymentID kernel.UUID) (ProcessPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ProcessPaymentCommand{}, err
	}
	return ProcessPaymentCommand{paymentID: paymentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessPaymentCommandIsNotConstructed if validation fails.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// PaymentID returns the unique identifier of the payment.
func (c ProcessPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}
