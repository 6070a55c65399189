package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand opens a payment for an order.
//
// Example:
//
//	cmd, err := NewCreatePaymentCommand(kernel.NewUUID(), orderID, payment.CreditCard)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to open payment: %w", err)
//	}
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderID   kernel.UUID
	method    payment.Method

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a command to open a payment for an order.
// Validates both identifiers and the method. Returns an error if any validation fails.
func NewCreatePaymentCommand(paymentID, orderID kernel.UUID, method payment.Method) (CreatePaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), orderID.Validate(), method.Validate()); err != nil {
		return CreatePaymentCommand{}, err
	}
	return CreatePaymentCommand{
		paymentID: paymentID,
		orderID:   orderID,
		method:    method,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePaymentCommandIsNotConstructed if validation fails.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// PaymentID returns the unique identifier of the payment.
func (c CreatePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the unique identifier of the order.
func (c CreatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Method returns the payment method.
func (c CreatePaymentCommand) Method() payment.Method {
	return c.method
}

// CreatePaymentCommandHandler opens the single payment of an order.
//
// Business rules:
//   - The order must be PREPARING or in a PAYMENT_* state
//   - An order has at most one payment; a second one fails with AlreadyExistsError
//   - The amount is the order total
//   - The order moves to PAYMENT_PENDING in the same transaction
type CreatePaymentCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreatePaymentCommandHandler creates a handler for payment creation.
func NewCreatePaymentCommandHandler(uowFactory UoWFactory) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{uowFactory: uowFactory}
}

// Handle stores a PENDING payment for the order's total.
// Returns AlreadyExistsError when the order already has one.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.Status().IsPaymentEligible() {
		return errs.NewPreconditionFailedError("order " + o.ID().String() + " is " + o.Status().String())
	}

	paymentRepo := uow.PaymentRepository()
	exists, err := paymentRepo.ExistsForOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewAlreadyExistsError("payment", "order "+o.ID().String())
	}

	now := time.Now().UTC()
	p, err := payment.NewPayment(cmd.PaymentID(), o.ID(), o.Total(), cmd.Method(), now)
	if err != nil {
		return err
	}
	if err = paymentRepo.Add(ctx, p); err != nil {
		return err
	}

	if err = syncOrder(ctx, uow, o.ID(), order.PaymentPending, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
