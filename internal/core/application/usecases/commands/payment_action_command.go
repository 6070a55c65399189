package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/guard"
)

var ErrPaymentActionCommandIsNotConstructed = errors.New(
	"PaymentActionCommand must be created via NewPaymentActionCommand constructor",
)

// PaymentAction is a synchronous payment lifecycle step.
type PaymentAction int

const (
	RefundPayment PaymentAction = iota + 1
	CancelPayment
	DeletePayment
)

// String returns the lowercase action name.
func (a PaymentAction) String() string {
	switch a {
	case RefundPayment:
		return "refund"
	case CancelPayment:
		return "cancel"
	case DeletePayment:
		return "delete"
	}
	return fmt.Sprintf("PaymentAction(%d)", int(a))
}

// PaymentActionCommand applies one PaymentAction to a payment.
//
// Example:
//
//	cmd, _ := NewPaymentActionCommand(paymentID, RefundPayment)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type PaymentActionCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	action    PaymentAction

	guard guard.ConstructorGuard
}

// NewPaymentActionCommand creates a command for a payment action.
// Returns an error for an invalid payment ID or an unknown action.
func NewPaymentActionCommand(paymentID kernel.UUID, action PaymentAction) (PaymentActionCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return PaymentActionCommand{}, err
	}
	if action < RefundPayment || action > DeletePayment {
		return PaymentActionCommand{}, fmt.Errorf("unknown payment action %d", action)
	}
	return PaymentActionCommand{paymentID: paymentID, action: action, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPaymentActionCommandIsNotConstructed if validation fails.
func (c PaymentActionCommand) Validate() error {
	return c.guard.Validate(ErrPaymentActionCommandIsNotConstructed)
}

// PaymentID returns the unique identifier of the payment.
func (c PaymentActionCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// Action returns the payment action to perform.
func (c PaymentActionCommand) Action() PaymentAction {
	return c.action
}

// PaymentActionCommandHandler refunds, cancels or deletes payments.
//
//   - refund: payment must be COMPLETED; the order moves to REFUNDED when it is
//     COMPLETED, otherwise it is left as it is
//   - cancel: payment must be PENDING; the order goes back to PREPARING, else to
//     CANCELLED_BY_SYSTEM, whichever the state machine allows first
//   - delete: payment must be FAILED or CANCELLED
type PaymentActionCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewPaymentActionCommandHandler creates a handler for refunds, cancellations and deletions.
func NewPaymentActionCommandHandler(uowFactory UoWFactory, logger *slog.Logger) PaymentActionCommandHandler {
	return PaymentActionCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "payment-actions"),
	}
}

// Handle applies the action and syncs the order in the same transaction.
// Returns InvalidTransitionError when the payment is in the wrong status.
func (h PaymentActionCommandHandler) Handle(ctx context.Context, cmd PaymentActionCommand) error {
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

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch cmd.Action() {
	case RefundPayment:
		err = h.refund(ctx, uow, p, now)
	case CancelPayment:
		err = h.cancel(ctx, uow, p, now)
	case DeletePayment:
		if err = p.EnsureDeletable(); err == nil {
			err = paymentRepo.Delete(ctx, p.ID())
		}
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h PaymentActionCommandHandler) refund(ctx context.Context, uow UoW, p *payment.Payment, now time.Time) error {
	if err := p.Refund(now); err != nil {
		return err
	}
	if err := uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}
	if orderID, ok := attachedOrder(p); ok {
		return trySyncOrder(ctx, uow, h.logger, orderID, now, order.Refunded)
	}
	return nil
}

func (h PaymentActionCommandHandler) cancel(ctx context.Context, uow UoW, p *payment.Payment, now time.Time) error {
	if err := p.Cancel(now); err != nil {
		return err
	}
	if err := uow.PaymentRepository().Update(ctx, p); err != nil {
		return err
	}
	if orderID, ok := attachedOrder(p); ok {
		return trySyncOrder(ctx, uow, h.logger, orderID, now, order.Preparing, order.CancelledBySystem)
	}
	return nil
}
