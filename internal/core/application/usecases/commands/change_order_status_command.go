package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand or NewCancelOrderCommand",
)

// ChangeOrderStatusCommand drives one transition of the order state machine.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	cancel  bool

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to move an order to status.
// Validates the order ID and the status. Returns an error if any validation fails.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status order.Status) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	return ChangeOrderStatusCommand{orderID: orderID, status: status, guard: guard.NewConstructorGuard()}, nil
}

// NewCancelOrderCommand accepts only CANCELLED_* statuses.
func NewCancelOrderCommand(orderID kernel.UUID, cancellation order.Status) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), cancellation.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if !cancellation.IsCancellation() {
		return ChangeOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"cancellation status",
			fmt.Errorf("%s is not a cancellation status", cancellation),
		)
	}
	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  cancellation,
		cancel:  true,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the status the order should move to.
func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

// ChangeOrderStatusCommandHandler loads the order, applies the transition and
// stores it with a version check. Concurrent transitions on one order end with
// exactly one winner; the loser gets ConflictError.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewChangeOrderStatusCommandHandler creates a handler for order transitions.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle applies the transition. Returns InvalidTransitionError for an illegal
// move and ConflictError when another writer won the race.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(_ UoW, o *order.Order, now time.Time) error {
		if cmd.cancel {
			return o.Cancel(cmd.Status(), now)
		}
		return o.ChangeStatus(cmd.Status(), now)
	})
}

// updateOrder runs mutate against a freshly loaded order inside one unit of work
// and persists the result.
func updateOrder(
	ctx context.Context,
	uowFactory UoWFactory,
	orderID kernel.UUID,
	mutate func(uow UoW, o *order.Order, now time.Time) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(uow, o, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
