package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// DeliveryStep is a driver-side milestone.
type DeliveryStep int

const (
	PickUp DeliveryStep = iota + 1
	StartDelivery
	// Deliver performs DELIVERED and then COMPLETED.
	Deliver
)

// AdvanceDeliveryCommand moves an assigned order along the driver's route.
//
// Example:
//
//	cmd, err := NewAdvanceDeliveryCommand(orderID, PickUp)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	step    DeliveryStep

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a command for one delivery step.
// Returns an error for an invalid order ID or an unknown step.
func NewAdvanceDeliveryCommand(orderID kernel.UUID, step DeliveryStep) (AdvanceDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AdvanceDeliveryCommand{}, err
	}
	if step < PickUp || step > Deliver {
		return AdvanceDeliveryCommand{}, fmt.Errorf("unknown delivery step %d", step)
	}
	return AdvanceDeliveryCommand{orderID: orderID, step: step, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceDeliveryCommandIsNotConstructed if validation fails.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order.
func (c AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Step returns the delivery milestone to reach.
func (c AdvanceDeliveryCommand) Step() DeliveryStep {
	return c.step
}

// AdvanceDeliveryCommandHandler requires the immediately preceding status for every step.
type AdvanceDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdvanceDeliveryCommandHandler creates a handler for driver milestones.
func NewAdvanceDeliveryCommandHandler(uowFactory UoWFactory) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle applies the step to the order. Returns InvalidTransitionError when the
// order is not in the preceding status.
func (h AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(_ UoW, o *order.Order, now time.Time) error {
		switch cmd.Step() {
		case PickUp:
			return o.MarkPickedUp(now)
		case StartDelivery:
			return o.MarkOutForDelivery(now)
		default:
			return o.MarkDelivered(now)
		}
	})
}
