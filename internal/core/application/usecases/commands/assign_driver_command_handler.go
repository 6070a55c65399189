package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
)

// AssignDriverCommandHandler binds a driver to an order and marks the driver busy.
// Both writes share the transaction.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(uowFactory)
//	cmd, _ := NewAssignDriverCommand(orderID, nil)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    log.Println("All drivers are busy")
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory UoWFactory) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{uowFactory: uowFactory}
}

// Handle assigns the driver and moves the order to DRIVER_ASSIGNED.
// Returns services.ErrDriverNotFound when no driver is available.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(uow UoW, o *order.Order, now time.Time) error {
		driverRepo := uow.DriverRepository()

		var (
			assigned *driver.Driver
			err      error
		)
		if cmd.DriverID() != nil {
			if assigned, err = driverRepo.Get(ctx, *cmd.DriverID()); err != nil {
				return err
			}
			err = services.Assign(o, assigned, now)
		} else {
			var candidates []*driver.Driver
			if candidates, err = driverRepo.GetAllAvailable(ctx); err != nil {
				return err
			}
			assigned, err = services.NewDriverDispatcher().Dispatch(o, candidates, now)
		}
		if err != nil {
			return err
		}

		return driverRepo.Update(ctx, assigned)
	})
}
