package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand hands a READY_FOR_PICKUP order to a driver.
// Without an explicit driver the first available one is dispatched.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to an order.
// A nil driverID leaves the choice to the dispatcher.
// Returns an error if an identifier is invalid.
func NewAssignDriverCommand(orderID kernel.UUID, driverID *kernel.UUID) (AssignDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return AssignDriverCommand{}, err
		}
	}
	return AssignDriverCommand{orderID: orderID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignDriverCommandIsNotConstructed if validation fails.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the requested driver, or nil to dispatch the first available one.
func (c AssignDriverCommand) DriverID() *kernel.UUID {
	return c.driverID
}
