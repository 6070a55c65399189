package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a checkout of a customer's cart.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, driverID, "12 Allen Ave")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	driverID        kernel.UUID
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers. The delivery address is optional.
func NewCreateOrderCommand(
	orderID, customerID, driverID kernel.UUID,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		driverID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.customerID = customerID
	cmd.driverID = driverID
	cmd.deliveryAddress = strings.TrimSpace(deliveryAddress)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the unique identifier of the customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DriverID returns the driver identifier.
func (c CreateOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DeliveryAddress returns where the order is delivered.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}
