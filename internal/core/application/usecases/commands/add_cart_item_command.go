package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand puts an item into a customer's cart.
//
// Example:
//
//	cmd, err := NewAddCartItemCommand(customerID, itemID, 2)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	itemID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to put quantity units of an item into
// the customer's cart. Validates both identifiers and that quantity is at least 1.
// Returns an error if any validation fails.
func NewAddCartItemCommand(customerID, itemID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		customerID.Validate(),
		itemID.Validate(),
		validatePositiveQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}
	cmd.customerID = customerID
	cmd.itemID = itemID
	cmd.quantity = quantity
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddCartItemCommandIsNotConstructed if validation fails.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the unique identifier of the customer.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ItemID returns the unique identifier of the item.
func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the number of units.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func validatePositiveQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
