package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrChangeCartCommandIsNotConstructed = errors.New(
	"ChangeCartCommand must be created via one of the NewXxxCartCommand constructors",
)

// CartChange selects what ChangeCartCommand does to the cart.
type CartChange int

const (
	// RemoveQuantity decrements a line; the line is dropped when nothing would remain.
	RemoveQuantity CartChange = iota + 1
	// DeleteLine drops a line regardless of quantity.
	DeleteLine
	// ClearCart drops every line and keeps the cart.
	ClearCart
)

// ChangeCartCommand removes content from a cart, addressed either by its
// customer or, for checkout, by the cart id.
// Removing an item that is not in the cart is a no-op.
type ChangeCartCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	cartID     kernel.UUID
	byCart     bool
	change     CartChange
	itemID     kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewRemoveCartItemCommand creates a command to take quantity units of an item
// out of the customer's cart. Returns an error if an identifier or the quantity is invalid.
func NewRemoveCartItemCommand(customerID, itemID kernel.UUID, quantity int) (ChangeCartCommand, error) {
	if err := errors.Join(customerID.Validate(), itemID.Validate(), validatePositiveQuantity(quantity)); err != nil {
		return ChangeCartCommand{}, err
	}
	return ChangeCartCommand{
		customerID: customerID,
		change:     RemoveQuantity,
		itemID:     itemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewDeleteCartLineCommand creates a command to drop an item from the customer's cart.
func NewDeleteCartLineCommand(customerID, itemID kernel.UUID) (ChangeCartCommand, error) {
	if err := errors.Join(customerID.Validate(), itemID.Validate()); err != nil {
		return ChangeCartCommand{}, err
	}
	return ChangeCartCommand{
		customerID: customerID,
		change:     DeleteLine,
		itemID:     itemID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewClearCartCommand creates a command to empty the customer's cart.
func NewClearCartCommand(customerID kernel.UUID) (ChangeCartCommand, error) {
	if err := customerID.Validate(); err != nil {
		return ChangeCartCommand{}, err
	}
	return ChangeCartCommand{
		customerID: customerID,
		change:     ClearCart,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewCheckoutCartCommand clears the cart with the given id once its content
// has been checked out.
func NewCheckoutCartCommand(cartID kernel.UUID) (ChangeCartCommand, error) {
	if err := cartID.Validate(); err != nil {
		return ChangeCartCommand{}, err
	}
	return ChangeCartCommand{
		cartID: cartID,
		byCart: true,
		change: ClearCart,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeCartCommandIsNotConstructed if validation fails.
func (c ChangeCartCommand) Validate() error {
	return c.guard.Validate(ErrChangeCartCommandIsNotConstructed)
}

// CustomerID returns the unique identifier of the customer.
func (c ChangeCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CartID returns the unique identifier of the cart.
func (c ChangeCartCommand) CartID() kernel.UUID {
	return c.cartID
}

// ByCart reports whether the cart is addressed by its id instead of its customer.
func (c ChangeCartCommand) ByCart() bool {
	return c.byCart
}

// Change returns what the command does to the cart.
func (c ChangeCartCommand) Change() CartChange {
	return c.change
}

// ItemID returns the unique identifier of the item.
func (c ChangeCartCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the number of units.
func (c ChangeCartCommand) Quantity() int {
	return c.quantity
}
