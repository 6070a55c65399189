// Package cart holds the Cart aggregate: a customer's basket of catalog items awaiting checkout.
//
// Quantity policy: removing at least as many units as a line holds deletes the line.
// Removing an item the cart does not hold is a no-op.
package cart

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

// Cart is owned by exactly one customer and holds at most one line per catalog item.
type Cart struct {
	ddd.BaseAggregate

	id         kernel.UUID
	customerID kernel.UUID
	lines      []Line
	updatedAt  time.Time

	isConstructed bool
}

// NewCart creates an empty cart for a customer.
func NewCart(id, customerID kernel.UUID, now time.Time) (*Cart, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	return &Cart{
		id:            id,
		customerID:    customerID,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCart rebuilds a cart and its lines from storage.
func RestoreCart(id, customerID kernel.UUID, lines []Line, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(id, customerID, updatedAt)
	if err != nil {
		return nil, err
	}
	c.lines = append([]Line(nil), lines...)
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) ID() kernel.UUID         { return c.id }
func (c *Cart) CustomerID() kernel.UUID { return c.customerID }
func (c *Cart) UpdatedAt() time.Time    { return c.updatedAt }
func (c *Cart) IsEmpty() bool           { return len(c.lines) == 0 }

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemIDs lists the catalog items held by the cart.
func (c *Cart) ItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		ids = append(ids, l.itemID)
	}
	return ids
}

// Total is the running sum of the line totals, without delivery fee.
func (c *Cart) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range c.lines {
		total = total.Add(l.totalPrice)
	}
	return total
}

// AddItem puts quantity units of an item into the cart. An existing line accumulates
// the quantity and is repriced with the current unit price.
func (c *Cart) AddItem(itemID kernel.UUID, unitPrice kernel.Money, quantity int, now time.Time) error {
	if err := errors.Join(itemID.Validate(), unitPrice.Validate()); err != nil {
		return err
	}
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	if i := c.indexOf(itemID); i >= 0 {
		if err := c.lines[i].reprice(unitPrice, c.lines[i].quantity+quantity); err != nil {
			return err
		}
		c.updatedAt = now
		return nil
	}

	line, err := newLine(kernel.NewUUID(), itemID, unitPrice, quantity)
	if err != nil {
		return err
	}
	c.lines = append(c.lines, line)
	c.updatedAt = now
	return nil
}

// RemoveItem takes quantity units of an item out of the cart. The line is deleted
// when no units remain. Unknown items are ignored.
func (c *Cart) RemoveItem(itemID kernel.UUID, quantity int, now time.Time) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	i := c.indexOf(itemID)
	if i < 0 {
		return nil
	}

	remaining := c.lines[i].quantity - quantity
	if remaining <= 0 {
		c.deleteAt(i)
	} else if err := c.lines[i].reprice(c.lines[i].unitPrice, remaining); err != nil {
		return err
	}
	c.updatedAt = now
	return nil
}

// DeleteLine removes the line of an item whatever its quantity.
func (c *Cart) DeleteLine(itemID kernel.UUID, now time.Time) {
	if i := c.indexOf(itemID); i >= 0 {
		c.deleteAt(i)
		c.updatedAt = now
	}
}

// Clear removes every line. The cart itself stays usable.
func (c *Cart) Clear(now time.Time) {
	c.lines = nil
	c.updatedAt = now
}

func (c *Cart) indexOf(itemID kernel.UUID) int {
	for i, l := range c.lines {
		if l.itemID.IsEqual(itemID) {
			return i
		}
	}
	return -1
}

func (c *Cart) deleteAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
