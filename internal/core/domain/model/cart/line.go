package cart

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Line is one catalog item in a cart. TotalPrice is always UnitPrice × Quantity.
type Line struct {
	id         kernel.UUID
	itemID     kernel.UUID
	unitPrice  kernel.Money
	quantity   int
	totalPrice kernel.Money
}

func newLine(id, itemID kernel.UUID, unitPrice kernel.Money, quantity int) (Line, error) {
	l := Line{id: id, itemID: itemID}
	if err := l.reprice(unitPrice, quantity); err != nil {
		return Line{}, err
	}
	return l, nil
}

// RestoreLine rebuilds a line from storage, recomputing its total.
func RestoreLine(id, itemID kernel.UUID, unitPrice kernel.Money, quantity int) (Line, error) {
	if err := errors.Join(id.Validate(), itemID.Validate(), unitPrice.Validate()); err != nil {
		return Line{}, err
	}
	return newLine(id, itemID, unitPrice, quantity)
}

func (l Line) ID() kernel.UUID          { return l.id }
func (l Line) ItemID() kernel.UUID      { return l.itemID }
func (l Line) UnitPrice() kernel.Money  { return l.unitPrice }
func (l Line) Quantity() int            { return l.quantity }
func (l Line) TotalPrice() kernel.Money { return l.totalPrice }

func (l *Line) reprice(unitPrice kernel.Money, quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	total, err := unitPrice.Multiply(quantity)
	if err != nil {
		return err
	}
	l.unitPrice = unitPrice
	l.quantity = quantity
	l.totalPrice = total
	return nil
}
