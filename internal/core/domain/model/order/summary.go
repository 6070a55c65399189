package order

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// VendorSummary is the snapshot of a vendor taken when the order was placed.
type VendorSummary struct {
	VendorID   kernel.UUID
	Name       string
	VendorType string
}

// ItemSummary is the snapshot of an ordered catalog item. Price is the unit price at
// checkout; later catalog price changes do not reach it.
type ItemSummary struct {
	ItemID      kernel.UUID
	Name        string
	Description string
	Price       kernel.Money
	Quantity    int
	VendorID    kernel.UUID
	VendorName  string
}

// LineTotal returns Price × Quantity.
func (i ItemSummary) LineTotal() (kernel.Money, error) {
	return i.Price.Multiply(i.Quantity)
}

// Validate checks the snapshot is complete.
func (i ItemSummary) Validate() error {
	if i.Quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", i.Quantity, 1, "unbounded")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	return errors.Join(i.ItemID.Validate(), i.VendorID.Validate(), i.Price.Validate())
}

// Validate checks the snapshot is complete.
func (v VendorSummary) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errs.NewValueIsRequiredError("vendor name")
	}
	return v.VendorID.Validate()
}
