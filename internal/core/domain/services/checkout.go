package services

import (
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/pkg/errs"
)

// ErrCartIsEmpty is returned when checkout is attempted on a cart without lines.
var ErrCartIsEmpty = errs.NewPreconditionFailedError("cart is empty")

// CheckoutRequest carries everything needed to place an order.
type CheckoutRequest struct {
	OrderID         kernel.UUID
	Cart            *cart.Cart
	DriverID        *kernel.UUID
	Vendors         []*vendor.Vendor
	DeliveryAddress string
	Now             time.Time
}

// Checkout converts a cart into a PENDING order.
//
// Business rules:
//   - The cart must have at least one line
//   - Every line must resolve to an available item of one of the given vendors
//   - Item snapshots use the current catalog price, so total = Σ(qty × price) + DeliveryFee
//   - Vendor snapshots are deduplicated and keep cart line order
//   - The cart is cleared only after the order has been built
//
// Example usage:
//
//	o, err := services.NewCheckout().PlaceOrder(services.CheckoutRequest{
//	    OrderID: kernel.NewUUID(), Cart: c, Vendors: vendors, Now: time.Now(),
//	})
type Checkout struct{}

func NewCheckout() Checkout {
	return Checkout{}
}

// PlaceOrder builds the order and clears the cart. On error neither aggregate is changed.
func (Checkout) PlaceOrder(req CheckoutRequest) (*order.Order, error) {
	if err := req.Cart.Validate(); err != nil {
		return nil, err
	}
	if req.Cart.IsEmpty() {
		return nil, ErrCartIsEmpty
	}

	items, vendors, err := snapshot(req.Cart.Lines(), req.Vendors)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		req.OrderID,
		req.Cart.CustomerID(),
		req.Cart.ID(),
		req.DriverID,
		items,
		vendors,
		req.DeliveryAddress,
		req.Now,
	)
	if err != nil {
		return nil, err
	}

	req.Cart.Clear(req.Now)
	return o, nil
}

func snapshot(lines []cart.Line, vendors []*vendor.Vendor) ([]order.ItemSummary, []order.VendorSummary, error) {
	var (
		items      = make([]order.ItemSummary, 0, len(lines))
		summaries  []order.VendorSummary
		seenVendor = make(map[string]struct{})
	)

	for _, line := range lines {
		v, item := findItem(vendors, line.ItemID())
		if item == nil {
			return nil, nil, errs.NewObjectNotFoundError("item", line.ItemID().String())
		}
		if !item.IsAvailable() {
			return nil, nil, errs.NewPreconditionFailedError("item " + item.Name() + " is not available")
		}

		items = append(items, order.ItemSummary{
			ItemID:      item.ID(),
			Name:        item.Name(),
			Description: item.Description(),
			Price:       item.Price(),
			Quantity:    line.Quantity(),
			VendorID:    v.ID(),
			VendorName:  v.Name(),
		})

		if _, ok := seenVendor[v.ID().String()]; !ok {
			seenVendor[v.ID().String()] = struct{}{}
			summaries = append(summaries, order.VendorSummary{
				VendorID:   v.ID(),
				Name:       v.Name(),
				VendorType: v.Type().String(),
			})
		}
	}

	return items, summaries, nil
}

func findItem(vendors []*vendor.Vendor, itemID kernel.UUID) (*vendor.Vendor, *vendor.Item) {
	for _, v := range vendors {
		if item, err := v.Item(itemID); err == nil {
			return v, item
		}
	}
	return nil, nil
}
