package commands

import (
	"context"
	"time"

	"fooddelivery/internal/pkg/errs"
)

// AddCartItemCommandHandler adds catalog items to carts.
// The line is priced with the item's current catalog price. Unavailable items
// are rejected with a PreconditionFailedError.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a handler backed by the cart unit of work.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle prices the item from the catalog and merges it into the customer's cart.
// The cart row stays locked until the transaction ends.
func (h AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	vendorRepo := uow.VendorRepository()

	c, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	v, err := vendorRepo.GetByItem(ctx, cmd.ItemID())
	if err != nil {
		return err
	}
	item, err := v.Item(cmd.ItemID())
	if err != nil {
		return err
	}
	if !item.IsAvailable() {
		return errs.NewPreconditionFailedError("item " + item.Name() + " is not available")
	}

	if err = c.AddItem(item.ID(), item.Price(), cmd.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
