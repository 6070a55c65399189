package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
)

// ChangeCartCommandHandler applies removals to a cart under the cart row lock.
type ChangeCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewChangeCartCommandHandler creates a handler backed by the cart unit of work.
func NewChangeCartCommandHandler(uowFactory CartUoWFactory) ChangeCartCommandHandler {
	return ChangeCartCommandHandler{uowFactory: uowFactory}
}

// Handle loads the cart with a row lock, applies the change and stores it.
// Returns NotFoundError when the cart does not exist.
func (h ChangeCartCommandHandler) Handle(ctx context.Context, cmd ChangeCartCommand) error {
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
	var c *cart.Cart
	var err error
	if cmd.ByCart() {
		c, err = cartRepo.Get(ctx, cmd.CartID())
	} else {
		c, err = cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch cmd.Change() {
	case RemoveQuantity:
		err = c.RemoveItem(cmd.ItemID(), cmd.Quantity(), now)
	case DeleteLine:
		c.DeleteLine(cmd.ItemID(), now)
	case ClearCart:
		c.Clear(now)
	default:
		err = fmt.Errorf("unknown cart change %d", cmd.Change())
	}
	if err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
