package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateItemCommandIsNotConstructed = errors.New(
	"UpdateItemCommand must be created via NewUpdateItemCommand constructor",
)

// UpdateItemCommand changes the price and/or availability of a catalog item.
// Placed orders keep their snapshots; carts pick the new price up on the next addItem.
type UpdateItemCommand struct { //nolint:recvcheck //using for validation
	itemID    kernel.UUID
	price     *kernel.Money
	available *bool

	guard guard.ConstructorGuard
}

// NewUpdateItemCommand creates a command to reprice or toggle an item.
// At least one of price and available must be set. Returns an error if any validation fails.
func NewUpdateItemCommand(itemID kernel.UUID, price *kernel.Money, available *bool) (UpdateItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return UpdateItemCommand{}, err
	}
	if price == nil && available == nil {
		return UpdateItemCommand{}, errs.NewValueIsRequiredError("price or available")
	}
	if price != nil {
		if err := price.Validate(); err != nil {
			return UpdateItemCommand{}, err
		}
	}
	return UpdateItemCommand{itemID: itemID, price: price, available: available, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateItemCommandIsNotConstructed if validation fails.
func (c UpdateItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemCommandIsNotConstructed)
}

// ItemID returns the unique identifier of the item.
func (c UpdateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Price returns the new price, or nil to keep it.
func (c UpdateItemCommand) Price() *kernel.Money {
	return c.price
}

// Available returns the new availability, or nil to keep it.
func (c UpdateItemCommand) Available() *bool {
	return c.available
}

// UpdateItemCommandHandler applies item updates.
type UpdateItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewUpdateItemCommandHandler creates a handler backed by the catalog unit of work.
func NewUpdateItemCommandHandler(uowFactory CatalogUoWFactory) UpdateItemCommandHandler {
	return UpdateItemCommandHandler{uowFactory: uowFactory}
}

// Handle updates the item. Returns NotFoundError for an unknown item.
func (h UpdateItemCommandHandler) Handle(ctx context.Context, cmd UpdateItemCommand) error {
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

	vendorRepo := uow.VendorRepository()
	v, err := vendorRepo.GetByItem(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if cmd.Price() != nil {
		if err = v.ChangeItemPrice(cmd.ItemID(), *cmd.Price()); err != nil {
			return err
		}
	}
	if cmd.Available() != nil {
		if err = v.SetItemAvailability(cmd.ItemID(), *cmd.Available()); err != nil {
			return err
		}
	}

	if err = vendorRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
