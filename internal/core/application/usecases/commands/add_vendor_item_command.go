package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrAddVendorItemCommandIsNotConstructed = errors.New(
	"AddVendorItemCommand must be created via NewAddVendorItemCommand constructor",
)

// AddVendorItemCommand lists a new item in a vendor catalog.
type AddVendorItemCommand struct { //nolint:recvcheck //using for validation
	vendorID    kernel.UUID
	itemID      kernel.UUID
	name        string
	description string
	price       kernel.Money
	categoryID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddVendorItemCommand creates a command to list an item under a vendor.
// Validates both identifiers and the price. Returns an error if any validation fails.
func NewAddVendorItemCommand(
	vendorID, itemID kernel.UUID,
	name, description string,
	price kernel.Money,
	categoryID *kernel.UUID,
) (AddVendorItemCommand, error) {
	if err := errors.Join(vendorID.Validate(), itemID.Validate(), price.Validate()); err != nil {
		return AddVendorItemCommand{}, err
	}
	return AddVendorItemCommand{
		vendorID:    vendorID,
		itemID:      itemID,
		name:        name,
		description: description,
		price:       price,
		categoryID:  categoryID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddVendorItemCommandIsNotConstructed if validation fails.
func (c AddVendorItemCommand) Validate() error {
	return c.guard.Validate(ErrAddVendorItemCommandIsNotConstructed)
}

// VendorID returns the unique identifier of the vendor.
func (c AddVendorItemCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// ItemID returns the unique identifier of the item.
func (c AddVendorItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Name returns the display name.
func (c AddVendorItemCommand) Name() string {
	return c.name
}

// Description returns the free-form description.
func (c AddVendorItemCommand) Description() string {
	return c.description
}

// Price returns the unit price.
func (c AddVendorItemCommand) Price() kernel.Money {
	return c.price
}

// CategoryID returns the catalog category, or nil when the item is uncategorized.
func (c AddVendorItemCommand) CategoryID() *kernel.UUID {
	return c.categoryID
}

// AddVendorItemCommandHandler checks the category exists before listing the item.
type AddVendorItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewAddVendorItemCommandHandler creates a handler backed by the catalog unit of work.
func NewAddVendorItemCommandHandler(uowFactory CatalogUoWFactory) AddVendorItemCommandHandler {
	return AddVendorItemCommandHandler{uowFactory: uowFactory}
}

// Handle adds the item to the vendor. Returns NotFoundError for an unknown vendor or category.
func (h AddVendorItemCommandHandler) Handle(ctx context.Context, cmd AddVendorItemCommand) error {
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

	if cmd.CategoryID() != nil {
		if _, err := uow.CategoryRepository().Get(ctx, *cmd.CategoryID()); err != nil {
			return err
		}
	}

	vendorRepo := uow.VendorRepository()
	v, err := vendorRepo.Get(ctx, cmd.VendorID())
	if err != nil {
		return err
	}

	if _, err = v.AddItem(cmd.ItemID(), cmd.Name(), cmd.Description(), cmd.Price(), cmd.CategoryID()); err != nil {
		return err
	}

	if err = vendorRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
