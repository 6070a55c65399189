package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateVendorCommandIsNotConstructed = errors.New(
	"CreateVendorCommand must be created via NewCreateVendorCommand constructor",
)

// CreateVendorCommand registers a vendor with an empty catalog.
type CreateVendorCommand struct { //nolint:recvcheck //using for validation
	vendorID   kernel.UUID
	name       string
	vendorType vendor.Type

	guard guard.ConstructorGuard
}

// NewCreateVendorCommand creates a command to register a vendor.
// Validates the vendor ID and type. Returns an error if any validation fails.
func NewCreateVendorCommand(vendorID kernel.UUID, name string, vendorType vendor.Type) (CreateVendorCommand, error) {
	if err := errors.Join(vendorID.Validate(), vendorType.Validate()); err != nil {
		return CreateVendorCommand{}, err
	}
	return CreateVendorCommand{
		vendorID:   vendorID,
		name:       name,
		vendorType: vendorType,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateVendorCommandIsNotConstructed if validation fails.
func (c CreateVendorCommand) Validate() error {
	return c.guard.Validate(ErrCreateVendorCommandIsNotConstructed)
}

// VendorID returns the unique identifier of the vendor.
func (c CreateVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// Name returns the display name.
func (c CreateVendorCommand) Name() string {
	return c.name
}

// VendorType returns the kind of vendor.
func (c CreateVendorCommand) VendorType() vendor.Type {
	return c.vendorType
}

// CreateVendorCommandHandler registers vendors. Duplicate names fail with AlreadyExistsError.
type CreateVendorCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewCreateVendorCommandHandler creates a handler backed by the catalog unit of work.
func NewCreateVendorCommandHandler(uowFactory CatalogUoWFactory) CreateVendorCommandHandler {
	return CreateVendorCommandHandler{uowFactory: uowFactory}
}

// Handle stores the vendor.
func (h CreateVendorCommandHandler) Handle(ctx context.Context, cmd CreateVendorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	v, err := vendor.NewVendor(cmd.VendorID(), cmd.Name(), cmd.VendorType())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VendorRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
