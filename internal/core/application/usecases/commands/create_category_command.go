package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/category"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateCategoryCommandIsNotConstructed = errors.New(
	"CreateCategoryCommand must be created via NewCreateCategoryCommand constructor",
)

// CreateCategoryCommand adds a catalog category.
type CreateCategoryCommand struct { //nolint:recvcheck //using for validation
	categoryID  kernel.UUID
	name        string
	description string

	guard guard.ConstructorGuard
}

// NewCreateCategoryCommand creates a command to add a category.
// Returns an error if the category ID is invalid.
func NewCreateCategoryCommand(categoryID kernel.UUID, name, description string) (CreateCategoryCommand, error) {
	if err := categoryID.Validate(); err != nil {
		return CreateCategoryCommand{}, err
	}
	return CreateCategoryCommand{
		categoryID:  categoryID,
		name:        name,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCategoryCommandIsNotConstructed if validation fails.
func (c CreateCategoryCommand) Validate() error {
	return c.guard.Validate(ErrCreateCategoryCommandIsNotConstructed)
}

// CategoryID returns the unique identifier of the category.
func (c CreateCategoryCommand) CategoryID() kernel.UUID {
	return c.categoryID
}

// Name returns the display name.
func (c CreateCategoryCommand) Name() string {
	return c.name
}

// Description returns the free-form description.
func (c CreateCategoryCommand) Description() string {
	return c.description
}

// CreateCategoryCommandHandler stores categories. Duplicate names fail with AlreadyExistsError.
type CreateCategoryCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewCreateCategoryCommandHandler creates a handler backed by the catalog unit of work.
func NewCreateCategoryCommandHandler(uowFactory CatalogUoWFactory) CreateCategoryCommandHandler {
	return CreateCategoryCommandHandler{uowFactory: uowFactory}
}

// Handle stores the category. A duplicate name surfaces as AlreadyExistsError.
func (h CreateCategoryCommandHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := category.NewCategory(cmd.CategoryID(), cmd.Name(), cmd.Description())
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

	if err = uow.CategoryRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
