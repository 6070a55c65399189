package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateCartCommandIsNotConstructed = errors.New(
	"CreateCartCommand must be created via NewCreateCartCommand constructor",
)

// CreateCartCommand opens an empty cart for a customer who has none.
type CreateCartCommand struct { //nolint:recvcheck //using for validation
	cartID     kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateCartCommand creates a command to open a cart for a customer.
// Returns an error if either identifier is invalid.
func NewCreateCartCommand(cartID, customerID kernel.UUID) (CreateCartCommand, error) {
	if err := errors.Join(cartID.Validate(), customerID.Validate()); err != nil {
		return CreateCartCommand{}, err
	}
	return CreateCartCommand{cartID: cartID, customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCartCommandIsNotConstructed if validation fails.
func (c CreateCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateCartCommandIsNotConstructed)
}

// CartID returns the unique identifier of the cart.
func (c CreateCartCommand) CartID() kernel.UUID {
	return c.cartID
}

// CustomerID returns the unique identifier of the customer.
func (c CreateCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CreateCartCommandHandler never upserts: an existing cart fails with AlreadyExistsError.
type CreateCartCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateCartCommandHandler creates a handler for cart creation.
func NewCreateCartCommandHandler(uowFactory UoWFactory) CreateCartCommandHandler {
	return CreateCartCommandHandler{uowFactory: uowFactory}
}

// Handle stores the empty cart. Returns NotFoundError for an unknown customer.
func (h CreateCartCommandHandler) Handle(ctx context.Context, cmd CreateCartCommand) error {
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

	if _, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	cartRepo := uow.CartRepository()
	_, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	switch {
	case err == nil:
		return errs.NewAlreadyExistsError("cart", "customer "+cmd.CustomerID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	basket, err := cart.NewCart(cmd.CartID(), cmd.CustomerID(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = cartRepo.Add(ctx, basket); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
