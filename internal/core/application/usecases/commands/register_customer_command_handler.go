package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/customer"
)

// RegisterCustomerCommandHandler stores a new customer and their cart in one transaction.
// A duplicate email surfaces as AlreadyExistsError from the repository.
type RegisterCustomerCommandHandler struct {
	uowFactory UoWFactory
}

// NewRegisterCustomerCommandHandler creates a handler for customer registration.
func NewRegisterCustomerCommandHandler(uowFactory UoWFactory) RegisterCustomerCommandHandler {
	return RegisterCustomerCommandHandler{uowFactory: uowFactory}
}

// Handle stores the customer and their cart.
func (h RegisterCustomerCommandHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := customer.NewCustomer(cmd.CustomerID(), cmd.Name(), cmd.Email(), cmd.PhoneNumber(), cmd.Address())
	if err != nil {
		return err
	}
	basket, err := cart.NewCart(cmd.CartID(), c.ID(), time.Now().UTC())
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

	if err = uow.CustomerRepository().Add(ctx, c); err != nil {
		return err
	}
	if err = uow.CartRepository().Add(ctx, basket); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
