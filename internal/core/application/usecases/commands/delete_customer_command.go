package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrDeleteCustomerCommandIsNotConstructed = errors.New(
	"DeleteCustomerCommand must be created via NewDeleteCustomerCommand constructor",
)

// DeleteCustomerCommand removes a customer account.
type DeleteCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteCustomerCommand creates a command to delete a customer. Returns an error if the ID is invalid.
func NewDeleteCustomerCommand(customerID kernel.UUID) (DeleteCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return DeleteCustomerCommand{}, err
	}
	return DeleteCustomerCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeleteCustomerCommandIsNotConstructed if validation fails.
func (c DeleteCustomerCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCustomerCommandIsNotConstructed)
}

// CustomerID returns the unique identifier of the customer.
func (c DeleteCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// DeleteCustomerCommandHandler removes a customer with everything they own.
// Deletion order: payments are detached from each order, orders are deleted,
// then the cart and finally the customer.
type DeleteCustomerCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteCustomerCommandHandler creates a handler for customer deletion.
func NewDeleteCustomerCommandHandler(uowFactory UoWFactory) DeleteCustomerCommandHandler {
	return DeleteCustomerCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the customer and their data in one transaction. Returns NotFoundError for an unknown customer.
func (h DeleteCustomerCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
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

	customerRepo := uow.CustomerRepository()
	if _, err := customerRepo.Get(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()
	orderIDs, err := orderRepo.GetIDsByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}
	for _, orderID := range orderIDs {
		if err = paymentRepo.DetachFromOrder(ctx, orderID); err != nil {
			return err
		}
		if err = orderRepo.Delete(ctx, orderID); err != nil {
			return err
		}
	}

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetByCustomer(ctx, cmd.CustomerID())
	switch {
	case err == nil:
		if err = cartRepo.Delete(ctx, c.ID()); err != nil {
			return err
		}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = customerRepo.Delete(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
