package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places an order from the customer's cart.
//
// Everything happens in one transaction: customer, cart (row locked) and driver
// are loaded, the cart is converted by services.Checkout, the order is inserted
// and the cleared cart is written back. Any failure leaves no order and an
// untouched cart.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), customerID, driverID, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns ObjectNotFoundError for a missing customer, cart or driver, and
// PreconditionFailedError for an empty cart or a cart that already backs an active order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	customer, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetByCustomer(ctx, customer.ID())
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return services.ErrCartIsEmpty
	}

	driverID := cmd.DriverID()
	if _, err = uow.DriverRepository().Get(ctx, driverID); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	active, err := orderRepo.HasActiveForCart(ctx, c.ID())
	if err != nil {
		return err
	}
	if active {
		return errs.NewPreconditionFailedError("cart " + c.ID().String() + " already has an active order")
	}

	vendors, err := uow.VendorRepository().GetAllByItems(ctx, c.ItemIDs())
	if err != nil {
		return err
	}

	address := cmd.DeliveryAddress()
	if address == "" {
		address = customer.Address()
	}

	o, err := services.NewCheckout().PlaceOrder(services.CheckoutRequest{
		OrderID:         cmd.OrderID(),
		Cart:            c,
		DriverID:        &driverID,
		Vendors:         vendors,
		DeliveryAddress: address,
		Now:             time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
