package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/vendor"

	"github.com/stretchr/testify/require"
)

// world is a small marketplace: one customer with a cart, one vendor selling
// rice (12.50) and soup (20.00), and one available driver.
type world struct {
	store    *memStore
	customer *customer.Customer
	cart     *cart.Cart
	vendor   *vendor.Vendor
	rice     *vendor.Item
	soup     *vendor.Item
	driver   *driver.Driver
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{store: newMemStore()}

	var err error
	w.customer, err = customer.NewCustomer(kernel.NewUUID(), "Ada", "ada@example.com", "0800", "1 Harbour Rd")
	require.NoError(t, err)
	w.cart, err = cart.NewCart(kernel.NewUUID(), w.customer.ID(), time.Now().UTC())
	require.NoError(t, err)

	w.vendor, err = vendor.NewVendor(kernel.NewUUID(), "Mama Put", vendor.FoodAndBeverages)
	require.NoError(t, err)
	w.rice, err = w.vendor.AddItem(kernel.NewUUID(), "Jollof Rice", "Smoky party rice", kernel.MustMoney(12.50), nil)
	require.NoError(t, err)
	w.soup, err = w.vendor.AddItem(kernel.NewUUID(), "Egusi Soup", "", kernel.MustMoney(20), nil)
	require.NoError(t, err)

	w.driver, err = driver.NewDriver(kernel.NewUUID(), "Tunde", "0801", "LAG-123")
	require.NoError(t, err)

	w.store.seedCustomer(w.customer)
	w.store.seedCart(w.cart)
	w.store.seedVendor(w.vendor)
	w.store.seedDriver(w.driver)
	return w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fillCart puts 2 rice and 1 soup into the cart.
func (w *world) fillCart(t *testing.T) {
	t.Helper()
	h := commands.NewAddCartItemCommandHandler(cartFactory{w.store})

	cmd, err := commands.NewAddCartItemCommand(w.customer.ID(), w.rice.ID(), 2)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))

	cmd, err = commands.NewAddCartItemCommand(w.customer.ID(), w.soup.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))
}

// placeOrder checks the filled cart out and returns the PENDING order id.
func (w *world) placeOrder(t *testing.T) kernel.UUID {
	t.Helper()
	w.fillCart(t)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, w.customer.ID(), w.driver.ID(), "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateOrderCommandHandler(w.store).Handle(t.Context(), cmd))
	return orderID
}

func (w *world) moveOrder(t *testing.T, orderID kernel.UUID, statuses ...order.Status) {
	t.Helper()
	h := commands.NewChangeOrderStatusCommandHandler(w.store)
	for _, s := range statuses {
		cmd, err := commands.NewChangeOrderStatusCommand(orderID, s)
		require.NoError(t, err)
		require.NoError(t, h.Handle(t.Context(), cmd), "moving to %s", s)
	}
}

// openPayment takes a fresh order to PREPARING and opens its payment.
func (w *world) openPayment(t *testing.T) (orderID, paymentID kernel.UUID) {
	t.Helper()
	orderID = w.placeOrder(t)
	w.moveOrder(t, orderID, order.Confirmed, order.Preparing)

	paymentID = kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentCommand(paymentID, orderID, payment.CreditCard)
	require.NoError(t, err)
	require.NoError(t, commands.NewCreatePaymentCommandHandler(w.store).Handle(t.Context(), cmd))
	return orderID, paymentID
}

func (w *world) orderStatus(t *testing.T, orderID kernel.UUID) order.Status {
	t.Helper()
	o, ok := w.store.order(orderID)
	require.True(t, ok)
	return o.Status()
}

func (w *world) paymentStatus(t *testing.T, paymentID kernel.UUID) payment.Status {
	t.Helper()
	p, ok := w.store.payment(paymentID)
	require.True(t, ok)
	return p.Status()
}

// deliver takes a READY_FOR_PICKUP order through assignment to COMPLETED.
func (w *world) deliver(t *testing.T, orderID kernel.UUID) {
	t.Helper()
	assign, err := commands.NewAssignDriverCommand(orderID, nil)
	require.NoError(t, err)
	require.NoError(t, commands.NewAssignDriverCommandHandler(w.store).Handle(t.Context(), assign))

	h := commands.NewAdvanceDeliveryCommandHandler(w.store)
	for _, step := range []commands.DeliveryStep{commands.PickUp, commands.StartDelivery, commands.Deliver} {
		cmd, err := commands.NewAdvanceDeliveryCommand(orderID, step)
		require.NoError(t, err)
		require.NoError(t, h.Handle(t.Context(), cmd))
	}
}

// backdateOrder rewrites the order as if its last status change happened age ago.
func (w *world) backdateOrder(t *testing.T, orderID kernel.UUID, age time.Duration) {
	t.Helper()
	o, ok := w.store.order(orderID)
	require.True(t, ok)
	changed := o.StatusChangedAt().Add(-age)
	aged, err := order.RestoreOrder(
		o.ID(), o.CustomerID(), o.CartID(), o.Driver(), o.Total(), o.OrderDate(), o.ReceivedDate(),
		o.DeliveryAddress(), o.Status(), changed, o.Items(), o.Vendors(), o.Version(),
	)
	require.NoError(t, err)
	w.store.seedOrder(aged)
}

// stallPayment leaves the payment PROCESSING as if the worker died age ago.
func (w *world) stallPayment(t *testing.T, orderID, paymentID kernel.UUID, age time.Duration) {
	t.Helper()
	w.moveOrder(t, orderID, order.PaymentProcessing)
	p, ok := w.store.payment(paymentID)
	require.True(t, ok)
	stalled, err := payment.RestorePayment(
		p.ID(), p.OrderID(), p.Amount(), p.Method(), payment.Processing,
		p.CreatedAt(), time.Now().UTC().Add(-age), p.Version(),
	)
	require.NoError(t, err)
	w.store.seedPayment(stalled)
}

// replaceCart swaps the customer's cart for a new empty one, so a second
// active order can be placed.
func (w *world) replaceCart(t *testing.T) {
	t.Helper()
	c, ok := w.store.cartOf(w.customer.ID())
	require.True(t, ok)
	fresh, err := cart.NewCart(kernel.NewUUID(), w.customer.ID(), time.Now().UTC())
	require.NoError(t, err)
	w.store.mu.Lock()
	delete(w.store.data.carts, c.ID().String())
	w.store.mu.Unlock()
	w.store.seedCart(fresh)
}
