package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterCustomerCommand_RequiresEmail(t *testing.T) {
	_, err := commands.NewRegisterCustomerCommand(kernel.NewUUID(), kernel.NewUUID(), "Ada", " ", "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRegisterCustomerCommandHandler_Handle_CreatesCustomerWithCart(t *testing.T) {
	store := newMemStore()
	customerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCustomerCommand(customerID, kernel.NewUUID(), "Bola", "bola@example.com", "", "")
	require.NoError(t, err)

	require.NoError(t, commands.NewRegisterCustomerCommandHandler(store).Handle(t.Context(), cmd))

	_, _, carts, customers := store.counts()
	assert.Equal(t, 1, customers)
	assert.Equal(t, 1, carts)
	c, ok := store.cartOf(customerID)
	require.True(t, ok)
	assert.True(t, c.IsEmpty())
}

func TestRegisterCustomerCommandHandler_Handle_DuplicateEmailWritesNothing(t *testing.T) {
	w := newWorld(t)
	cmd, err := commands.NewRegisterCustomerCommand(
		kernel.NewUUID(), kernel.NewUUID(), "Ada Again", w.customer.Email(), "", "",
	)
	require.NoError(t, err)

	err = commands.NewRegisterCustomerCommandHandler(w.store).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	_, _, carts, customers := w.store.counts()
	assert.Equal(t, 1, customers)
	assert.Equal(t, 1, carts)
}

func TestDeleteCustomerCommandHandler_Handle_CascadesAndDetachesPayments(t *testing.T) {
	w := newWorld(t)
	_, paymentID := w.openPayment(t)

	cmd, err := commands.NewDeleteCustomerCommand(w.customer.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteCustomerCommandHandler(w.store).Handle(t.Context(), cmd))

	orders, payments, carts, customers := w.store.counts()
	assert.Zero(t, orders)
	assert.Zero(t, carts)
	assert.Zero(t, customers)
	assert.Equal(t, 1, payments, "payments outlive their order")

	p, ok := w.store.payment(paymentID)
	require.True(t, ok)
	assert.Nil(t, p.OrderID())
}

func TestDeleteCustomerCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	w := newWorld(t)
	cmd, err := commands.NewDeleteCustomerCommand(kernel.NewUUID())
	require.NoError(t, err)

	err = commands.NewDeleteCustomerCommandHandler(w.store).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, _, _, customers := w.store.counts()
	assert.Equal(t, 1, customers)
}

func TestDeleteOrderCommandHandler_Handle_KeepsCustomerAndCart(t *testing.T) {
	w := newWorld(t)
	orderID, paymentID := w.openPayment(t)

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteOrderCommandHandler(w.store).Handle(t.Context(), cmd))

	orders, payments, carts, customers := w.store.counts()
	assert.Zero(t, orders)
	assert.Equal(t, 1, payments)
	assert.Equal(t, 1, carts)
	assert.Equal(t, 1, customers)
	p, _ := w.store.payment(paymentID)
	assert.Nil(t, p.OrderID())
}
