package services_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()
	items := []order.ItemSummary{{
		ItemID:     kernel.NewUUID(),
		Name:       "Jollof",
		Price:      kernel.MustMoney(10),
		Quantity:   1,
		VendorID:   kernel.NewUUID(),
		VendorName: "Mama Put",
	}}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, items, nil, "", testNow)
	require.NoError(t, err)
	for _, next := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		require.NoError(t, o.ChangeStatus(next, testNow))
	}
	return o
}

func newDriver(t *testing.T, name string) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "+234", "")
	require.NoError(t, err)
	return d
}

func TestDriverDispatcher_Dispatch(t *testing.T) {
	t.Run("should skip busy drivers", func(t *testing.T) {
		o := newReadyOrder(t)
		busy := newDriver(t, "Busy")
		require.NoError(t, busy.TakeOrder())
		free := newDriver(t, "Free")

		chosen, err := services.NewDriverDispatcher().Dispatch(o, []*driver.Driver{busy, free}, testNow)

		require.NoError(t, err)
		assert.Same(t, free, chosen)
		assert.Equal(t, order.DriverAssigned, o.Status())
		assert.True(t, o.Driver().IsEqual(free.ID()))
		assert.Equal(t, driver.Busy, free.Status())
	})

	t.Run("should fail when nobody is available", func(t *testing.T) {
		o := newReadyOrder(t)
		offline := newDriver(t, "Offline")
		require.NoError(t, offline.ChangeStatus(driver.Offline))

		chosen, err := services.NewDriverDispatcher().Dispatch(o, []*driver.Driver{offline}, testNow)

		require.ErrorIs(t, err, services.ErrDriverNotFound)
		assert.Nil(t, chosen)
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("should not touch the driver when the order is not ready", func(t *testing.T) {
		o := newReadyOrder(t)
		require.NoError(t, o.ChangeStatus(order.CancelledByRestaurant, testNow))
		d := newDriver(t, "Ada")

		_, err := services.NewDriverDispatcher().Dispatch(o, []*driver.Driver{d}, testNow)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, d.IsAvailable())
	})

	t.Run("should reject a nil order", func(t *testing.T) {
		var o *order.Order
		_, err := services.NewDriverDispatcher().Dispatch(o, nil, testNow)
		assert.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
