package order_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedTransitions is written out independently of the production table so the
// exhaustive test below catches accidental edits of either.
var expectedTransitions = map[string][]string{
	"PENDING":            {"CONFIRMED", "CANCELLED_BY_CUSTOMER", "CANCELLED_BY_RESTAURANT"},
	"CONFIRMED":          {"PREPARING", "PAYMENT_PENDING", "CANCELLED_BY_RESTAURANT"},
	"PREPARING":          {"READY_FOR_PICKUP", "PAYMENT_PENDING", "CANCELLED_BY_RESTAURANT"},
	"PAYMENT_PENDING":    {"PAYMENT_PROCESSING", "CANCELLED_BY_CUSTOMER"},
	"PAYMENT_PROCESSING": {"PAYMENT_COMPLETED", "PAYMENT_FAILED"},
	"PAYMENT_COMPLETED":  {"READY_FOR_PICKUP"},
	"PAYMENT_FAILED":     {"PAYMENT_PENDING", "CANCELLED_BY_SYSTEM"},
	"READY_FOR_PICKUP":   {"DRIVER_ASSIGNED", "CANCELLED_BY_RESTAURANT"},
	"DRIVER_ASSIGNED":    {"DRIVER_PICKED_UP", "CANCELLED_BY_SYSTEM"},
	"DRIVER_PICKED_UP":   {"OUT_FOR_DELIVERY"},
	"OUT_FOR_DELIVERY":   {"DELIVERED", "CANCELLED_BY_SYSTEM"},
	"DELIVERED":          {"COMPLETED"},
	"COMPLETED":          {"REFUNDED"},
}

func TestStatus_CanTransitionTo_Exhaustive(t *testing.T) {
	all := order.AllStatuses()
	require.Len(t, all, 17)

	for _, from := range all {
		allowed := map[string]bool{}
		for _, to := range expectedTransitions[from.String()] {
			allowed[to] = true
		}

		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, allowed[to.String()], from.CanTransitionTo(to))
			})
		}

		assert.False(t, from.CanTransitionTo(order.Unknown), "%s must not reach Unknown", from)
	}
}

func TestStatus_TerminalStates(t *testing.T) {
	terminal := []order.Status{
		order.Refunded,
		order.CancelledByCustomer,
		order.CancelledByRestaurant,
		order.CancelledBySystem,
	}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s.String())
		assert.Empty(t, s.AllowedTransitions(), s.String())
		assert.False(t, s.IsActive(), s.String())
	}

	assert.False(t, order.Completed.IsTerminal())
	assert.False(t, order.Completed.IsActive())
	assert.True(t, order.Pending.IsActive())
	assert.True(t, order.OutForDelivery.IsActive())
}

func TestStatus_Categories(t *testing.T) {
	for _, s := range order.AllStatuses() {
		assert.Equal(t,
			s == order.Preparing || s.IsPaymentState(),
			s.IsPaymentEligible(),
			s.String(),
		)
	}
	assert.True(t, order.CancelledBySystem.IsCancellation())
	assert.False(t, order.Refunded.IsCancellation())
	assert.True(t, order.PaymentFailed.IsPaymentState())
	assert.False(t, order.ReadyForPickup.IsPaymentState())
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.AllStatuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := order.ParseStatus(" ready_for_pickup ")
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, parsed)

	_, err = order.ParseStatus("SHIPPED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestStatus_AllowedTransitionsIsACopy(t *testing.T) {
	allowed := order.Pending.AllowedTransitions()
	allowed[0] = order.Refunded

	assert.True(t, order.Pending.CanTransitionTo(order.Confirmed))
	assert.False(t, order.Pending.CanTransitionTo(order.Refunded))
}
