package eventhandlers_test

import (
	"errors"
	"log/slog"
	"testing"

	"fooddelivery/internal/core/application/eventhandlers"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerNotifications_NotifiesOnMilestones(t *testing.T) {
	delivered := orderChanged(order.OutForDelivery, order.Delivered, nil)
	cancelled := orderChanged(order.Pending, order.CancelledByRestaurant, nil)
	preparing := orderChanged(order.Confirmed, order.Preparing, nil)

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.AnythingOfType("ports.Notification")).Return(nil)

	eventhandlers.NewCustomerNotifications(notifier, slog.New(slog.DiscardHandler)).
		Publish(t.Context(), delivered, preparing, cancelled)

	notifier.AssertNumberOfCalls(t, "Notify", 2)
	first := notifier.Calls[0].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, delivered.CustomerID, first.CustomerID)
	assert.Equal(t, "Your order has arrived", first.Subject)
	assert.Contains(t, first.Body, "DELIVERED")
	second := notifier.Calls[1].Arguments.Get(1).(ports.Notification)
	assert.Equal(t, "Your order was cancelled", second.Subject)
}

func TestCustomerNotifications_FailureDoesNotStopTheBatch(t *testing.T) {
	first := orderChanged(order.Delivered, order.Completed, nil)
	second := orderChanged(order.OutForDelivery, order.Delivered, nil)

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.CustomerID.IsEqual(first.CustomerID)
	})).Return(errors.New("smtp down")).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n ports.Notification) bool {
		return n.CustomerID.IsEqual(second.CustomerID)
	})).Return(nil).Once()

	eventhandlers.NewCustomerNotifications(notifier, slog.New(slog.DiscardHandler)).
		Publish(t.Context(), first, second)

	notifier.AssertExpectations(t)
}
