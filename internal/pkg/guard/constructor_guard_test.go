package guard_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("test object not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errNotConstructed := errors.New("PlaceOrderCommand must be created via NewPlaceOrderCommand")

	type placeOrderCommand struct {
		customerID string
		guard      guard.ConstructorGuard
	}

	newCommand := func(customerID string) (placeOrderCommand, error) {
		if customerID == "" {
			return placeOrderCommand{}, errors.New("customer id is required")
		}
		return placeOrderCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newCommand("c-1")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errNotConstructed))

	var zero placeOrderCommand
	require.ErrorIs(t, zero.guard.Validate(errNotConstructed), errNotConstructed)

	_, err = newCommand("")
	require.Error(t, err)
}
