package queries_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name     string
		validate func() error
		want     error
	}{
		{"get order", queries.GetOrderQuery{}.Validate, queries.ErrGetOrderQueryIsNotConstructed},
		{"list orders", queries.ListOrdersQuery{}.Validate, queries.ErrListOrdersQueryIsNotConstructed},
		{"count", queries.CountOrdersByStatusQuery{}.Validate, queries.ErrCountOrdersByStatusQueryIsNotConstructed},
		{"cart", queries.GetCartQuery{}.Validate, queries.ErrGetCartQueryIsNotConstructed},
		{"payment", queries.GetPaymentQuery{}.Validate, queries.ErrGetPaymentQueryIsNotConstructed},
		{"vendors", queries.ListVendorsQuery{}.Validate, queries.ErrListVendorsQueryIsNotConstructed},
		{"dashboard", queries.DashboardQuery{}.Validate, queries.ErrDashboardQueryIsNotConstructed},
		{"revenue", queries.RevenuePerDayQuery{}.Validate, queries.ErrRevenuePerDayQueryIsNotConstructed},
		{"vendor performance", queries.VendorPerformanceQuery{}.Validate,
			queries.ErrVendorPerformanceQueryIsNotConstructed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.validate(), tt.want)
		})
	}
}

func TestNewGetOrderQuery_RejectsEmptyID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("defaults the limit", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(queries.OrderFilter{})
		require.NoError(t, err)
		assert.Equal(t, queries.DefaultListLimit, q.Filter().Limit)
		assert.NoError(t, q.Validate())
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(queries.OrderFilter{Limit: queries.MaxListLimit + 1})
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown status", func(t *testing.T) {
		status := order.Status(999)
		_, err := queries.NewListOrdersQuery(queries.OrderFilter{Status: &status})
		assert.Error(t, err)
	})

	t.Run("unassigned with driver", func(t *testing.T) {
		driverID := kernel.NewUUID()
		_, err := queries.NewListOrdersQuery(queries.OrderFilter{DriverID: &driverID, Unassigned: true})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewRevenuePerDayQuery(t *testing.T) {
	_, err := queries.NewRevenuePerDayQuery(0, time.Now())
	require.NoError(t, err)

	_, err = queries.NewRevenuePerDayQuery(-1, time.Now())
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewRevenuePerDayQuery(7, time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewListVendorsQuery_RejectsUnknownType(t *testing.T) {
	unknown := vendor.Type("SPACESHIPS")
	_, err := queries.NewListVendorsQuery(&unknown, false)
	assert.Error(t, err)
}
