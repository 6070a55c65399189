package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// OrderFilter narrows ListOrdersQuery. Zero fields do not filter.
// Unassigned keeps only orders without a driver and cannot be combined with DriverID.
type OrderFilter struct {
	Status     *order.Status
	CustomerID *kernel.UUID
	DriverID   *kernel.UUID
	Unassigned bool
	Limit      int
}

// ListOrdersQuery lists orders newest first.
type ListOrdersQuery struct {
	filter OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filter. A zero Limit means DefaultListLimit.
func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 1, MaxListLimit)
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.Unassigned && filter.DriverID != nil {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("unassigned")
	}

	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Filter returns the criteria orders are matched against.
func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
