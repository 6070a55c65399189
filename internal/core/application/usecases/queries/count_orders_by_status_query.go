package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrCountOrdersByStatusQueryIsNotConstructed = errors.New(
	"CountOrdersByStatusQuery must be created via NewCountOrdersByStatusQuery constructor",
)

// CountOrdersByStatusQuery counts orders per status.
type CountOrdersByStatusQuery struct {
	guard guard.ConstructorGuard
}

// NewCountOrdersByStatusQuery creates the query.
func NewCountOrdersByStatusQuery() CountOrdersByStatusQuery {
	return CountOrdersByStatusQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrCountOrdersByStatusQueryIsNotConstructed if validation fails.
func (q CountOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersByStatusQueryIsNotConstructed)
}

// CountOrdersByStatusQueryHandler reads counts with a GROUP BY.
type CountOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewCountOrdersByStatusQueryHandler creates a handler over db.
func NewCountOrdersByStatusQueryHandler(db *gorm.DB) CountOrdersByStatusQueryHandler {
	return CountOrdersByStatusQueryHandler{db: db}
}

// Handle returns a count for every status, including those with no orders.
func (h CountOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountOrdersByStatusQuery,
) (map[string]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		Status int
		Count  int64
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(order.AllStatuses()))
	for _, s := range order.AllStatuses() {
		counts[s.String()] = 0
	}
	for _, r := range rows {
		counts[order.Status(r.Status).String()] = r.Count
	}
	return counts, nil
}
