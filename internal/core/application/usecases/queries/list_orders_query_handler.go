package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler over db.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the orders matching the filter, newest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummaryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := query.Filter()
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, int(*filter.Status))
	}
	if filter.CustomerID != nil {
		conditions = append(conditions, "o.customer_id = ?")
		args = append(args, filter.CustomerID.Bytes())
	}
	if filter.DriverID != nil {
		conditions = append(conditions, "o.driver_id = ?")
		args = append(args, filter.DriverID.Bytes())
	}
	if filter.Unassigned {
		conditions = append(conditions, "o.driver_id IS NULL")
	}

	sql := `SELECT ` + orderColumns + ` FROM orders o`
	if len(conditions) > 0 {
		sql += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	sql += ` ORDER BY o.order_date DESC, o.id LIMIT ?`
	args = append(args, filter.Limit)

	var rows []orderRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return summaries(rows), nil
}
