package queries

import (
	"context"

	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order details.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler over db.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its snapshots in checkout order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	var row orderRow
	result := db.Raw(`SELECT `+orderColumns+` FROM orders o WHERE o.id = ?`, id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundErrorWithCause("order", query.OrderID().String(), gorm.ErrRecordNotFound)
	}

	view := &OrderView{
		OrderSummaryView: row.view(),
		Items:            make([]OrderItemView, 0),
		Vendors:          make([]OrderVendorView, 0),
	}

	if err := db.Raw(`
		SELECT item_id, name, description, price, quantity, vendor_id, vendor_name
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id).Scan(&view.Items).Error; err != nil {
		return nil, err
	}

	if err := db.Raw(`
		SELECT vendor_id, name, vendor_type
		FROM order_vendors
		WHERE order_id = ?
		ORDER BY position
	`, id).Scan(&view.Vendors).Error; err != nil {
		return nil, err
	}

	return view, nil
}
