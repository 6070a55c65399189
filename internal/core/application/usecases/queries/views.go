package queries

import (
	"time"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummaryView is an order without its snapshots.
type OrderSummaryView struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	CartID          uuid.UUID       `json:"cartId"`
	DriverID        *uuid.UUID      `json:"driverId,omitempty"`
	Status          string          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	OrderDate       time.Time       `json:"orderDate"`
	ReceivedDate    *time.Time      `json:"receivedDate,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	StatusChangedAt time.Time       `json:"statusChangedAt"`
	Version         int             `json:"version"`
}

// OrderItemView is an item snapshot of an order.
type OrderItemView struct {
	ItemID      uuid.UUID       `json:"itemId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	VendorID    uuid.UUID       `json:"vendorId"`
	VendorName  string          `json:"vendorName"`
}

// OrderVendorView is a vendor taking part in an order.
type OrderVendorView struct {
	VendorID   uuid.UUID `json:"vendorId"`
	Name       string    `json:"name"`
	VendorType string    `json:"vendorType"`
}

// OrderView is an order with the item and vendor snapshots taken at checkout.
type OrderView struct {
	OrderSummaryView
	Items   []OrderItemView   `json:"items"`
	Vendors []OrderVendorView `json:"vendors"`
}

// orderRow mirrors the orders table for Scan.
type orderRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	CartID          uuid.UUID
	DriverID        uuid.NullUUID
	Status          int
	Total           decimal.Decimal
	OrderDate       time.Time
	ReceivedDate    *time.Time
	DeliveryAddress string
	StatusChangedAt time.Time
	Version         int
}

const orderColumns = `o.id, o.customer_id, o.cart_id, o.driver_id, o.status, o.total, o.order_date,
	o.received_date, o.delivery_address, o.status_changed_at, o.version`

func (r orderRow) view() OrderSummaryView {
	v := OrderSummaryView{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CartID:          r.CartID,
		Status:          order.Status(r.Status).String(),
		Total:           r.Total,
		OrderDate:       r.OrderDate,
		ReceivedDate:    r.ReceivedDate,
		DeliveryAddress: r.DeliveryAddress,
		StatusChangedAt: r.StatusChangedAt,
		Version:         r.Version,
	}
	if r.DriverID.Valid {
		driverID := r.DriverID.UUID
		v.DriverID = &driverID
	}
	return v
}

func summaries(rows []orderRow) []OrderSummaryView {
	views := make([]OrderSummaryView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views
}
