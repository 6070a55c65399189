package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetPaymentQueryIsNotConstructed = errors.New(
	"GetPaymentQuery must be created via NewGetPaymentQuery or NewGetOrderPaymentQuery constructor",
)

// PaymentView is a payment as returned to clients.
type PaymentView struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   *uuid.UUID      `json:"orderId,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"paymentMethod"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GetPaymentQuery looks a payment up either by its own id or by the order it pays for.
type GetPaymentQuery struct {
	id      kernel.UUID
	byOrder bool

	guard guard.ConstructorGuard
}

// NewGetPaymentQuery creates a query for a payment by its ID.
func NewGetPaymentQuery(paymentID kernel.UUID) (GetPaymentQuery, error) {
	if err := paymentID.Validate(); err != nil {
		return GetPaymentQuery{}, errs.NewValueIsInvalidErrorWithCause("paymentID", err)
	}
	return GetPaymentQuery{id: paymentID, guard: guard.NewConstructorGuard()}, nil
}

// NewGetOrderPaymentQuery creates a query for the payment of an order.
func NewGetOrderPaymentQuery(orderID kernel.UUID) (GetPaymentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentQuery{}, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	return GetPaymentQuery{id: orderID, byOrder: true, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the identifier the query looks up.
func (q GetPaymentQuery) ID() kernel.UUID {
	return q.id
}

// ByOrder reports whether ID names an order rather than a payment.
func (q GetPaymentQuery) ByOrder() bool {
	return q.byOrder
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPaymentQueryIsNotConstructed if validation fails.
func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

// GetPaymentQueryHandler reads payments.
type GetPaymentQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentQueryHandler creates a handler over db.
func NewGetPaymentQueryHandler(db *gorm.DB) GetPaymentQueryHandler {
	return GetPaymentQueryHandler{db: db}
}

// Handle returns the payment. Returns NotFoundError when none matches.
func (h GetPaymentQueryHandler) Handle(ctx context.Context, query GetPaymentQuery) (*PaymentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column, param := "id", "payment"
	if query.ByOrder() {
		column, param = "order_id", "payment for order"
	}

	var row struct {
		ID        uuid.UUID
		OrderID   uuid.NullUUID
		Amount    decimal.Decimal
		Method    string
		Status    int
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, amount, method, status, created_at, updated_at
		FROM payments
		WHERE `+column+` = ?
	`, query.ID().Bytes()).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError(param, query.ID().String())
	}

	view := &PaymentView{
		ID:        row.ID,
		Amount:    row.Amount,
		Method:    row.Method,
		Status:    payment.Status(row.Status).String(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.OrderID.Valid {
		orderID := row.OrderID.UUID
		view.OrderID = &orderID
	}
	return view, nil
}
