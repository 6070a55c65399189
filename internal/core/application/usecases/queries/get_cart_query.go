package queries

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGetCartQueryIsNotConstructed = errors.New("GetCartQuery must be created via NewGetCartQuery constructor")

// CartLineView is one line of a cart.
type CartLineView struct {
	ItemID     uuid.UUID       `json:"itemId"`
	Name       string          `json:"name"`
	VendorID   uuid.UUID       `json:"vendorId"`
	Available  bool            `json:"available"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CartView is a cart with its lines and total.
type CartView struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customerId"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Lines      []CartLineView  `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

// GetCartQuery reads the cart of a customer.
type GetCartQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart. Returns an error if the ID is invalid.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCartQuery{}, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	return GetCartQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

// CustomerID returns the unique identifier of the customer.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCartQueryIsNotConstructed if validation fails.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// GetCartQueryHandler reads carts.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler over db.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns the cart with current catalog names next to the prices the lines were added at.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*CartView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var header struct {
		ID         uuid.UUID
		CustomerID uuid.UUID
		UpdatedAt  time.Time
	}
	result := db.Raw(`
		SELECT id, customer_id, updated_at
		FROM carts
		WHERE customer_id = ?
	`, query.CustomerID().Bytes()).Scan(&header)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("cart of customer", query.CustomerID().String())
	}

	cart := CartView{
		ID:         header.ID,
		CustomerID: header.CustomerID,
		UpdatedAt:  header.UpdatedAt,
		Lines:      make([]CartLineView, 0),
	}
	if err := db.Raw(`
		SELECT l.item_id, COALESCE(i.name, '') AS name, COALESCE(i.vendor_id, ?) AS vendor_id,
			COALESCE(i.available, false) AS available, l.unit_price, l.quantity, l.total_price
		FROM cart_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.cart_id = ?
		ORDER BY l.position
	`, uuid.Nil, cart.ID).Scan(&cart.Lines).Error; err != nil {
		return nil, err
	}

	cart.Total = decimal.Zero
	for _, line := range cart.Lines {
		cart.Total = cart.Total.Add(line.TotalPrice)
	}

	return &cart, nil
}
