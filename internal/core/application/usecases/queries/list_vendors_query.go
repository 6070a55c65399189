package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrListVendorsQueryIsNotConstructed = errors.New(
	"ListVendorsQuery must be created via NewListVendorsQuery constructor",
)

// ItemView is a catalog item.
type ItemView struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendorId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Available   bool            `json:"available"`
}

// VendorView is a vendor with its items.
type VendorView struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	VendorType string     `json:"vendorType"`
	Items      []ItemView `json:"items"`
}

// ListVendorsQuery browses the catalog, optionally by vendor type and availability.
type ListVendorsQuery struct {
	vendorType    *vendor.Type
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewListVendorsQuery creates a vendor listing, optionally narrowed to one type.
// With availableOnly set unavailable items are left out. Returns an error for an invalid type.
func NewListVendorsQuery(vendorType *vendor.Type, availableOnly bool) (ListVendorsQuery, error) {
	if vendorType != nil {
		if err := vendorType.Validate(); err != nil {
			return ListVendorsQuery{}, err
		}
	}
	return ListVendorsQuery{
		vendorType:    vendorType,
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListVendorsQueryIsNotConstructed if validation fails.
func (q ListVendorsQuery) Validate() error {
	return q.guard.Validate(ErrListVendorsQueryIsNotConstructed)
}

// ListVendorsQueryHandler reads the catalog.
type ListVendorsQueryHandler struct {
	db *gorm.DB
}

// NewListVendorsQueryHandler creates a handler over db.
func NewListVendorsQueryHandler(db *gorm.DB) ListVendorsQueryHandler {
	return ListVendorsQueryHandler{db: db}
}

// Handle returns vendors sorted by name with their items sorted by name.
func (h ListVendorsQueryHandler) Handle(ctx context.Context, query ListVendorsQuery) ([]VendorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	vendorSQL := `SELECT id, name, vendor_type FROM vendors`
	var args []any
	if query.vendorType != nil {
		vendorSQL += ` WHERE vendor_type = ?`
		args = append(args, query.vendorType.String())
	}
	vendorSQL += ` ORDER BY name`

	var vendorRows []struct {
		ID         uuid.UUID
		Name       string
		VendorType string
	}
	if err := db.Raw(vendorSQL, args...).Scan(&vendorRows).Error; err != nil {
		return nil, err
	}

	views := make([]VendorView, 0, len(vendorRows))
	if len(vendorRows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(vendorRows))
	index := make(map[uuid.UUID]int, len(vendorRows))
	for i, r := range vendorRows {
		ids = append(ids, r.ID)
		index[r.ID] = i
		views = append(views, VendorView{ID: r.ID, Name: r.Name, VendorType: r.VendorType, Items: make([]ItemView, 0)})
	}

	itemSQL := `SELECT id, vendor_id, name, description, price, category_id, available
		FROM items
		WHERE vendor_id IN ?`
	if query.availableOnly {
		itemSQL += ` AND available`
	}
	itemSQL += ` ORDER BY name`

	var itemRows []struct {
		ID          uuid.UUID
		VendorID    uuid.UUID
		Name        string
		Description string
		Price       decimal.Decimal
		CategoryID  uuid.NullUUID
		Available   bool
	}
	if err := db.Raw(itemSQL, ids).Scan(&itemRows).Error; err != nil {
		return nil, err
	}

	for _, r := range itemRows {
		item := ItemView{
			ID:          r.ID,
			VendorID:    r.VendorID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Available:   r.Available,
		}
		if r.CategoryID.Valid {
			categoryID := r.CategoryID.UUID
			item.CategoryID = &categoryID
		}
		i := index[r.VendorID]
		views[i].Items = append(views[i].Items, item)
	}

	return views, nil
}
