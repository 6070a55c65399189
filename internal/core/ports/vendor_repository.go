package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/vendor"
)

// VendorRepository defines the persistence contract for vendors and their catalogs.
type VendorRepository interface {
	// Add returns AlreadyExistsError when the vendor name is taken.
	Add(ctx context.Context, aggregate *vendor.Vendor) error

	// Update persists the vendor and upserts its items.
	Update(ctx context.Context, aggregate *vendor.Vendor) error

	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)

	// GetByItem returns the vendor selling itemID.
	GetByItem(ctx context.Context, itemID kernel.UUID) (*vendor.Vendor, error)

	// GetAllByItems returns every vendor selling at least one of itemIDs.
	GetAllByItems(ctx context.Context, itemIDs []kernel.UUID) ([]*vendor.Vendor, error)
}
