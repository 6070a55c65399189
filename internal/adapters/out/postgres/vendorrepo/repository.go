// Package vendorrepo stores vendors with their catalog items.
package vendorrepo

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormVendorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormVendorRepository(db *gorm.DB, tracker aggregateTracker) *GormVendorRepository {
	return &GormVendorRepository{db: db, tracker: tracker}
}

func (r *GormVendorRepository) Add(ctx context.Context, aggregate *vendor.Vendor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.OnInsert(err, "vendor", aggregate.Name())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the vendor and upserts its items. Items are never removed here.
func (r *GormVendorRepository) Update(ctx context.Context, aggregate *vendor.Vendor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return pgerr.OnInsert(result.Error, "vendor", aggregate.Name())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vendor", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VendorDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "vendor", id.String())
	}

	return toDomain(dto)
}

func (r *GormVendorRepository) GetByItem(ctx context.Context, itemID kernel.UUID) (*vendor.Vendor, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dto VendorDTO
	err := r.withItems(ctx).
		Where("id = (?)", r.db.Model(&ItemDTO{}).Select("vendor_id").Where("id = ?", itemID.Bytes())).
		First(&dto).Error
	if err != nil {
		return nil, pgerr.OnGet(err, "item", itemID.String())
	}

	return toDomain(dto)
}

func (r *GormVendorRepository) GetAllByItems(ctx context.Context, itemIDs []kernel.UUID) ([]*vendor.Vendor, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	raw := make([]any, 0, len(itemIDs))
	for _, id := range itemIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []VendorDTO
	if err := r.withItems(ctx).
		Where("id IN (?)", r.db.Model(&ItemDTO{}).Select("vendor_id").Where("id IN ?", raw)).
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	vendors := make([]*vendor.Vendor, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}

func (r *GormVendorRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("name") })
}
