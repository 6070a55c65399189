// Package cartrepo stores carts and their lines.
//
// Every read takes a row lock on the cart (SELECT ... FOR UPDATE), so two
// transactions mutating the same cart run one after the other.
package cartrepo

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{db: db, tracker: tracker}
}

// Add returns AlreadyExistsError when the customer already has a cart.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.OnInsert(err, "cart", "customer "+aggregate.CustomerID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the cart lines: stored lines are deleted and the current ones inserted.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CartDTO{}).Where("id = ?", dto.ID).Update("updated_at", dto.UpdatedAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart", aggregate.ID().String())
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&CartLineDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Lines) > 0 {
		if err := db.Create(&dto.Lines).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.locked(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "cart", id.String())
	}

	return toDomain(dto)
}

func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.locked(ctx).First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "cart of customer", customerID.String())
	}

	return toDomain(dto)
}

// Delete removes the cart and, through the foreign key, its lines.
func (r *GormCartRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&CartDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart", id.String())
	}
	return nil
}

func (r *GormCartRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}
