// Package orderrepo stores orders with their frozen item and vendor snapshots.
//
// Updates are optimistic: the row is written only while its version still
// matches the version the aggregate was loaded with.
package orderrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.OnInsert(err, "order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns only. On success the aggregate version is advanced.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"driver_id":         dto.DriverID,
			"received_date":     dto.ReceivedDate,
			"status":            dto.Status,
			"status_changed_at": dto.StatusChangedAt,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate.ID())
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withSnapshots(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgerr.OnGet(err, "order", id.String())
	}

	return toDomain(dto)
}

// Delete removes the order; snapshots go with it through ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func (r *GormOrderRepository) GetIDsByCustomer(ctx context.Context, customerID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Order("order_date").
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}
	return uuids(raw...)
}

func (r *GormOrderRepository) HasActiveForCart(ctx context.Context, cartID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("cart_id = ? AND status IN ?", cartID.Bytes(), activeStatuses()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) GetAllInStatusSince(
	ctx context.Context,
	status order.Status,
	before time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withSnapshots(ctx).
		Where("status = ? AND status_changed_at < ?", int(status), before).
		Order("status_changed_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withSnapshots(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Vendors", func(db *gorm.DB) *gorm.DB { return db.Order("position") })
}

func (r *GormOrderRepository) missOrConflict(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return errors.Join(errs.NewConflictError("order", id.String()), err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return errs.NewConflictError("order", id.String())
}

func activeStatuses() []int {
	var active []int
	for _, s := range order.AllStatuses() {
		if s.IsActive() {
			active = append(active, int(s))
		}
	}
	return active
}
