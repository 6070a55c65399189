// Package paymentrepo stores payments. Like orders, payments are updated optimistically.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{db: db, tracker: tracker}
}

// Add returns AlreadyExistsError when the order already has a payment.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		key := aggregate.ID().String()
		if orderID := aggregate.OrderID(); orderID != nil {
			key = "order " + orderID.String()
		}
		return pgerr.OnInsert(err, "payment", key)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"order_id":   dto.OrderID,
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PaymentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
		}
		return errs.NewConflictError("payment", aggregate.ID().String())
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "payment", id.String())
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPaymentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PaymentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", id.String())
	}
	return nil
}

// DetachFromOrder nulls the order reference and bumps the version so that
// loaded copies of these payments can no longer be written back.
func (r *GormPaymentRepository) DetachFromOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Updates(map[string]any{
			"order_id":   nil,
			"updated_at": time.Now().UTC(),
			"version":    gorm.Expr("version + 1"),
		}).Error
}

func (r *GormPaymentRepository) GetAllStaleProcessing(ctx context.Context, before time.Time) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", int(payment.Processing), before).
		Order("updated_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}
