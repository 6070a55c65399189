// Package customerrepo stores customers.
package customerrepo

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber string    `gorm:"type:varchar(32)"`
	Address     string    `gorm:"type:text"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add returns AlreadyExistsError for a duplicate email.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := CustomerDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Email:       aggregate.Email(),
		PhoneNumber: aggregate.PhoneNumber(),
		Address:     aggregate.Address(),
	}
	return pgerr.OnInsert(r.db.WithContext(ctx).Create(&dto).Error, "customer", aggregate.Email())
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "customer", id.String())
	}

	restoredID, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return customer.NewCustomer(restoredID, dto.Name, dto.Email, dto.PhoneNumber, dto.Address)
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&CustomerDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", id.String())
	}
	return nil
}
