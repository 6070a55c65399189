// Package driverrepo stores delivery drivers.
package driverrepo

import (
	"context"
	"time"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DriverDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	PhoneNumber  string    `gorm:"type:varchar(32);not null"`
	VehiclePlate string    `gorm:"type:varchar(32)"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.OnInsert(r.db.WithContext(ctx).Create(&dto).Error, "driver", aggregate.ID().String())
}

func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DriverDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":          dto.Name,
		"phone_number":  dto.PhoneNumber,
		"vehicle_plate": dto.VehiclePlate,
		"status":        dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.ID().String())
	}
	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.locked(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "driver", id.String())
	}

	return toDomain(dto)
}

// GetAllAvailable locks the AVAILABLE drivers until the transaction ends. A
// concurrent caller waits and then only sees drivers that are still AVAILABLE.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.locked(ctx).
		Where("status = ?", string(driver.Available)).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

// locked reads rows FOR UPDATE so two assignments cannot both take the same driver.
func (r *GormDriverRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func fromDomain(d *driver.Driver) DriverDTO {
	return DriverDTO{
		ID:           d.ID().Bytes(),
		Name:         d.Name(),
		PhoneNumber:  d.PhoneNumber(),
		VehiclePlate: d.VehiclePlate(),
		Status:       string(d.Status()),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return driver.RestoreDriver(id, dto.Name, dto.PhoneNumber, dto.VehiclePlate, driver.Status(dto.Status))
}
