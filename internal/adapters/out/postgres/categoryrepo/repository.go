// Package categoryrepo stores catalog categories.
package categoryrepo

import (
	"context"

	"fooddelivery/internal/adapters/out/postgres/pgerr"
	"fooddelivery/internal/core/domain/model/category"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Add returns AlreadyExistsError for a duplicate name.
func (r *GormCategoryRepository) Add(ctx context.Context, aggregate *category.Category) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := CategoryDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
	}
	return pgerr.OnInsert(r.db.WithContext(ctx).Create(&dto).Error, "category", aggregate.Name())
}

func (r *GormCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*category.Category, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CategoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.OnGet(err, "category", id.String())
	}

	restoredID, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return category.NewCategory(restoredID, dto.Name, dto.Description)
}
