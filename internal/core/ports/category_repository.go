package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/category"
	"fooddelivery/internal/core/domain/model/kernel"
)

type CategoryRepository interface {
	// Add returns AlreadyExistsError when the name is taken.
	Add(ctx context.Context, aggregate *category.Category) error
	Get(ctx context.Context, id kernel.UUID) (*category.Category, error)
}
