package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
)

type DriverRepository interface {
	Add(ctx context.Context, aggregate *driver.Driver) error
	Update(ctx context.Context, aggregate *driver.Driver) error
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable returns AVAILABLE drivers, oldest registration first.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}
