package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	// Add returns AlreadyExistsError when the email is taken.
	Add(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	Delete(ctx context.Context, id kernel.UUID) error
}
