package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for carts.
// Reads lock the cart row until the surrounding transaction ends, which
// serializes concurrent mutations of one cart.
type CartRepository interface {
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update replaces the stored lines with the aggregate lines.
	Update(ctx context.Context, aggregate *cart.Cart) error

	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	GetByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
