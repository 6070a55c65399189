// Package commands contains business operations that modify system state.
// Every handler validates its command, opens a unit of work, mutates aggregates
// through domain methods and commits. Domain events raised along the way are
// dispatched by the unit of work during Commit.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	VendorRepoFactory interface {
		VendorRepository() ports.VendorRepository
	}

	CategoryRepoFactory interface {
		CategoryRepository() ports.CategoryRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// CartUoW serves cart mutations, which read catalog prices.
	CartUoW interface {
		TxManager
		CartRepoFactory
		VendorRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// CatalogUoW serves vendor, item and category management.
	CatalogUoW interface {
		TxManager
		VendorRepoFactory
		CategoryRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW spans every repository. Used by order, payment and customer commands,
	// whose events may touch several aggregates in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		CartRepoFactory
		VendorRepoFactory
		CategoryRepoFactory
		CustomerRepoFactory
		DriverRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
