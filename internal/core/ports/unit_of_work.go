package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
//
// Commit first dispatches the domain events raised by tracked aggregates to
// in-transaction handlers, then commits, then hands the same events to the
// post-commit publisher. A handler error aborts the commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PaymentRepository() PaymentRepository
	CartRepository() CartRepository
	VendorRepository() VendorRepository
	CategoryRepository() CategoryRepository
	CustomerRepository() CustomerRepository
	DriverRepository() DriverRepository
}
