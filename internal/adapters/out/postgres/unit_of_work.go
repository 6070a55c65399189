// Package postgres implements the unit of work on top of GORM transactions.
//
// Repositories created by a unit of work run inside its transaction once
// Begin has been called and report every aggregate they add or update back
// to it. On Commit the unit of work drains the domain events of those
// aggregates, dispatches them to in-transaction handlers, commits, and only
// then publishes the same events to post-commit subscribers.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/adapters/out/postgres/cartrepo"
	"fooddelivery/internal/adapters/out/postgres/categoryrepo"
	"fooddelivery/internal/adapters/out/postgres/customerrepo"
	"fooddelivery/internal/adapters/out/postgres/driverrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/vendorrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"gorm.io/gorm"
)

// maxDispatchRounds bounds event cascades: handlers may update aggregates
// that raise further events, which are dispatched in the next round.
const maxDispatchRounds = 8

var ErrEventCascadeTooDeep = errors.New("domain event cascade exceeded dispatch rounds")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher ports.EventDispatcher
	publisher  ports.EventPublisher
}

// NewGormUnitOfWorkFactory builds a factory. dispatcher and publisher may be
// nil, in which case events are dropped at commit.
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	dispatcher ports.EventDispatcher,
	publisher ports.EventPublisher,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:         db,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        ports.EventDispatcher
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin is idempotent: a second call while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit dispatches pending domain events, commits the transaction and then
// publishes every dispatched event. A dispatch failure rolls back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	dispatched, err := uow.dispatchEvents(ctx)
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return err
	}

	if uow.publisher != nil && len(dispatched) > 0 {
		uow.publisher.Publish(context.WithoutCancel(ctx), dispatched...)
	}
	return nil
}

// Rollback discards the transaction and any buffered events.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	for _, tracked := range uow.trackedAggregates {
		if root, ok := tracked.Aggregate.(ddd.AggregateRoot); ok {
			root.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) dispatchEvents(ctx context.Context) ([]ddd.DomainEvent, error) {
	var all []ddd.DomainEvent
	for round := 0; ; round++ {
		pending := uow.drainEvents()
		if len(pending) == 0 {
			return all, nil
		}
		if round == maxDispatchRounds {
			return nil, ErrEventCascadeTooDeep
		}

		for _, event := range pending {
			if uow.dispatcher == nil {
				continue
			}
			if err := uow.dispatcher.Dispatch(ctx, uow, event); err != nil {
				return nil, fmt.Errorf("dispatch %s: %w", event.EventName(), err)
			}
		}
		all = append(all, pending...)
	}
}

// drainEvents collects and clears events from each tracked aggregate once,
// even if the aggregate was tracked several times.
func (uow *GormUnitOfWork) drainEvents() []ddd.DomainEvent {
	seen := make(map[ddd.AggregateRoot]struct{}, len(uow.trackedAggregates))
	var events []ddd.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		root, ok := tracked.Aggregate.(ddd.AggregateRoot)
		if !ok {
			continue
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}

		events = append(events, root.DomainEvents()...)
		root.ClearDomainEvents()
	}
	return events
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) VendorRepository() ports.VendorRepository {
	return vendorrepo.NewGormVendorRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return categoryrepo.NewGormCategoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
