package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type recordingDispatcher struct {
	handle func(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error
	seen   []ddd.DomainEvent
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	d.seen = append(d.seen, event)
	if d.handle == nil {
		return nil
	}
	return d.handle(ctx, uow, event)
}

type recordingPublisher struct {
	published []ddd.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...ddd.DomainEvent) {
	p.published = append(p.published, events...)
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	dispatcher *recordingDispatcher
	publisher  *recordingPublisher
	factory    ports.UnitOfWorkFactory
	now        time.Time
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (s *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	s.Require().NoError(err)
	s.pg = pg
}

func (s *UnitOfWorkIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
	s.dispatcher = &recordingDispatcher{}
	s.publisher = &recordingPublisher{}
	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(s.pg.DB, s.dispatcher, s.publisher)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Stop(context.Background()))
}

func (s *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	vendorID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), &driverID,
		[]order.ItemSummary{{
			ItemID:     kernel.NewUUID(),
			Name:       "Margherita",
			Price:      kernel.MustMoney(12.50),
			Quantity:   2,
			VendorID:   vendorID,
			VendorName: "Luigi's",
		}},
		[]order.VendorSummary{{VendorID: vendorID, Name: "Luigi's", VendorType: "FOOD_AND_BEVERAGES"}},
		"12 Main St",
		s.now,
	)
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkIntegrationTestSuite) addOrder(o *order.Order) {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Commit(ctx))
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := s.T().Context()
	o := s.newOrder()

	s.addOrder(o)

	stored, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Pending, stored.Status())
	s.True(o.Total().IsEqual(stored.Total()))
	s.Empty(s.dispatcher.seen)
	s.Empty(s.publisher.published)
}

func (s *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChangesAndEvents() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(stored.ChangeStatus(order.Confirmed, s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, stored))
	s.Require().NoError(uow.Rollback(ctx))

	reloaded, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Pending, reloaded.Status())
	s.Empty(stored.DomainEvents())
	s.Empty(s.publisher.published)
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_DispatchesThenPublishes() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(stored.ChangeStatus(order.Confirmed, s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, stored))
	s.Require().NoError(uow.Commit(ctx))

	s.Require().Len(s.dispatcher.seen, 1)
	s.Require().Len(s.publisher.published, 1)
	event, ok := s.publisher.published[0].(order.StatusChanged)
	s.Require().True(ok)
	s.Equal(order.Pending, event.OldStatus)
	s.Equal(order.Confirmed, event.NewStatus)
	s.Empty(stored.DomainEvents())
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_HandlerWritesShareTransaction() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	d, err := driver.NewDriver(kernel.NewUUID(), "Dana", "+1555000", "AB-123")
	s.Require().NoError(err)
	s.dispatcher.handle = func(ctx context.Context, uow ports.UnitOfWork, _ ddd.DomainEvent) error {
		return uow.DriverRepository().Add(ctx, d)
	}

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(stored.ChangeStatus(order.Confirmed, s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, stored))
	s.Require().NoError(uow.Commit(ctx))

	_, err = s.factory.Create().DriverRepository().Get(ctx, d.ID())
	s.NoError(err)
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_HandlerFailureRollsBack() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	boom := errors.New("boom")
	s.dispatcher.handle = func(context.Context, ports.UnitOfWork, ddd.DomainEvent) error {
		return boom
	}

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(stored.ChangeStatus(order.Confirmed, s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, stored))

	err = uow.Commit(ctx)
	s.Require().ErrorIs(err, boom)

	reloaded, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Pending, reloaded.Status())
	s.Empty(s.publisher.published)
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_CascadingEventsAreBounded() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	// Every dispatch walks the order one step further, so the cascade never settles.
	steps := []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup, order.DriverAssigned,
		order.DriverPickedUp, order.OutForDelivery, order.Delivered, order.Completed, order.Refunded}
	next := 1
	s.dispatcher.handle = func(ctx context.Context, uow ports.UnitOfWork, _ ddd.DomainEvent) error {
		if next >= len(steps) {
			return nil
		}
		current, err := uow.OrderRepository().Get(ctx, o.ID())
		if err != nil {
			return err
		}
		if err := current.ChangeStatus(steps[next], s.now); err != nil {
			return err
		}
		next++
		return uow.OrderRepository().Update(ctx, current)
	}

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	stored, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Require().NoError(stored.ChangeStatus(steps[0], s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, stored))

	err = uow.Commit(ctx)
	s.Require().ErrorIs(err, postgres_adapter.ErrEventCascadeTooDeep)
	s.Empty(s.publisher.published)
}

func (s *UnitOfWorkIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := s.T().Context()
	o := s.newOrder()
	s.addOrder(o)

	first, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	second, err := s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(first.ChangeStatus(order.Confirmed, s.now))
	s.Require().NoError(uow.OrderRepository().Update(ctx, first))
	s.Require().NoError(uow.Commit(ctx))

	uow = s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(second.ChangeStatus(order.CancelledByCustomer, s.now))
	err = uow.OrderRepository().Update(ctx, second)
	s.Require().ErrorIs(err, errs.ErrConflict)
	s.Require().NoError(uow.Rollback(ctx))
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	err := s.factory.Create().Commit(s.T().Context())
	s.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (s *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Rollback(ctx))
	s.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}
