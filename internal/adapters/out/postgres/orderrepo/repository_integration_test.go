package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OrderRepositoryTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	tracker *pgtest.RecordingTracker
	repo    *orderrepo.GormOrderRepository
	now     time.Time
}

func TestOrderRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (s *OrderRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	s.Require().NoError(err)
	s.pg = pg
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
	s.tracker = &pgtest.RecordingTracker{}
	s.repo = orderrepo.NewGormOrderRepository(s.pg.DB, s.tracker)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *OrderRepositoryTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Stop(context.Background()))
}

func (s *OrderRepositoryTestSuite) newOrder(customerID, cartID kernel.UUID) *order.Order {
	pizzeria := kernel.NewUUID()
	florist := kernel.NewUUID()
	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, cartID, nil,
		[]order.ItemSummary{
			{ItemID: kernel.NewUUID(), Name: "Margherita", Price: kernel.MustMoney(12.50), Quantity: 2,
				VendorID: pizzeria, VendorName: "Luigi's"},
			{ItemID: kernel.NewUUID(), Name: "Tulips", Description: "a dozen", Price: kernel.MustMoney(20),
				Quantity: 1, VendorID: florist, VendorName: "Bloom"},
		},
		[]order.VendorSummary{
			{VendorID: pizzeria, Name: "Luigi's", VendorType: "FOOD_AND_BEVERAGES"},
			{VendorID: florist, Name: "Bloom", VendorType: "FLORISTS"},
		},
		"12 Main St",
		s.now,
	)
	s.Require().NoError(err)
	return o
}

func (s *OrderRepositoryTestSuite) TestAddAndGet_RoundTripsSnapshots() {
	ctx := s.T().Context()
	o := s.newOrder(kernel.NewUUID(), kernel.NewUUID())

	s.Require().NoError(s.repo.Add(ctx, o))
	s.Len(s.tracker.Tracked, 1)

	stored, err := s.repo.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.True(o.ID().IsEqual(stored.ID()))
	s.True(kernel.MustMoney(245).IsEqual(stored.Total()))
	s.Equal("12 Main St", stored.DeliveryAddress())
	s.Equal(order.Pending, stored.Status())
	s.Nil(stored.Driver())
	s.Nil(stored.ReceivedDate())

	s.Require().Len(stored.Items(), 2)
	s.Equal("Margherita", stored.Items()[0].Name)
	s.Equal("Tulips", stored.Items()[1].Name)
	s.Equal("a dozen", stored.Items()[1].Description)
	s.Require().Len(stored.Vendors(), 2)
	s.Equal("FLORISTS", stored.Vendors()[1].VendorType)
}

func (s *OrderRepositoryTestSuite) TestAdd_DuplicateID() {
	ctx := s.T().Context()
	o := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, o))

	err := s.repo.Add(ctx, o)
	s.ErrorIs(err, errs.ErrAlreadyExists)
}

func (s *OrderRepositoryTestSuite) TestGet_Missing() {
	_, err := s.repo.Get(s.T().Context(), kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestUpdate_PersistsStatusDriverAndVersion() {
	ctx := s.T().Context()
	o := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, o))

	driverID := kernel.NewUUID()
	for _, next := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		s.Require().NoError(o.ChangeStatus(next, s.now))
	}
	s.Require().NoError(o.AssignDriver(driverID, s.now.Add(time.Minute)))
	s.Require().NoError(s.repo.Update(ctx, o))
	s.Equal(1, o.Version())

	stored, err := s.repo.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.DriverAssigned, stored.Status())
	s.Require().NotNil(stored.Driver())
	s.True(driverID.IsEqual(*stored.Driver()))
	s.Equal(1, stored.Version())
	s.True(s.now.Add(time.Minute).Equal(stored.StatusChangedAt()))
}

func (s *OrderRepositoryTestSuite) TestUpdate_Missing() {
	o := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	err := s.repo.Update(s.T().Context(), o)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestDelete_RemovesSnapshots() {
	ctx := s.T().Context()
	o := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, o))

	s.Require().NoError(s.repo.Delete(ctx, o.ID()))

	var items int64
	s.Require().NoError(s.pg.DB.Model(&orderrepo.OrderItemDTO{}).Count(&items).Error)
	s.Zero(items)
	s.ErrorIs(s.repo.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestGetIDsByCustomer() {
	ctx := s.T().Context()
	customerID := kernel.NewUUID()
	first := s.newOrder(customerID, kernel.NewUUID())
	second := s.newOrder(customerID, kernel.NewUUID())
	other := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	for _, o := range []*order.Order{first, second, other} {
		s.Require().NoError(s.repo.Add(ctx, o))
	}

	ids, err := s.repo.GetIDsByCustomer(ctx, customerID)
	s.Require().NoError(err)
	s.Len(ids, 2)
}

func (s *OrderRepositoryTestSuite) TestHasActiveForCart() {
	ctx := s.T().Context()
	cartID := kernel.NewUUID()
	o := s.newOrder(kernel.NewUUID(), cartID)
	s.Require().NoError(s.repo.Add(ctx, o))

	active, err := s.repo.HasActiveForCart(ctx, cartID)
	s.Require().NoError(err)
	s.True(active)

	s.Require().NoError(o.Cancel(order.CancelledByCustomer, s.now))
	s.Require().NoError(s.repo.Update(ctx, o))

	active, err = s.repo.HasActiveForCart(ctx, cartID)
	s.Require().NoError(err)
	s.False(active)
}

func (s *OrderRepositoryTestSuite) TestGetAllInStatusSince() {
	ctx := s.T().Context()
	stale := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	fresh := s.newOrder(kernel.NewUUID(), kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, stale))
	s.Require().NoError(s.repo.Add(ctx, fresh))

	walk := func(o *order.Order, at time.Time) {
		for _, next := range []order.Status{order.Confirmed, order.PaymentPending, order.PaymentProcessing,
			order.PaymentFailed} {
			s.Require().NoError(o.ChangeStatus(next, at))
		}
		s.Require().NoError(s.repo.Update(ctx, o))
	}
	walk(stale, s.now.Add(-48*time.Hour))
	walk(fresh, s.now)

	orders, err := s.repo.GetAllInStatusSince(ctx, order.PaymentFailed, s.now.Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.True(stale.ID().IsEqual(orders[0].ID()))
	s.Len(orders[0].Items(), 2)
}
