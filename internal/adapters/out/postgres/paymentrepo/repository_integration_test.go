package paymentrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type PaymentRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	repo *paymentrepo.GormPaymentRepository
	now  time.Time
}

func TestPaymentRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(PaymentRepositoryTestSuite))
}

func (s *PaymentRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), postgres_adapter.Migrate)
	s.Require().NoError(err)
	s.pg = pg
}

func (s *PaymentRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
	s.repo = paymentrepo.NewGormPaymentRepository(s.pg.DB, &pgtest.RecordingTracker{})
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PaymentRepositoryTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Stop(context.Background()))
}

func (s *PaymentRepositoryTestSuite) newPayment(orderID kernel.UUID) *payment.Payment {
	p, err := payment.NewPayment(kernel.NewUUID(), orderID, kernel.MustMoney(42.10), payment.CreditCard, s.now)
	s.Require().NoError(err)
	return p
}

func (s *PaymentRepositoryTestSuite) TestAddAndGet() {
	ctx := s.T().Context()
	orderID := kernel.NewUUID()
	p := s.newPayment(orderID)
	s.Require().NoError(s.repo.Add(ctx, p))

	stored, err := s.repo.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(payment.Pending, stored.Status())
	s.Equal(payment.CreditCard, stored.Method())
	s.True(kernel.MustMoney(42.10).IsEqual(stored.Amount()))
	s.Require().NotNil(stored.OrderID())
	s.True(orderID.IsEqual(*stored.OrderID()))

	byOrder, err := s.repo.GetByOrder(ctx, orderID)
	s.Require().NoError(err)
	s.True(p.ID().IsEqual(byOrder.ID()))

	exists, err := s.repo.ExistsForOrder(ctx, orderID)
	s.Require().NoError(err)
	s.True(exists)
}

func (s *PaymentRepositoryTestSuite) TestAdd_SecondPaymentForOrder() {
	ctx := s.T().Context()
	orderID := kernel.NewUUID()
	s.Require().NoError(s.repo.Add(ctx, s.newPayment(orderID)))

	err := s.repo.Add(ctx, s.newPayment(orderID))
	s.ErrorIs(err, errs.ErrAlreadyExists)
}

func (s *PaymentRepositoryTestSuite) TestGetByOrder_Missing() {
	_, err := s.repo.GetByOrder(s.T().Context(), kernel.NewUUID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *PaymentRepositoryTestSuite) TestUpdate_VersionCheck() {
	ctx := s.T().Context()
	p := s.newPayment(kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, p))

	stale, err := s.repo.Get(ctx, p.ID())
	s.Require().NoError(err)

	s.Require().NoError(p.StartProcessing(s.now))
	s.Require().NoError(s.repo.Update(ctx, p))
	s.Equal(1, p.Version())

	s.Require().NoError(stale.Cancel(s.now))
	s.ErrorIs(s.repo.Update(ctx, stale), errs.ErrConflict)

	stored, err := s.repo.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(payment.Processing, stored.Status())
}

func (s *PaymentRepositoryTestSuite) TestDetachFromOrder() {
	ctx := s.T().Context()
	orderID := kernel.NewUUID()
	p := s.newPayment(orderID)
	s.Require().NoError(s.repo.Add(ctx, p))

	s.Require().NoError(s.repo.DetachFromOrder(ctx, orderID))

	stored, err := s.repo.Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Nil(stored.OrderID())
	s.Equal(1, stored.Version())

	exists, err := s.repo.ExistsForOrder(ctx, orderID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PaymentRepositoryTestSuite) TestGetAllStaleProcessing() {
	ctx := s.T().Context()
	stale := s.newPayment(kernel.NewUUID())
	fresh := s.newPayment(kernel.NewUUID())
	pending := s.newPayment(kernel.NewUUID())
	for _, p := range []*payment.Payment{stale, fresh, pending} {
		s.Require().NoError(s.repo.Add(ctx, p))
	}
	s.Require().NoError(stale.StartProcessing(s.now.Add(-time.Hour)))
	s.Require().NoError(s.repo.Update(ctx, stale))
	s.Require().NoError(fresh.StartProcessing(s.now))
	s.Require().NoError(s.repo.Update(ctx, fresh))

	payments, err := s.repo.GetAllStaleProcessing(ctx, s.now.Add(-5*time.Minute))
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.True(stale.ID().IsEqual(payments[0].ID()))
}

func (s *PaymentRepositoryTestSuite) TestDelete() {
	ctx := s.T().Context()
	p := s.newPayment(kernel.NewUUID())
	s.Require().NoError(s.repo.Add(ctx, p))

	s.Require().NoError(s.repo.Delete(ctx, p.ID()))
	s.ErrorIs(s.repo.Delete(ctx, p.ID()), errs.ErrObjectNotFound)
}
