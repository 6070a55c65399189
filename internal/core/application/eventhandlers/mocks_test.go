package eventhandlers_test

import (
	"context"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"

	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
	ports.PaymentRepository
}

func (m *MockPaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockDriverRepository struct {
	mock.Mock
	ports.DriverRepository
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockUnitOfWork embeds the port so only the repositories a handler touches need answers.
type MockUnitOfWork struct {
	mock.Mock
	ports.UnitOfWork
}

func (m *MockUnitOfWork) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUnitOfWork) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// recordingPublisher collects what it receives.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ddd.DomainEvent
}

func (r *recordingPublisher) Publish(_ context.Context, events ...ddd.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

type panickingPublisher struct{}

func (panickingPublisher) Publish(context.Context, ...ddd.DomainEvent) { panic("subscriber bug") }

func orderChanged(from, to order.Status, driverID *kernel.UUID) order.StatusChanged {
	return order.StatusChanged{
		BaseEvent:  ddd.NewBaseEvent(order.StatusChangedEventName, time.Now().UTC()),
		OrderID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		DriverID:   driverID,
		OldStatus:  from,
		NewStatus:  to,
	}
}

func paymentIn(status payment.Status, orderID kernel.UUID) *payment.Payment {
	now := time.Now().UTC()
	p, err := payment.RestorePayment(
		kernel.NewUUID(), &orderID, kernel.MustMoney(245), payment.CreditCard, status, now, now, 1,
	)
	if err != nil {
		panic(err)
	}
	return p
}
