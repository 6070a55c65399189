package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrFailStalePaymentsCommandIsNotConstructed = errors.New(
		"FailStalePaymentsCommand must be created via NewFailStalePaymentsCommand constructor",
	)
	ErrExpireFailedOrdersCommandIsNotConstructed = errors.New(
		"ExpireFailedOrdersCommand must be created via NewExpireFailedOrdersCommand constructor",
	)
	ErrAgeMustBePositive = errors.New("age threshold must be greater than 0")
)

// FailStalePaymentsCommand fails payments stuck in PROCESSING for longer than staleAfter.
type FailStalePaymentsCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewFailStalePaymentsCommand returns ErrAgeMustBePositive unless staleAfter is positive.
func NewFailStalePaymentsCommand(staleAfter time.Duration) (FailStalePaymentsCommand, error) {
	if staleAfter <= 0 {
		return FailStalePaymentsCommand{}, ErrAgeMustBePositive
	}
	return FailStalePaymentsCommand{staleAfter: staleAfter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFailStalePaymentsCommandIsNotConstructed if validation fails.
func (c FailStalePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrFailStalePaymentsCommandIsNotConstructed)
}

// ExpireFailedOrdersCommand cancels orders left in PAYMENT_FAILED for longer than olderThan.
type ExpireFailedOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewExpireFailedOrdersCommand returns ErrAgeMustBePositive unless olderThan is positive.
func NewExpireFailedOrdersCommand(olderThan time.Duration) (ExpireFailedOrdersCommand, error) {
	if olderThan <= 0 {
		return ExpireFailedOrdersCommand{}, ErrAgeMustBePositive
	}
	return ExpireFailedOrdersCommand{olderThan: olderThan, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireFailedOrdersCommandIsNotConstructed if validation fails.
func (c ExpireFailedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireFailedOrdersCommandIsNotConstructed)
}

// SweepCommandHandler runs the periodic clean-ups. Each record is handled in its own
// transaction so one conflict does not block the rest; failures are logged and skipped.
type SweepCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewSweepCommandHandler creates a handler for both sweeps.
func NewSweepCommandHandler(uowFactory UoWFactory, logger *slog.Logger) SweepCommandHandler {
	return SweepCommandHandler{uowFactory: uowFactory, logger: logger.With("component", "sweeper")}
}

// FailStalePayments returns how many payments were failed.
func (h SweepCommandHandler) FailStalePayments(ctx context.Context, cmd FailStalePaymentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	stale, err := h.listStalePayments(ctx, now.Add(-cmd.staleAfter))
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, id := range stale {
		if err = h.failPayment(ctx, id, now); err != nil {
			h.logger.WarnContext(ctx, "failed to fail stale payment", "payment_id", id.String(), "error", err)
			continue
		}
		failed++
	}
	return failed, nil
}

// ExpireFailedOrders returns how many orders were cancelled.
func (h SweepCommandHandler) ExpireFailedOrders(ctx context.Context, cmd ExpireFailedOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	uow := h.uowFactory.Create()
	expired, err := uow.OrderRepository().GetAllInStatusSince(ctx, order.PaymentFailed, now.Add(-cmd.olderThan))
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, o := range expired {
		err = updateOrder(ctx, h.uowFactory, o.ID(), func(_ UoW, fresh *order.Order, at time.Time) error {
			return fresh.Cancel(order.CancelledBySystem, at)
		})
		if err != nil {
			h.logger.WarnContext(ctx, "failed to expire order", "order_id", o.ID().String(), "error", err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

func (h SweepCommandHandler) listStalePayments(ctx context.Context, before time.Time) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	payments, err := uow.PaymentRepository().GetAllStaleProcessing(ctx, before)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (h SweepCommandHandler) failPayment(ctx context.Context, paymentID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.Get(ctx, paymentID)
	if err != nil {
		return err
	}
	if p.Status() != payment.Processing {
		return nil
	}
	if err = p.Fail(now); err != nil {
		return err
	}
	if err = paymentRepo.Update(ctx, p); err != nil {
		return err
	}
	if orderID, ok := attachedOrder(p); ok {
		if err = trySyncOrder(ctx, uow, h.logger, orderID, now, order.PaymentFailed); err != nil && !isBusinessError(err) {
			return err
		}
	}

	return uow.Commit(ctx)
}
