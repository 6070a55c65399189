package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
)

// syncOrder moves the order behind a payment to target. Being at target already is fine;
// any other rejected transition is returned and aborts the surrounding transaction.
func syncOrder(ctx context.Context, uow UoW, orderID kernel.UUID, target order.Status, now time.Time) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Status() == target {
		return nil
	}
	if err = o.ChangeStatus(target, now); err != nil {
		return err
	}
	return orderRepo.Update(ctx, o)
}

// trySyncOrder walks the targets in order and applies the first legal one.
// An order that accepts none of them is left as it is and a warning is logged.
func trySyncOrder(
	ctx context.Context,
	uow UoW,
	logger *slog.Logger,
	orderID kernel.UUID,
	now time.Time,
	targets ...order.Status,
) error {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	for _, target := range targets {
		if o.Status() == target {
			return nil
		}
		if !o.Status().CanTransitionTo(target) {
			continue
		}
		if err = o.ChangeStatus(target, now); err != nil {
			return err
		}
		return orderRepo.Update(ctx, o)
	}

	logger.WarnContext(ctx, "order left unchanged after payment update",
		"order_id", orderID.String(),
		"order_status", o.Status().String(),
	)
	return nil
}

// attachedOrder returns the order a payment belongs to. Detached payments have none.
func attachedOrder(p *payment.Payment) (kernel.UUID, bool) {
	if p.OrderID() == nil {
		return kernel.UUID{}, false
	}
	return *p.OrderID(), true
}

func isBusinessError(err error) bool {
	return errors.Is(err, errs.ErrInvalidTransition) ||
		errors.Is(err, errs.ErrPreconditionFailed) ||
		errors.Is(err, errs.ErrObjectNotFound)
}
