package eventhandlers

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

// PaymentMirror keeps the payment consistent with order transitions made
// outside the payment commands.
//
//   - order PAYMENT_COMPLETED, COMPLETED -> payment COMPLETED
//   - order PAYMENT_FAILED               -> payment FAILED
//   - order REFUNDED                     -> payment REFUNDED
//   - order CANCELLED_*                  -> a PENDING payment is CANCELLED
//
// A payment already at the target is left alone. A payment that cannot reach
// the target is logged and skipped; it never blocks the order transition.
type PaymentMirror struct {
	logger *slog.Logger
}

func NewPaymentMirror(logger *slog.Logger) PaymentMirror {
	return PaymentMirror{logger: logger.With("component", "payment-mirror")}
}

func (m PaymentMirror) Handle(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	changed, ok := event.(order.StatusChanged)
	if !ok {
		return nil
	}

	target, mirrored := mirrorTarget(changed.NewStatus)
	if !mirrored {
		return nil
	}

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.GetByOrder(ctx, changed.OrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if target == payment.Cancelled && p.Status() != payment.Pending {
		return nil
	}

	updated, err := p.Mirror(target, changed.OccurredAt())
	if errors.Is(err, errs.ErrInvalidTransition) {
		m.logger.WarnContext(ctx, "payment cannot follow order",
			"order_id", changed.OrderID.String(),
			"payment_id", p.ID().String(),
			"payment_status", p.Status().String(),
			"order_status", changed.NewStatus.String(),
		)
		return nil
	}
	if err != nil || !updated {
		return err
	}

	return paymentRepo.Update(ctx, p)
}

func mirrorTarget(s order.Status) (payment.Status, bool) {
	switch {
	case s == order.PaymentCompleted, s == order.Completed:
		return payment.Completed, true
	case s == order.PaymentFailed:
		return payment.Failed, true
	case s == order.Refunded:
		return payment.Refunded, true
	case s.IsCancellation():
		return payment.Cancelled, true
	}
	return payment.Unknown, false
}
