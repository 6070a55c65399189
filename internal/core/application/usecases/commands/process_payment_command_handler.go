package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// GatewayPolicy bounds the external charge call.
type GatewayPolicy struct {
	// Timeout caps all attempts together.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries uint64
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
}

// ProcessPaymentCommandHandler charges a PENDING payment.
//
// The work is split so no transaction stays open during the gateway call:
//  1. tx: payment PROCESSING, order PAYMENT_PROCESSING
//  2. gateway call with timeout and bounded retries, panics recovered
//  3. tx: payment COMPLETED with order PAYMENT_COMPLETED then READY_FOR_PICKUP,
//     or payment FAILED with order PAYMENT_FAILED
//
// Gateway failures never reach the caller; they only select the FAILED path.
// Handle returns the final payment status.
type ProcessPaymentCommandHandler struct {
	uowFactory UoWFactory
	gateway    ports.PaymentGateway
	policy     GatewayPolicy
	logger     *slog.Logger
}

// NewProcessPaymentCommandHandler creates a payment processor.
// A zero InitialInterval in policy defaults to 200ms.
func NewProcessPaymentCommandHandler(
	uowFactory UoWFactory,
	gateway ports.PaymentGateway,
	policy GatewayPolicy,
	logger *slog.Logger,
) ProcessPaymentCommandHandler {
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = 200 * time.Millisecond
	}
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		policy:     policy,
		logger:     logger.With("component", "payment-processor"),
	}
}

// Handle runs the three steps and returns the final payment status.
// An error is returned only when the payment cannot be started or stored.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) (payment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return payment.Unknown, err
	}

	req, err := h.start(ctx, cmd.PaymentID())
	if err != nil {
		return payment.Unknown, err
	}

	result, chargeErr := h.charge(ctx, req)
	if chargeErr != nil {
		h.logger.WarnContext(ctx, "payment gateway failed",
			"payment_id", req.PaymentID.String(),
			"error", chargeErr,
		)
		result = ports.ChargeResult{Approved: false, Reason: chargeErr.Error()}
	}

	return h.finish(context.WithoutCancel(ctx), req, result)
}

func (h ProcessPaymentCommandHandler) start(ctx context.Context, paymentID kernel.UUID) (ports.ChargeRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.ChargeRequest{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.Get(ctx, paymentID)
	if err != nil {
		return ports.ChargeRequest{}, err
	}

	orderID, ok := attachedOrder(p)
	if !ok {
		return ports.ChargeRequest{}, errs.NewPreconditionFailedError("payment " + p.ID().String() + " has no order")
	}

	now := time.Now().UTC()
	if err = p.StartProcessing(now); err != nil {
		return ports.ChargeRequest{}, err
	}
	if err = paymentRepo.Update(ctx, p); err != nil {
		return ports.ChargeRequest{}, err
	}
	if err = syncOrder(ctx, uow, orderID, order.PaymentProcessing, now); err != nil {
		return ports.ChargeRequest{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.ChargeRequest{}, err
	}

	return ports.ChargeRequest{
		PaymentID: p.ID(),
		OrderID:   orderID,
		Amount:    p.Amount(),
		Method:    p.Method(),
	}, nil
}

// charge calls the gateway with retries. Declines are final answers and are not retried.
func (h ProcessPaymentCommandHandler) charge(ctx context.Context, req ports.ChargeRequest) (ports.ChargeResult, error) {
	if h.policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.policy.Timeout)
		defer cancel()
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = h.policy.InitialInterval
	retrier := backoff.WithContext(backoff.WithMaxRetries(policy, h.policy.MaxRetries), ctx)

	var result ports.ChargeResult
	operation := func() error {
		r, err := h.safeCharge(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		result = r
		return nil
	}

	notify := func(err error, wait time.Duration) {
		h.logger.InfoContext(ctx, "retrying payment gateway",
			"payment_id", req.PaymentID.String(),
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, retrier, notify); err != nil {
		return ports.ChargeResult{}, errs.NewExternalFailureError("payment gateway", err)
	}
	return result, nil
}

func (h ProcessPaymentCommandHandler) safeCharge(
	ctx context.Context,
	req ports.ChargeRequest,
) (result ports.ChargeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = backoff.Permanent(fmt.Errorf("payment gateway panic: %v", r))
		}
	}()
	return h.gateway.Charge(ctx, req)
}

func (h ProcessPaymentCommandHandler) finish(
	ctx context.Context,
	req ports.ChargeRequest,
	result ports.ChargeResult,
) (payment.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return payment.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	p, err := paymentRepo.Get(ctx, req.PaymentID)
	if err != nil {
		return payment.Unknown, err
	}
	if p.Status() != payment.Processing {
		// the stale payment sweep got here first
		h.logger.WarnContext(ctx, "payment finished elsewhere while charging",
			"payment_id", p.ID().String(),
			"status", p.Status().String(),
		)
		return p.Status(), nil
	}

	now := time.Now().UTC()
	if result.Approved {
		err = p.Complete(now)
	} else {
		err = p.Fail(now)
	}
	if err != nil {
		return payment.Unknown, err
	}
	if err = paymentRepo.Update(ctx, p); err != nil {
		return payment.Unknown, err
	}

	if result.Approved {
		err = trySyncOrder(ctx, uow, h.logger, req.OrderID, now, order.PaymentCompleted)
		if err == nil {
			err = trySyncOrder(ctx, uow, h.logger, req.OrderID, now, order.ReadyForPickup)
		}
	} else {
		err = trySyncOrder(ctx, uow, h.logger, req.OrderID, now, order.PaymentFailed)
	}
	if err != nil && !isBusinessError(err) {
		return payment.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return payment.Unknown, err
	}

	h.logger.InfoContext(ctx, "payment processed",
		"payment_id", p.ID().String(),
		"order_id", req.OrderID.String(),
		"status", p.Status().String(),
		"reason", result.Reason,
	)
	return p.Status(), nil
}
