// Package gateway holds the payment gateway adapter.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
)

// SimulatedGateway stands in for a card processor: it waits Delay and then
// approves every charge, except those above DeclineAbove when it is set.
type SimulatedGateway struct {
	delay        time.Duration
	declineAbove *kernel.Money
	logger       *slog.Logger
}

var _ ports.PaymentGateway = (*SimulatedGateway)(nil)

func NewSimulatedGateway(delay time.Duration, declineAbove *kernel.Money, logger *slog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		delay:        delay,
		declineAbove: declineAbove,
		logger:       logger.With("component", "payment_gateway"),
	}
}

// Charge returns ctx.Err() if ctx ends before the delay elapses.
func (g *SimulatedGateway) Charge(ctx context.Context, req ports.ChargeRequest) (ports.ChargeResult, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ports.ChargeResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	if g.declineAbove != nil && req.Amount.GreaterThan(*g.declineAbove) {
		g.logger.InfoContext(ctx, "charge declined",
			"payment_id", req.PaymentID.String(),
			"amount", req.Amount.String(),
		)
		return ports.ChargeResult{Approved: false, Reason: "amount exceeds limit"}, nil
	}

	reference := uuid.NewString()
	g.logger.InfoContext(ctx, "charge approved",
		"payment_id", req.PaymentID.String(),
		"method", req.Method.String(),
		"reference", reference,
	)
	return ports.ChargeResult{Approved: true, Reference: reference}, nil
}
