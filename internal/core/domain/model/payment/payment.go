// Package payment holds the Payment aggregate: the single financial record of an order.
package payment

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment is the financial record of one order.
//
// Invariants:
//   - amount equals the order total at creation and never changes
//   - status moves only along the payment transition table
//   - a payment can be deleted only when FAILED or CANCELLED
type Payment struct {
	ddd.BaseAggregate

	id        kernel.UUID
	orderID   *kernel.UUID
	amount    kernel.Money
	method    Method
	status    Status
	createdAt time.Time
	updatedAt time.Time
	version   int

	isConstructed bool
}

// NewPayment opens a PENDING payment for an order.
func NewPayment(id, orderID kernel.UUID, amount kernel.Money, method Method, now time.Time) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), amount.Validate(), method.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		id:            id,
		orderID:       &orderID,
		amount:        amount,
		method:        method,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestorePayment rebuilds a payment from storage.
func RestorePayment(
	id kernel.UUID,
	orderID *kernel.UUID,
	amount kernel.Money,
	method Method,
	status Status,
	createdAt, updatedAt time.Time,
	version int,
) (*Payment, error) {
	if err := errors.Join(id.Validate(), amount.Validate(), method.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount,
		method:        method,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID       { return p.id }
func (p *Payment) Amount() kernel.Money  { return p.amount }
func (p *Payment) Method() Method        { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Payment) Version() int          { return p.version }
func (p *Payment) OrderID() *kernel.UUID { return p.orderID }

// AdvanceVersion is called by repositories after the payment row was written.
func (p *Payment) AdvanceVersion() {
	p.version++
}

// StartProcessing moves a PENDING payment to PROCESSING before the gateway is called.
func (p *Payment) StartProcessing(now time.Time) error {
	return p.transition(Pending, Processing, now)
}

// Complete records a successful gateway charge.
func (p *Payment) Complete(now time.Time) error {
	return p.transition(Processing, Completed, now)
}

// Fail records a declined or broken gateway charge.
func (p *Payment) Fail(now time.Time) error {
	return p.transition(Processing, Failed, now)
}

// Refund returns the money of a COMPLETED payment.
func (p *Payment) Refund(now time.Time) error {
	return p.transition(Completed, Refunded, now)
}

// Cancel abandons a PENDING payment.
func (p *Payment) Cancel(now time.Time) error {
	return p.transition(Pending, Cancelled, now)
}

// EnsureDeletable returns PreconditionFailed unless the payment is FAILED or CANCELLED.
func (p *Payment) EnsureDeletable() error {
	if !p.status.IsDeletable() {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("payment in status %s cannot be deleted, only FAILED or CANCELLED", p.status),
		)
	}
	return nil
}

// Mirror brings the payment to target when the order lifecycle moved first.
// It returns false without error when the payment already is in target, and an
// InvalidTransitionError when target is not reachable in one step.
func (p *Payment) Mirror(target Status, now time.Time) (bool, error) {
	if p.status == target {
		return false, nil
	}
	if !p.status.CanTransitionTo(target) {
		return false, errs.NewInvalidTransitionError("payment", p.status.String(), target.String())
	}
	p.apply(target, now)
	return true, nil
}

// DetachFromOrder drops the order reference before the order row is deleted.
func (p *Payment) DetachFromOrder() {
	p.orderID = nil
}

func (p *Payment) transition(expected, next Status, now time.Time) error {
	if p.status != expected {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("payment must be %s to become %s, it is %s", expected, next, p.status),
		)
	}
	p.apply(next, now)
	return nil
}

func (p *Payment) apply(next Status, now time.Time) {
	old := p.status
	p.status = next
	p.updatedAt = now
	p.RaiseDomainEvent(StatusChanged{
		BaseEvent: ddd.NewBaseEvent(StatusChangedEventName, now),
		PaymentID: p.id,
		OrderID:   p.orderID,
		OldStatus: old,
		NewStatus: next,
	})
}
