package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is a state of the order lifecycle.
//
// Happy path:
//
//	PENDING -> CONFIRMED -> PREPARING -> PAYMENT_PENDING -> PAYMENT_PROCESSING
//	        -> PAYMENT_COMPLETED -> READY_FOR_PICKUP -> DRIVER_ASSIGNED -> DRIVER_PICKED_UP
//	        -> OUT_FOR_DELIVERY -> DELIVERED -> COMPLETED -> REFUNDED
//
// PAYMENT_FAILED loops back to PAYMENT_PENDING for a retry. The three CANCELLED_* states
// and REFUNDED are terminal. The complete set of legal moves lives in transitions.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	PaymentPending
	PaymentProcessing
	PaymentCompleted
	PaymentFailed
	ReadyForPickup
	DriverAssigned
	DriverPickedUp
	OutForDelivery
	Delivered
	Completed
	Refunded
	CancelledByCustomer
	CancelledByRestaurant
	CancelledBySystem
)

var statusNames = map[Status]string{
	Pending:               "PENDING",
	Confirmed:             "CONFIRMED",
	Preparing:             "PREPARING",
	PaymentPending:        "PAYMENT_PENDING",
	PaymentProcessing:     "PAYMENT_PROCESSING",
	PaymentCompleted:      "PAYMENT_COMPLETED",
	PaymentFailed:         "PAYMENT_FAILED",
	ReadyForPickup:        "READY_FOR_PICKUP",
	DriverAssigned:        "DRIVER_ASSIGNED",
	DriverPickedUp:        "DRIVER_PICKED_UP",
	OutForDelivery:        "OUT_FOR_DELIVERY",
	Delivered:             "DELIVERED",
	Completed:             "COMPLETED",
	Refunded:              "REFUNDED",
	CancelledByCustomer:   "CANCELLED_BY_CUSTOMER",
	CancelledByRestaurant: "CANCELLED_BY_RESTAURANT",
	CancelledBySystem:     "CANCELLED_BY_SYSTEM",
}

// transitions is the adjacency map of the lifecycle. A state missing from the map is terminal.
var transitions = map[Status][]Status{
	Pending:           {Confirmed, CancelledByCustomer, CancelledByRestaurant},
	Confirmed:         {Preparing, PaymentPending, CancelledByRestaurant},
	Preparing:         {ReadyForPickup, PaymentPending, CancelledByRestaurant},
	PaymentPending:    {PaymentProcessing, CancelledByCustomer},
	PaymentProcessing: {PaymentCompleted, PaymentFailed},
	PaymentCompleted:  {ReadyForPickup},
	PaymentFailed:     {PaymentPending, CancelledBySystem},
	ReadyForPickup:    {DriverAssigned, CancelledByRestaurant},
	DriverAssigned:    {DriverPickedUp, CancelledBySystem},
	DriverPickedUp:    {OutForDelivery},
	OutForDelivery:    {Delivered, CancelledBySystem},
	Delivered:         {Completed},
	Completed:         {Refunded},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	all := make([]Status, 0, len(statusNames))
	for s := Pending; s <= CancelledBySystem; s++ {
		all = append(all, s)
	}
	return all
}

// ParseStatus resolves a status name such as "READY_FOR_PICKUP". Matching ignores case.
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", name))
}

// Validate rejects Unknown and out-of-range values, e.g. corrupt rows.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", int(s)))
	}
	return nil
}

// String returns the wire name, e.g. "READY_FOR_PICKUP".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether next is in the allowed set of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns a copy of the allowed next states.
func (s Status) AllowedTransitions() []Status {
	allowed := transitions[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsCancellation reports whether s is one of the CANCELLED_* states.
func (s Status) IsCancellation() bool {
	return s == CancelledByCustomer || s == CancelledByRestaurant || s == CancelledBySystem
}

// IsPaymentState reports whether s belongs to the PAYMENT_* group.
func (s Status) IsPaymentState() bool {
	return s == PaymentPending || s == PaymentProcessing || s == PaymentCompleted || s == PaymentFailed
}

// IsPaymentEligible reports whether a payment may be opened for an order in s.
func (s Status) IsPaymentEligible() bool {
	return s == Preparing || s.IsPaymentState()
}

// IsActive reports whether the order is still being fulfilled. Completed orders only
// wait for a possible refund and no longer hold their cart.
func (s Status) IsActive() bool {
	return !s.IsTerminal() && s != Completed
}
