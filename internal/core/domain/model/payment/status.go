package payment

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is a state of the payment lifecycle.
//
//	PENDING ──> PROCESSING ──┬──> COMPLETED ──> REFUNDED
//	   │                     └──> FAILED
//	   └──> CANCELLED
type Status int

const (
	Unknown Status = iota
	Pending
	Processing
	Completed
	Failed
	Refunded
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "PENDING",
	Processing: "PROCESSING",
	Completed:  "COMPLETED",
	Failed:     "FAILED",
	Refunded:   "REFUNDED",
	Cancelled:  "CANCELLED",
}

var transitions = map[Status][]Status{
	Pending:    {Processing, Cancelled},
	Processing: {Completed, Failed},
	Completed:  {Refunded},
}

// ParseStatus resolves a status name such as "COMPLETED".
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for s, n := range statusNames {
		if n == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a payment status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsDeletable reports whether a payment in s may be removed.
func (s Status) IsDeletable() bool {
	return s == Failed || s == Cancelled
}
