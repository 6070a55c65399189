package driver

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status tells whether a driver can take an order.
type Status string

const (
	Available Status = "AVAILABLE"
	Busy      Status = "BUSY"
	Offline   Status = "OFFLINE"
)

// ParseStatus resolves a status name, ignoring case.
func ParseStatus(name string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(name)))
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

func (s Status) Validate() error {
	switch s {
	case Available, Busy, Offline:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a driver status", string(s)))
}

func (s Status) String() string { return string(s) }
