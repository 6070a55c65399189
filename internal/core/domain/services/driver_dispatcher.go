package services

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// ErrDriverNotFound is returned when none of the candidates can take the order.
var ErrDriverNotFound = errors.New("no available driver")

// DriverDispatcher assigns an order waiting for pickup to a driver.
//
// Business rules:
//   - The order must be READY_FOR_PICKUP
//   - Only AVAILABLE drivers are considered; the first one in candidate order wins
//   - On success the order is DRIVER_ASSIGNED and the driver is BUSY
type DriverDispatcher struct{}

func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{}
}

// Dispatch picks a driver among candidates and assigns the order to them.
func (DriverDispatcher) Dispatch(o *order.Order, candidates []*driver.Driver, now time.Time) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var chosen *driver.Driver
	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if d.IsAvailable() {
			chosen = d
			break
		}
	}
	if chosen == nil {
		return nil, ErrDriverNotFound
	}

	return chosen, Assign(o, chosen, now)
}

// Assign binds a specific driver to the order.
func Assign(o *order.Order, d *driver.Driver, now time.Time) error {
	if !d.IsAvailable() {
		return errs.NewPreconditionFailedError("driver " + d.ID().String() + " is " + d.Status().String())
	}
	if err := o.AssignDriver(d.ID(), now); err != nil {
		return err
	}
	return d.TakeOrder()
}
