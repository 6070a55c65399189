// Package driver holds the delivery driver entity.
//
// A driver is assigned to an order while it waits for pickup. Only AVAILABLE
// drivers can be assigned; the assignment marks them BUSY and completing or
// cancelling the order frees them again.
package driver

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired        = errs.NewValueIsRequiredError("phone number")
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver delivers orders from vendors to customers.
type Driver struct {
	id           kernel.UUID
	name         string
	phoneNumber  string
	vehiclePlate string
	status       Status

	isConstructed bool
}

// NewDriver registers an available driver.
func NewDriver(id kernel.UUID, name, phoneNumber, vehiclePlate string) (*Driver, error) {
	d := &Driver{status: Available, isConstructed: true}
	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phoneNumber),
	); err != nil {
		return nil, err
	}
	d.vehiclePlate = strings.TrimSpace(vehiclePlate)
	return d, nil
}

// RestoreDriver rebuilds a driver from storage.
func RestoreDriver(id kernel.UUID, name, phoneNumber, vehiclePlate string, status Status) (*Driver, error) {
	d, err := NewDriver(id, name, phoneNumber, vehiclePlate)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	d.status = status
	return d, nil
}

func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

func (d *Driver) ID() kernel.UUID      { return d.id }
func (d *Driver) Name() string         { return d.name }
func (d *Driver) PhoneNumber() string  { return d.phoneNumber }
func (d *Driver) VehiclePlate() string { return d.vehiclePlate }
func (d *Driver) Status() Status       { return d.status }
func (d *Driver) IsAvailable() bool    { return d.status == Available }

// TakeOrder marks the driver busy.
func (d *Driver) TakeOrder() error {
	if d.status != Available {
		return errs.NewPreconditionFailedError("driver " + d.id.String() + " is " + d.status.String())
	}
	d.status = Busy
	return nil
}

// Release makes the driver available again. Offline drivers stay offline.
func (d *Driver) Release() {
	if d.status == Busy {
		d.status = Available
	}
}

// ChangeStatus sets the driver status directly. A busy driver cannot go offline.
func (d *Driver) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if d.status == Busy && status == Offline {
		return errs.NewPreconditionFailedError("driver is delivering an order")
	}
	d.status = status
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phoneNumber = phone
	return nil
}
