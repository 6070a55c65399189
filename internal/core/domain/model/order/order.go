package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// DeliveryFee is added to the item subtotal of every order.
	DeliveryFee = kernel.MustMoney(200)
)

// Order is the aggregate root of a placed purchase.
//
// Order follows these invariants:
//   - total is computed once at creation from the item snapshots plus DeliveryFee
//   - item and vendor snapshots never change after creation
//   - status only moves along the edges of the transition table
//   - receivedDate is set when the order is delivered
//   - a cancelled order has no driver
//
// Every accepted transition raises a StatusChanged event.
type Order struct {
	ddd.BaseAggregate

	id              kernel.UUID
	customerID      kernel.UUID
	cartID          kernel.UUID
	driverID        *kernel.UUID
	total           kernel.Money
	orderDate       time.Time
	receivedDate    *time.Time
	deliveryAddress string
	status          Status
	statusChangedAt time.Time
	items           []ItemSummary
	vendors         []VendorSummary

	// version is the optimistic concurrency token compared by repositories on update.
	version int

	isConstructed bool
}

// NewOrder places an order in PENDING status.
//
// Parameters:
//   - id: identifier of the new order
//   - customerID, cartID: the owner and the cart the order was checked out from
//   - driverID: the driver chosen at checkout, nil when none was chosen
//   - items, vendors: snapshots of the catalog taken from the cart (at least one item)
//   - deliveryAddress: optional free-form address
//   - now: order date
//
// Returns:
//   - *Order: the PENDING order with its total computed
//   - error: validation error if an identifier or snapshot is invalid
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, cartID, &driverID, items, vendors, "12 Main St", time.Now())
func NewOrder(
	id, customerID, cartID kernel.UUID,
	driverID *kernel.UUID,
	items []ItemSummary,
	vendors []VendorSummary,
	deliveryAddress string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		orderDate:       now,
		statusChangedAt: now,
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setIdentity(id, customerID, cartID, driverID),
		o.setSnapshots(items, vendors),
	); err != nil {
		return nil, err
	}

	total, err := computeTotal(o.items)
	if err != nil {
		return nil, err
	}
	o.total = total

	return o, nil
}

// RestoreOrder rebuilds an order from storage without raising events or recomputing the total.
//
// Returns:
//   - *Order: the order in the stored status and version
//   - error: validation error if the stored row is inconsistent
func RestoreOrder(
	id, customerID, cartID kernel.UUID,
	driverID *kernel.UUID,
	total kernel.Money,
	orderDate time.Time,
	receivedDate *time.Time,
	deliveryAddress string,
	status Status,
	statusChangedAt time.Time,
	items []ItemSummary,
	vendors []VendorSummary,
	version int,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		total:           total,
		orderDate:       orderDate,
		receivedDate:    receivedDate,
		deliveryAddress: deliveryAddress,
		status:          status,
		statusChangedAt: statusChangedAt,
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setIdentity(id, customerID, cartID, driverID),
		o.setSnapshots(items, vendors),
		total.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// computeTotal sums the line totals and adds the delivery fee.
func computeTotal(items []ItemSummary) (kernel.Money, error) {
	total := DeliveryFee
	for _, item := range items {
		line, err := item.LineTotal()
		if err != nil {
			return kernel.Money{}, err
		}
		total = total.Add(line)
	}
	return total, nil
}

// Validate ensures the order was built by a constructor.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed for a zero or nil order
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier for the order.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the unique identifier of the customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CartID returns the unique identifier of the cart.
func (o *Order) CartID() kernel.UUID {
	return o.cartID
}

// Total returns the order total.
func (o *Order) Total() kernel.Money {
	return o.total
}

// OrderDate returns when the order was placed.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// ReceivedDate returns when the order was delivered, or nil before delivery.
func (o *Order) ReceivedDate() *time.Time {
	return o.receivedDate
}

// DeliveryAddress returns where the order is delivered.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusChangedAt returns when the status last changed.
func (o *Order) StatusChangedAt() time.Time {
	return o.statusChangedAt
}

// Version returns the optimistic concurrency version.
func (o *Order) Version() int {
	return o.version
}

// Driver returns the assigned driver, nil when none is assigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Items returns a copy of the item snapshots.
func (o *Order) Items() []ItemSummary {
	out := make([]ItemSummary, len(o.items))
	copy(out, o.items)
	return out
}

// Vendors returns a copy of the vendor snapshots.
func (o *Order) Vendors() []VendorSummary {
	out := make([]VendorSummary, len(o.vendors))
	copy(out, o.vendors)
	return out
}

// AdvanceVersion is called by repositories after the order row was written.
func (o *Order) AdvanceVersion() {
	o.version++
}

// ChangeStatus moves the order to next if the transition table allows it.
//
// Side effects:
//   - DELIVERED stamps receivedDate with now
//   - any CANCELLED_* state releases the driver
//   - REFUNDED is only reachable from COMPLETED
//
// Returns an InvalidTransitionError when the move is not allowed. The order is left untouched on error.
func (o *Order) ChangeStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError("order", o.status.String(), next.String())
	}
	if next == Refunded && o.status != Completed {
		return errs.NewInvalidTransitionError("order", o.status.String(), next.String())
	}

	driverID := o.driverID
	switch {
	case next == Delivered:
		received := now
		o.receivedDate = &received
	case next.IsCancellation():
		o.driverID = nil
	}

	old := o.status
	o.status = next
	o.statusChangedAt = now
	o.RaiseDomainEvent(newStatusChanged(o, old, driverID, now))
	return nil
}

// AssignDriver hands a READY_FOR_PICKUP order to a driver and moves it to DRIVER_ASSIGNED.
func (o *Order) AssignDriver(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.requireStatus(ReadyForPickup, DriverAssigned); err != nil {
		return err
	}

	previous := o.driverID
	o.driverID = &driverID
	if err := o.ChangeStatus(DriverAssigned, now); err != nil {
		o.driverID = previous
		return err
	}
	return nil
}

// MarkPickedUp records that the assigned driver collected the order.
func (o *Order) MarkPickedUp(now time.Time) error {
	if err := o.requireStatus(DriverAssigned, DriverPickedUp); err != nil {
		return err
	}
	return o.ChangeStatus(DriverPickedUp, now)
}

// MarkOutForDelivery records that the driver left for the customer.
func (o *Order) MarkOutForDelivery(now time.Time) error {
	if err := o.requireStatus(DriverPickedUp, OutForDelivery); err != nil {
		return err
	}
	return o.ChangeStatus(OutForDelivery, now)
}

// MarkDelivered performs DELIVERED followed by COMPLETED. Both transitions raise events.
func (o *Order) MarkDelivered(now time.Time) error {
	if err := o.requireStatus(OutForDelivery, Delivered); err != nil {
		return err
	}
	if err := o.ChangeStatus(Delivered, now); err != nil {
		return err
	}
	return o.ChangeStatus(Completed, now)
}

// Cancel moves the order to one of the CANCELLED_* states.
func (o *Order) Cancel(cancellation Status, now time.Time) error {
	if !cancellation.IsCancellation() {
		return errs.NewValueIsInvalidErrorWithCause(
			"cancellation status",
			fmt.Errorf("%s is not a cancellation status", cancellation),
		)
	}
	return o.ChangeStatus(cancellation, now)
}

func (o *Order) requireStatus(expected, next Status) error {
	if o.status != expected {
		return errs.NewInvalidTransitionError("order", o.status.String(), next.String())
	}
	return nil
}

func (o *Order) setIdentity(id, customerID, cartID kernel.UUID, driverID *kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), cartID.Validate()); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		d := *driverID
		o.driverID = &d
	}
	o.id = id
	o.customerID = customerID
	o.cartID = cartID
	return nil
}

func (o *Order) setSnapshots(items []ItemSummary, vendors []VendorSummary) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	for _, vendor := range vendors {
		if err := vendor.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]ItemSummary(nil), items...)
	o.vendors = append([]VendorSummary(nil), vendors...)
	return nil
}
