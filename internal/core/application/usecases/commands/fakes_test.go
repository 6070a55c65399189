package commands_test

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/category"
	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/vendor"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

// memData is one consistent version of the in-memory database.
type memData struct {
	orders     map[string]order.Order
	payments   map[string]payment.Payment
	carts      map[string]*cart.Cart
	vendors    map[string]*vendor.Vendor
	categories map[string]category.Category
	customers  map[string]customer.Customer
	drivers    map[string]driver.Driver
}

func (d memData) clone() memData {
	return memData{
		orders:     cloneMap(d.orders),
		payments:   cloneMap(d.payments),
		carts:      cloneMap(d.carts),
		vendors:    cloneMap(d.vendors),
		categories: cloneMap(d.categories),
		customers:  cloneMap(d.customers),
		drivers:    cloneMap(d.drivers),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memStore is a transactional in-memory database. A unit of work edits a
// private copy that replaces the shared data on Commit.
type memStore struct {
	mu         sync.Mutex
	data       memData
	dispatcher ports.EventDispatcher
	published  []ddd.DomainEvent
}

func newMemStore() *memStore {
	return &memStore{data: memData{
		orders:     map[string]order.Order{},
		payments:   map[string]payment.Payment{},
		carts:      map[string]*cart.Cart{},
		vendors:    map[string]*vendor.Vendor{},
		categories: map[string]category.Category{},
		customers:  map[string]customer.Customer{},
		drivers:    map[string]driver.Driver{},
	}}
}

func (s *memStore) Create() commands.UoW { return &memUoW{store: s} }

type cartFactory struct{ store *memStore }

func (f cartFactory) Create() commands.CartUoW { return &memUoW{store: f.store} }

type catalogFactory struct{ store *memStore }

func (f catalogFactory) Create() commands.CatalogUoW { return &memUoW{store: f.store} }

type driverFactory struct{ store *memStore }

func (f driverFactory) Create() commands.DriverUoW { return &memUoW{store: f.store} }

// seed helpers write straight into committed data.

func (s *memStore) seedOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[o.ID().String()] = copyOrder(o)
}

func (s *memStore) seedPayment(p *payment.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.payments[p.ID().String()] = copyPayment(p)
}

func (s *memStore) seedCart(c *cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.carts[c.ID().String()] = copyCart(c)
}

func (s *memStore) seedVendor(v *vendor.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.vendors[v.ID().String()] = copyVendor(v)
}

func (s *memStore) seedCustomer(c *customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.customers[c.ID().String()] = *c
}

func (s *memStore) seedDriver(d *driver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.drivers[d.ID().String()] = *d
}

func (s *memStore) order(id kernel.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id.String()]
	if !ok {
		return nil, false
	}
	out := copyOrder(&o)
	return &out, true
}

func (s *memStore) payment(id kernel.UUID) (*payment.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.payments[id.String()]
	if !ok {
		return nil, false
	}
	out := copyPayment(&p)
	return &out, true
}

func (s *memStore) cartOf(customerID kernel.UUID) (*cart.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.data.carts {
		if c.CustomerID().IsEqual(customerID) {
			return copyCart(c), true
		}
	}
	return nil, false
}

func (s *memStore) driver(id kernel.UUID) (*driver.Driver, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data.drivers[id.String()]
	return &d, ok
}

func (s *memStore) vendor(id kernel.UUID) (*vendor.Vendor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.vendors[id.String()]
	if !ok {
		return nil, false
	}
	return copyVendor(v), true
}

func (s *memStore) counts() (orders, payments, carts, customers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders), len(s.data.payments), len(s.data.carts), len(s.data.customers)
}

func copyOrder(o *order.Order) order.Order {
	out := *o
	out.ClearDomainEvents()
	return out
}

func copyPayment(p *payment.Payment) payment.Payment {
	out := *p
	out.ClearDomainEvents()
	return out
}

func copyCart(c *cart.Cart) *cart.Cart {
	out, err := cart.RestoreCart(c.ID(), c.CustomerID(), c.Lines(), c.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return out
}

func copyVendor(v *vendor.Vendor) *vendor.Vendor {
	items := make([]*vendor.Item, 0, len(v.Items()))
	for _, i := range v.Items() {
		item, err := vendor.RestoreItem(i.ID(), i.Name(), i.Description(), i.Price(), i.CategoryID(), i.IsAvailable())
		if err != nil {
			panic(err)
		}
		items = append(items, item)
	}
	out, err := vendor.RestoreVendor(v.ID(), v.Name(), v.Type(), items)
	if err != nil {
		panic(err)
	}
	return out
}

type memUoW struct {
	store   *memStore
	work    *memData
	tracked []ddd.AggregateRoot
}

func (u *memUoW) Begin(context.Context) error {
	if u.work != nil {
		return nil
	}
	u.store.mu.Lock()
	work := u.store.data.clone()
	u.store.mu.Unlock()
	u.work = &work
	return nil
}

func (u *memUoW) Commit(ctx context.Context) error {
	if u.work == nil {
		return errs.NewPreconditionFailedError("no transaction")
	}

	var all []ddd.DomainEvent
	for round := 0; round < 8; round++ {
		var pending []ddd.DomainEvent
		for _, root := range u.tracked {
			pending = append(pending, root.DomainEvents()...)
			root.ClearDomainEvents()
		}
		if len(pending) == 0 {
			break
		}
		for _, event := range pending {
			if u.store.dispatcher == nil {
				continue
			}
			if err := u.store.dispatcher.Dispatch(ctx, u, event); err != nil {
				u.work = nil
				return err
			}
		}
		all = append(all, pending...)
	}

	u.store.mu.Lock()
	u.store.data = *u.work
	u.store.published = append(u.store.published, all...)
	u.store.mu.Unlock()
	u.work = nil
	u.tracked = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	u.work = nil
	u.tracked = nil
	return nil
}

// data returns the transaction copy, or committed data when no transaction is open.
func (u *memUoW) data() *memData {
	if u.work != nil {
		return u.work
	}
	return &u.store.data
}

func (u *memUoW) track(root ddd.AggregateRoot) {
	if !slices.Contains(u.tracked, root) {
		u.tracked = append(u.tracked, root)
	}
}

func (u *memUoW) OrderRepository() ports.OrderRepository       { return memOrders{u} }
func (u *memUoW) PaymentRepository() ports.PaymentRepository   { return memPayments{u} }
func (u *memUoW) CartRepository() ports.CartRepository         { return memCarts{u} }
func (u *memUoW) VendorRepository() ports.VendorRepository     { return memVendors{u} }
func (u *memUoW) CategoryRepository() ports.CategoryRepository { return memCategories{u} }
func (u *memUoW) CustomerRepository() ports.CustomerRepository { return memCustomers{u} }
func (u *memUoW) DriverRepository() ports.DriverRepository     { return memDrivers{u} }

type memOrders struct{ u *memUoW }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	if _, ok := r.u.data().orders[o.ID().String()]; ok {
		return errs.NewAlreadyExistsError("order", o.ID().String())
	}
	r.u.data().orders[o.ID().String()] = copyOrder(o)
	r.u.track(o)
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	stored, ok := r.u.data().orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	if stored.Version() != o.Version() {
		return errs.NewConflictError("order", o.ID().String())
	}
	o.AdvanceVersion()
	r.u.data().orders[o.ID().String()] = copyOrder(o)
	r.u.track(o)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	stored, ok := r.u.data().orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	out := copyOrder(&stored)
	return &out, nil
}

func (r memOrders) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.data().orders[id.String()]; !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	delete(r.u.data().orders, id.String())
	return nil
}

func (r memOrders) GetIDsByCustomer(_ context.Context, customerID kernel.UUID) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	for _, o := range r.u.data().orders {
		if o.CustomerID().IsEqual(customerID) {
			ids = append(ids, o.ID())
		}
	}
	return ids, nil
}

func (r memOrders) HasActiveForCart(_ context.Context, cartID kernel.UUID) (bool, error) {
	for _, o := range r.u.data().orders {
		if o.CartID().IsEqual(cartID) && o.Status().IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r memOrders) GetAllInStatusSince(_ context.Context, status order.Status, before time.Time) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range r.u.data().orders {
		if o.Status() == status && o.StatusChangedAt().Before(before) {
			cp := copyOrder(&o)
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memPayments struct{ u *memUoW }

func (r memPayments) Add(_ context.Context, p *payment.Payment) error {
	for _, existing := range r.u.data().payments {
		if p.OrderID() != nil && existing.OrderID() != nil && existing.OrderID().IsEqual(*p.OrderID()) {
			return errs.NewAlreadyExistsError("payment", "order "+p.OrderID().String())
		}
	}
	r.u.data().payments[p.ID().String()] = copyPayment(p)
	r.u.track(p)
	return nil
}

func (r memPayments) Update(_ context.Context, p *payment.Payment) error {
	stored, ok := r.u.data().payments[p.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("payment", p.ID().String())
	}
	if stored.Version() != p.Version() {
		return errs.NewConflictError("payment", p.ID().String())
	}
	p.AdvanceVersion()
	r.u.data().payments[p.ID().String()] = copyPayment(p)
	r.u.track(p)
	return nil
}

func (r memPayments) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	stored, ok := r.u.data().payments[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment", id.String())
	}
	out := copyPayment(&stored)
	return &out, nil
}

func (r memPayments) GetByOrder(_ context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	for _, p := range r.u.data().payments {
		if p.OrderID() != nil && p.OrderID().IsEqual(orderID) {
			out := copyPayment(&p)
			return &out, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment for order", orderID.String())
}

func (r memPayments) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	_, err := r.GetByOrder(ctx, orderID)
	return err == nil, nil
}

func (r memPayments) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.data().payments[id.String()]; !ok {
		return errs.NewObjectNotFoundError("payment", id.String())
	}
	delete(r.u.data().payments, id.String())
	return nil
}

func (r memPayments) DetachFromOrder(_ context.Context, orderID kernel.UUID) error {
	for key, p := range r.u.data().payments {
		if p.OrderID() != nil && p.OrderID().IsEqual(orderID) {
			p.DetachFromOrder()
			p.AdvanceVersion()
			r.u.data().payments[key] = p
		}
	}
	return nil
}

func (r memPayments) GetAllStaleProcessing(_ context.Context, before time.Time) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.u.data().payments {
		if p.Status() == payment.Processing && p.UpdatedAt().Before(before) {
			cp := copyPayment(&p)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt().Before(out[j].UpdatedAt()) })
	return out, nil
}

type memCarts struct{ u *memUoW }

func (r memCarts) Add(_ context.Context, c *cart.Cart) error {
	for _, existing := range r.u.data().carts {
		if existing.CustomerID().IsEqual(c.CustomerID()) {
			return errs.NewAlreadyExistsError("cart", "customer "+c.CustomerID().String())
		}
	}
	r.u.data().carts[c.ID().String()] = copyCart(c)
	return nil
}

func (r memCarts) Update(_ context.Context, c *cart.Cart) error {
	if _, ok := r.u.data().carts[c.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("cart", c.ID().String())
	}
	r.u.data().carts[c.ID().String()] = copyCart(c)
	return nil
}

func (r memCarts) Get(_ context.Context, id kernel.UUID) (*cart.Cart, error) {
	c, ok := r.u.data().carts[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cart", id.String())
	}
	return copyCart(c), nil
}

func (r memCarts) GetByCustomer(_ context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	for _, c := range r.u.data().carts {
		if c.CustomerID().IsEqual(customerID) {
			return copyCart(c), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("cart of customer", customerID.String())
}

func (r memCarts) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.data().carts[id.String()]; !ok {
		return errs.NewObjectNotFoundError("cart", id.String())
	}
	delete(r.u.data().carts, id.String())
	return nil
}

type memVendors struct{ u *memUoW }

func (r memVendors) Add(_ context.Context, v *vendor.Vendor) error {
	for _, existing := range r.u.data().vendors {
		if existing.Name() == v.Name() {
			return errs.NewAlreadyExistsError("vendor", v.Name())
		}
	}
	r.u.data().vendors[v.ID().String()] = copyVendor(v)
	return nil
}

func (r memVendors) Update(_ context.Context, v *vendor.Vendor) error {
	r.u.data().vendors[v.ID().String()] = copyVendor(v)
	return nil
}

func (r memVendors) Get(_ context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	v, ok := r.u.data().vendors[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("vendor", id.String())
	}
	return copyVendor(v), nil
}

func (r memVendors) GetByItem(_ context.Context, itemID kernel.UUID) (*vendor.Vendor, error) {
	for _, v := range r.u.data().vendors {
		if _, err := v.Item(itemID); err == nil {
			return copyVendor(v), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", itemID.String())
}

func (r memVendors) GetAllByItems(_ context.Context, itemIDs []kernel.UUID) ([]*vendor.Vendor, error) {
	var out []*vendor.Vendor
	for _, v := range r.u.data().vendors {
		for _, id := range itemIDs {
			if _, err := v.Item(id); err == nil {
				out = append(out, copyVendor(v))
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

type memCategories struct{ u *memUoW }

func (r memCategories) Add(_ context.Context, c *category.Category) error {
	r.u.data().categories[c.ID().String()] = *c
	return nil
}

func (r memCategories) Get(_ context.Context, id kernel.UUID) (*category.Category, error) {
	c, ok := r.u.data().categories[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("category", id.String())
	}
	return &c, nil
}

type memCustomers struct{ u *memUoW }

func (r memCustomers) Add(_ context.Context, c *customer.Customer) error {
	for _, existing := range r.u.data().customers {
		if existing.Email() == c.Email() {
			return errs.NewAlreadyExistsError("customer", c.Email())
		}
	}
	r.u.data().customers[c.ID().String()] = *c
	return nil
}

func (r memCustomers) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	c, ok := r.u.data().customers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id.String())
	}
	return &c, nil
}

func (r memCustomers) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.data().customers[id.String()]; !ok {
		return errs.NewObjectNotFoundError("customer", id.String())
	}
	delete(r.u.data().customers, id.String())
	return nil
}

type memDrivers struct{ u *memUoW }

func (r memDrivers) Add(_ context.Context, d *driver.Driver) error {
	r.u.data().drivers[d.ID().String()] = *d
	return nil
}

func (r memDrivers) Update(_ context.Context, d *driver.Driver) error {
	if _, ok := r.u.data().drivers[d.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("driver", d.ID().String())
	}
	r.u.data().drivers[d.ID().String()] = *d
	return nil
}

func (r memDrivers) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	d, ok := r.u.data().drivers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}
	return &d, nil
}

func (r memDrivers) GetAllAvailable(_ context.Context) ([]*driver.Driver, error) {
	var out []*driver.Driver
	for _, d := range r.u.data().drivers {
		if d.IsAvailable() {
			cp := d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}
