// Package http exposes the marketplace over REST with echo.
package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/vendor"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	// Command handlers
	RegisterCustomer   commands.RegisterCustomerCommandHandler
	DeleteCustomer     commands.DeleteCustomerCommandHandler
	CreateCategory     commands.CreateCategoryCommandHandler
	CreateVendor       commands.CreateVendorCommandHandler
	AddVendorItem      commands.AddVendorItemCommandHandler
	UpdateItem         commands.UpdateItemCommandHandler
	CreateDriver       commands.CreateDriverCommandHandler
	ChangeDriverStatus commands.ChangeDriverStatusCommandHandler
	CreateCart         commands.CreateCartCommandHandler
	AddCartItem        commands.AddCartItemCommandHandler
	ChangeCart         commands.ChangeCartCommandHandler
	CreateOrder        commands.CreateOrderCommandHandler
	ChangeOrderStatus  commands.ChangeOrderStatusCommandHandler
	AssignDriver       commands.AssignDriverCommandHandler
	AdvanceDelivery    commands.AdvanceDeliveryCommandHandler
	DeleteOrder        commands.DeleteOrderCommandHandler
	CreatePayment      commands.CreatePaymentCommandHandler
	ProcessPayment     commands.ProcessPaymentCommandHandler
	PaymentAction      commands.PaymentActionCommandHandler

	// Query handlers
	GetOrder            queries.GetOrderQueryHandler
	ListOrders          queries.ListOrdersQueryHandler
	CountOrdersByStatus queries.CountOrdersByStatusQueryHandler
	GetCart             queries.GetCartQueryHandler
	GetPayment          queries.GetPaymentQueryHandler
	ListVendors         queries.ListVendorsQueryHandler
	Analytics           queries.AnalyticsQueryHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h      Handlers
	hub    *TrackingHub
	logger *slog.Logger
	now    func() time.Time
}

func NewServer(h Handlers, hub *TrackingHub, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		hub:    hub,
		logger: logger.With("component", "http"),
		now:    time.Now,
	}
}

var _ ServerInterface = (*Server)(nil)

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RegisterCustomer handles POST /api/customers.
func (s *Server) RegisterCustomer(ctx echo.Context) error {
	var body NewCustomer
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	customerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterCustomerCommand(
		customerID, kernel.NewUUID(),
		body.Name, string(body.Email), deref(body.PhoneNumber), deref(body.Address),
	)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RegisterCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: customerID.Bytes()})
}

// DeleteCustomer handles DELETE /api/customers/{customerId}.
func (s *Server) DeleteCustomer(ctx echo.Context, customerId openapi_types.UUID) error {
	id, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteCustomerCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateCategory handles POST /api/categories.
func (s *Server) CreateCategory(ctx echo.Context) error {
	var body NewCategory
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	categoryID := kernel.NewUUID()
	cmd, err := commands.NewCreateCategoryCommand(categoryID, body.Name, deref(body.Description))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateCategory.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: categoryID.Bytes()})
}

// ListVendors handles GET /api/vendors.
func (s *Server) ListVendors(ctx echo.Context, params ListVendorsParams) error {
	var vendorType *vendor.Type
	if params.VendorType != nil {
		t, err := vendor.ParseType(*params.VendorType)
		if err != nil {
			return s.fail(ctx, err)
		}
		vendorType = &t
	}

	query, err := queries.NewListVendorsQuery(vendorType, params.AvailableOnly != nil && *params.AvailableOnly)
	if err != nil {
		return s.fail(ctx, err)
	}
	vendors, err := s.h.ListVendors.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, vendors)
}

// CreateVendor handles POST /api/vendors.
func (s *Server) CreateVendor(ctx echo.Context) error {
	var body NewVendor
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	vendorType, err := vendor.ParseType(body.VendorType)
	if err != nil {
		return s.fail(ctx, err)
	}
	vendorID := kernel.NewUUID()
	cmd, err := commands.NewCreateVendorCommand(vendorID, body.Name, vendorType)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateVendor.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: vendorID.Bytes()})
}

// AddVendorItem handles POST /api/vendors/{vendorId}/items.
func (s *Server) AddVendorItem(ctx echo.Context, vendorId openapi_types.UUID) error {
	var body NewItem
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	vendorID, err := toKernel(vendorId)
	if err != nil {
		return s.fail(ctx, err)
	}
	price, err := kernel.NewMoney(body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}
	var categoryID *kernel.UUID
	if body.CategoryId != nil {
		id, convErr := toKernel(*body.CategoryId)
		if convErr != nil {
			return s.fail(ctx, convErr)
		}
		categoryID = &id
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddVendorItemCommand(vendorID, itemID, body.Name, deref(body.Description), price, categoryID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddVendorItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: itemID.Bytes()})
}

// UpdateItem handles PATCH /api/items/{itemId}.
func (s *Server) UpdateItem(ctx echo.Context, itemId openapi_types.UUID) error {
	var body ItemPatch
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	itemID, err := toKernel(itemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	var price *kernel.Money
	if body.Price != nil {
		m, moneyErr := kernel.NewMoney(*body.Price)
		if moneyErr != nil {
			return s.fail(ctx, moneyErr)
		}
		price = &m
	}

	cmd, err := commands.NewUpdateItemCommand(itemID, price, body.Available)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.UpdateItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateDriver handles POST /api/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var body NewDriver
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, body.Name, body.PhoneNumber, deref(body.VehiclePlate))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{Id: driverID.Bytes()})
}

// ChangeDriverStatus handles PUT /api/drivers/{driverId}/status.
func (s *Server) ChangeDriverStatus(
	ctx echo.Context,
	driverId openapi_types.UUID,
	params ChangeDriverStatusParams,
) error {
	driverID, err := toKernel(driverId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := driver.ParseStatus(params.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewChangeDriverStatusCommand(driverID, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ChangeDriverStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCart handles GET /api/carts/customer/{customerId}.
func (s *Server) GetCart(ctx echo.Context, customerId openapi_types.UUID) error {
	customerID, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCart(ctx, customerID)
}

// CreateCart handles POST /api/carts/customer/{customerId}.
func (s *Server) CreateCart(ctx echo.Context, customerId openapi_types.UUID) error {
	customerID, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateCartCommand(kernel.NewUUID(), customerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCartWith(ctx, http.StatusCreated, customerID)
}

func (s *Server) respondCart(ctx echo.Context, customerID kernel.UUID) error {
	return s.respondCartWith(ctx, http.StatusOK, customerID)
}

func (s *Server) respondCartWith(ctx echo.Context, status int, customerID kernel.UUID) error {
	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.h.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, view)
}

// AddCartItem handles POST /api/carts/customer/{customerId}/add-item.
func (s *Server) AddCartItem(ctx echo.Context, customerId openapi_types.UUID) error {
	var body CartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	customerID, itemID, err := cartLineIDs(customerId, body.ItemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAddCartItemCommand(customerID, itemID, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AddCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCart(ctx, customerID)
}

// RemoveCartItem handles POST /api/carts/customer/{customerId}/remove-item.
func (s *Server) RemoveCartItem(ctx echo.Context, customerId openapi_types.UUID) error {
	var body CartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	customerID, itemID, err := cartLineIDs(customerId, body.ItemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.changeCart(ctx, cmd, customerID)
}

// DeleteCartLine handles DELETE /api/carts/customer/{customerId}/items/{itemId}.
func (s *Server) DeleteCartLine(ctx echo.Context, customerId openapi_types.UUID, itemId openapi_types.UUID) error {
	customerID, itemID, err := cartLineIDs(customerId, itemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteCartLineCommand(customerID, itemID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.changeCart(ctx, cmd, customerID)
}

// ClearCart handles DELETE /api/carts/customer/{customerId}/items.
func (s *Server) ClearCart(ctx echo.Context, customerId openapi_types.UUID) error {
	customerID, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.changeCart(ctx, cmd, customerID)
}

// CheckoutCart handles POST /api/carts/customer/{customerId}/checkout.
// It only empties the cart; orders are placed through CreateOrder.
func (s *Server) CheckoutCart(ctx echo.Context, customerId openapi_types.UUID) error {
	customerID, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewClearCartCommand(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ChangeCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CheckoutCartById handles POST /api/carts/{cartId}/checkout.
func (s *Server) CheckoutCartById(ctx echo.Context, cartId openapi_types.UUID) error {
	cartID, err := toKernel(cartId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCheckoutCartCommand(cartID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ChangeCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) changeCart(ctx echo.Context, cmd commands.ChangeCartCommand, customerID kernel.UUID) error {
	if err := s.h.ChangeCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondCart(ctx, customerID)
}

func cartLineIDs(customerId, itemId openapi_types.UUID) (kernel.UUID, kernel.UUID, error) {
	customerID, err := toKernel(customerId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	itemID, err := toKernel(itemId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return customerID, itemID, nil
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	filter := queries.OrderFilter{Unassigned: params.Unassigned != nil && *params.Unassigned}
	if params.Limit != nil {
		filter.Limit = *params.Limit
	}
	if params.Status != nil {
		status, err := order.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Status = &status
	}
	if params.CustomerId != nil {
		id, err := toKernel(*params.CustomerId)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.CustomerID = &id
	}
	if params.DriverId != nil {
		id, err := toKernel(*params.DriverId)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.DriverID = &id
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// CountOrdersByStatus handles GET /api/orders/status-counts.
func (s *Server) CountOrdersByStatus(ctx echo.Context) error {
	counts, err := s.h.CountOrdersByStatus.Handle(ctx.Request().Context(), queries.NewCountOrdersByStatusQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, counts)
}

// CreateOrder handles POST /api/orders/customer/{customerId}/driver/{driverId}.
// The body is optional; without a delivery address the customer's address is used.
func (s *Server) CreateOrder(ctx echo.Context, customerId openapi_types.UUID, driverId openapi_types.UUID) error {
	var body NewOrder
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return err
		}
	}

	customerID, err := toKernel(customerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	driverID, err := toKernel(driverId)
	if err != nil {
		return s.fail(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, driverID, deref(body.DeliveryAddress))
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) respondOrder(ctx echo.Context, status int, orderID kernel.UUID) error {
	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, view)
}

func (s *Server) loadOrder(ctx echo.Context, orderID kernel.UUID) (*queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return nil, err
	}
	return s.h.GetOrder.Handle(ctx.Request().Context(), query)
}

// DeleteOrder handles DELETE /api/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles PUT /api/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID, params OrderStatusParams) error {
	return s.moveOrder(ctx, orderId, params.Status, commands.NewChangeOrderStatusCommand)
}

// CancelOrder handles POST /api/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID, params OrderStatusParams) error {
	return s.moveOrder(ctx, orderId, params.Status, commands.NewCancelOrderCommand)
}

func (s *Server) moveOrder(
	ctx echo.Context,
	orderId openapi_types.UUID,
	statusName string,
	newCommand func(kernel.UUID, order.Status) (commands.ChangeOrderStatusCommand, error),
) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := order.ParseStatus(statusName)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := newCommand(orderID, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, orderID)
}

// AssignDriver handles POST /api/orders/{orderId}/assign-driver.
// Without driverId an available driver is picked.
func (s *Server) AssignDriver(ctx echo.Context, orderId openapi_types.UUID, params AssignDriverParams) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	var driverID *kernel.UUID
	if params.DriverId != nil {
		id, convErr := toKernel(*params.DriverId)
		if convErr != nil {
			return s.fail(ctx, convErr)
		}
		driverID = &id
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, orderID)
}

// PickUpOrder handles POST /api/orders/{orderId}/pickup.
func (s *Server) PickUpOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.advance(ctx, orderId, commands.PickUp)
}

// StartDelivery handles POST /api/orders/{orderId}/out-for-delivery.
func (s *Server) StartDelivery(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.advance(ctx, orderId, commands.StartDelivery)
}

// DeliverOrder handles POST /api/orders/{orderId}/deliver.
func (s *Server) DeliverOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	return s.advance(ctx, orderId, commands.Deliver)
}

func (s *Server) advance(ctx echo.Context, orderId openapi_types.UUID, step commands.DeliveryStep) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, step)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.AdvanceDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, orderID)
}

// GetOrderPayment handles GET /api/orders/{orderId}/payment.
func (s *Server) GetOrderPayment(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderPaymentQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondPayment(ctx, http.StatusOK, query)
}

// CreatePayment handles POST /api/orders/{orderId}/payment.
func (s *Server) CreatePayment(ctx echo.Context, orderId openapi_types.UUID, params CreatePaymentParams) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	method, err := payment.ParseMethod(params.PaymentMethod)
	if err != nil {
		return s.fail(ctx, err)
	}

	paymentID := kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentCommand(paymentID, orderID, method)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreatePayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondPaymentByID(ctx, http.StatusCreated, paymentID)
}

// TrackOrder handles GET /api/orders/{orderId}/track by upgrading to a websocket.
func (s *Server) TrackOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := toKernel(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.hub.Serve(ctx, orderID, TrackingMessage{
		Kind:      KindOrderSnapshot,
		OrderID:   view.ID,
		NewStatus: view.Status,
		At:        view.StatusChangedAt,
	})
}

// GetPayment handles GET /api/payments/{paymentId}.
func (s *Server) GetPayment(ctx echo.Context, paymentId openapi_types.UUID) error {
	paymentID, err := toKernel(paymentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondPaymentByID(ctx, http.StatusOK, paymentID)
}

// DeletePayment handles DELETE /api/payments/{paymentId}.
func (s *Server) DeletePayment(ctx echo.Context, paymentId openapi_types.UUID) error {
	if err := s.paymentAction(ctx, paymentId, commands.DeletePayment); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/payments/{paymentId}/process.
// Declines are not errors: the response carries the FAILED payment.
func (s *Server) ProcessPayment(ctx echo.Context, paymentId openapi_types.UUID) error {
	paymentID, err := toKernel(paymentId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewProcessPaymentCommand(paymentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if _, err = s.h.ProcessPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return s.respondPaymentByID(ctx, http.StatusOK, paymentID)
}

// RefundPayment handles POST /api/payments/{paymentId}/refund.
func (s *Server) RefundPayment(ctx echo.Context, paymentId openapi_types.UUID) error {
	if err := s.paymentAction(ctx, paymentId, commands.RefundPayment); err != nil {
		return s.fail(ctx, err)
	}
	return s.GetPayment(ctx, paymentId)
}

// CancelPayment handles POST /api/payments/{paymentId}/cancel.
func (s *Server) CancelPayment(ctx echo.Context, paymentId openapi_types.UUID) error {
	if err := s.paymentAction(ctx, paymentId, commands.CancelPayment); err != nil {
		return s.fail(ctx, err)
	}
	return s.GetPayment(ctx, paymentId)
}

func (s *Server) paymentAction(ctx echo.Context, paymentId openapi_types.UUID, action commands.PaymentAction) error {
	paymentID, err := toKernel(paymentId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPaymentActionCommand(paymentID, action)
	if err != nil {
		return err
	}
	return s.h.PaymentAction.Handle(ctx.Request().Context(), cmd)
}

func (s *Server) respondPaymentByID(ctx echo.Context, status int, paymentID kernel.UUID) error {
	query, err := queries.NewGetPaymentQuery(paymentID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.respondPayment(ctx, status, query)
}

func (s *Server) respondPayment(ctx echo.Context, status int, query queries.GetPaymentQuery) error {
	view, err := s.h.GetPayment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(status, view)
}

const recentOrdersOnDashboard = 10

// GetDashboard handles GET /api/admin/dashboard.
func (s *Server) GetDashboard(ctx echo.Context, params GetDashboardParams) error {
	topItems, recentOrders := 0, recentOrdersOnDashboard
	if params.TopItems != nil {
		topItems = *params.TopItems
	}
	if params.RecentOrders != nil {
		recentOrders = *params.RecentOrders
	}

	query, err := queries.NewDashboardQuery(topItems, recentOrders)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.h.Analytics.Dashboard(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// GetRevenuePerDay handles GET /api/admin/revenue.
func (s *Server) GetRevenuePerDay(ctx echo.Context, params GetRevenuePerDayParams) error {
	var days int
	if params.Days != nil {
		days = *params.Days
	}

	query, err := queries.NewRevenuePerDayQuery(days, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}
	revenue, err := s.h.Analytics.RevenuePerDay(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, revenue)
}

// GetVendorPerformance handles GET /api/admin/vendors/performance.
func (s *Server) GetVendorPerformance(ctx echo.Context) error {
	performance, err := s.h.Analytics.VendorPerformance(ctx.Request().Context(), queries.NewVendorPerformanceQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, performance)
}

// ExportOrders handles GET /api/admin/orders/export.
func (s *Server) ExportOrders(ctx echo.Context, params ExportOrdersParams) error {
	filter := queries.OrderFilter{Limit: queries.MaxListLimit}
	if params.Status != nil {
		status, err := order.ParseStatus(*params.Status)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.Status = &status
	}

	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}
	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	name := "orders-" + strings.ReplaceAll(s.now().UTC().Format(time.DateOnly), "-", "") + ".xlsx"
	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, xlsxContentType)
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	resp.WriteHeader(http.StatusOK)
	if err = WriteOrdersWorkbook(resp, orders); err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "failed to write orders workbook", "error", err)
	}
	return nil
}
