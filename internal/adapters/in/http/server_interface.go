package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Error is the body of every failed request.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Created carries the identifier of a new resource.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type NewCustomer struct {
	Name        string              `json:"name"`
	Email       openapi_types.Email `json:"email"`
	PhoneNumber *string             `json:"phoneNumber,omitempty"`
	Address     *string             `json:"address,omitempty"`
}

type NewCategory struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type NewVendor struct {
	Name       string `json:"name"`
	VendorType string `json:"vendorType"`
}

type NewItem struct {
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Price       decimal.Decimal     `json:"price"`
	CategoryId  *openapi_types.UUID `json:"categoryId,omitempty"`
}

type ItemPatch struct {
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available *bool            `json:"available,omitempty"`
}

type NewDriver struct {
	Name         string  `json:"name"`
	PhoneNumber  string  `json:"phoneNumber"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
}

type CartItemRequest struct {
	ItemId   openapi_types.UUID `json:"itemId"`
	Quantity int                `json:"quantity"`
}

type NewOrder struct {
	DeliveryAddress *string `json:"deliveryAddress,omitempty"`
}

type ListVendorsParams struct {
	VendorType    *string `form:"vendorType,omitempty"    json:"vendorType,omitempty"`
	AvailableOnly *bool   `form:"availableOnly,omitempty" json:"availableOnly,omitempty"`
}

type ChangeDriverStatusParams struct {
	Status string `form:"status" json:"status"`
}

type ListOrdersParams struct {
	Status     *string             `form:"status,omitempty"     json:"status,omitempty"`
	CustomerId *openapi_types.UUID `form:"customerId,omitempty" json:"customerId,omitempty"`
	DriverId   *openapi_types.UUID `form:"driverId,omitempty"   json:"driverId,omitempty"`
	Unassigned *bool               `form:"unassigned,omitempty" json:"unassigned,omitempty"`
	Limit      *int                `form:"limit,omitempty"      json:"limit,omitempty"`
}

// OrderStatusParams is shared by the status change and cancellation endpoints.
type OrderStatusParams struct {
	Status string `form:"status" json:"status"`
}

type AssignDriverParams struct {
	DriverId *openapi_types.UUID `form:"driverId,omitempty" json:"driverId,omitempty"`
}

type CreatePaymentParams struct {
	PaymentMethod string `form:"paymentMethod" json:"paymentMethod"`
}

type GetDashboardParams struct {
	TopItems     *int `form:"topItems,omitempty"     json:"topItems,omitempty"`
	RecentOrders *int `form:"recentOrders,omitempty" json:"recentOrders,omitempty"`
}

type GetRevenuePerDayParams struct {
	Days *int `form:"days,omitempty" json:"days,omitempty"`
}

type ExportOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface lists every operation of api/openapi.yaml.
type ServerInterface interface {
	// (POST /customers)
	RegisterCustomer(ctx echo.Context) error
	// (DELETE /customers/{customerId})
	DeleteCustomer(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /categories)
	CreateCategory(ctx echo.Context) error
	// (GET /vendors)
	ListVendors(ctx echo.Context, params ListVendorsParams) error
	// (POST /vendors)
	CreateVendor(ctx echo.Context) error
	// (POST /vendors/{vendorId}/items)
	AddVendorItem(ctx echo.Context, vendorId openapi_types.UUID) error
	// (PATCH /items/{itemId})
	UpdateItem(ctx echo.Context, itemId openapi_types.UUID) error
	// (POST /drivers)
	CreateDriver(ctx echo.Context) error
	// (PUT /drivers/{driverId}/status)
	ChangeDriverStatus(ctx echo.Context, driverId openapi_types.UUID, params ChangeDriverStatusParams) error
	// (GET /carts/customer/{customerId})
	GetCart(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /carts/customer/{customerId})
	CreateCart(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /carts/customer/{customerId}/add-item)
	AddCartItem(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /carts/customer/{customerId}/remove-item)
	RemoveCartItem(ctx echo.Context, customerId openapi_types.UUID) error
	// (DELETE /carts/customer/{customerId}/items/{itemId})
	DeleteCartLine(ctx echo.Context, customerId openapi_types.UUID, itemId openapi_types.UUID) error
	// (DELETE /carts/customer/{customerId}/items)
	ClearCart(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /carts/customer/{customerId}/checkout)
	CheckoutCart(ctx echo.Context, customerId openapi_types.UUID) error
	// (POST /carts/{cartId}/checkout)
	CheckoutCartById(ctx echo.Context, cartId openapi_types.UUID) error
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /orders/status-counts)
	CountOrdersByStatus(ctx echo.Context) error
	// (POST /orders/customer/{customerId}/driver/{driverId})
	CreateOrder(ctx echo.Context, customerId openapi_types.UUID, driverId openapi_types.UUID) error
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (DELETE /orders/{orderId})
	DeleteOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (PUT /orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID, params OrderStatusParams) error
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId openapi_types.UUID, params OrderStatusParams) error
	// (POST /orders/{orderId}/assign-driver)
	AssignDriver(ctx echo.Context, orderId openapi_types.UUID, params AssignDriverParams) error
	// (POST /orders/{orderId}/pickup)
	PickUpOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/out-for-delivery)
	StartDelivery(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/deliver)
	DeliverOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /orders/{orderId}/payment)
	GetOrderPayment(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /orders/{orderId}/payment)
	CreatePayment(ctx echo.Context, orderId openapi_types.UUID, params CreatePaymentParams) error
	// (GET /orders/{orderId}/track)
	TrackOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /payments/{paymentId})
	GetPayment(ctx echo.Context, paymentId openapi_types.UUID) error
	// (DELETE /payments/{paymentId})
	DeletePayment(ctx echo.Context, paymentId openapi_types.UUID) error
	// (POST /payments/{paymentId}/process)
	ProcessPayment(ctx echo.Context, paymentId openapi_types.UUID) error
	// (POST /payments/{paymentId}/refund)
	RefundPayment(ctx echo.Context, paymentId openapi_types.UUID) error
	// (POST /payments/{paymentId}/cancel)
	CancelPayment(ctx echo.Context, paymentId openapi_types.UUID) error
	// (GET /admin/dashboard)
	GetDashboard(ctx echo.Context, params GetDashboardParams) error
	// (GET /admin/revenue)
	GetRevenuePerDay(ctx echo.Context, params GetRevenuePerDayParams) error
	// (GET /admin/vendors/performance)
	GetVendorPerformance(ctx echo.Context) error
	// (GET /admin/orders/export)
	ExportOrders(ctx echo.Context, params ExportOrdersParams) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindQuery(ctx echo.Context, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// withID adapts operations whose only parameter is one path identifier.
func (w *ServerInterfaceWrapper) withID(
	name string,
	op func(echo.Context, openapi_types.UUID) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathUUID(ctx, name)
		if err != nil {
			return err
		}
		return op(ctx, id)
	}
}

func (w *ServerInterfaceWrapper) ListVendors(ctx echo.Context) error {
	var params ListVendorsParams
	if err := bindQuery(ctx, "vendorType", false, &params.VendorType); err != nil {
		return err
	}
	if err := bindQuery(ctx, "availableOnly", false, &params.AvailableOnly); err != nil {
		return err
	}
	return w.Handler.ListVendors(ctx, params)
}

func (w *ServerInterfaceWrapper) ChangeDriverStatus(ctx echo.Context) error {
	driverID, err := bindPathUUID(ctx, "driverId")
	if err != nil {
		return err
	}
	var params ChangeDriverStatusParams
	if err = bindQuery(ctx, "status", true, &params.Status); err != nil {
		return err
	}
	return w.Handler.ChangeDriverStatus(ctx, driverID, params)
}

func (w *ServerInterfaceWrapper) DeleteCartLine(ctx echo.Context) error {
	customerID, err := bindPathUUID(ctx, "customerId")
	if err != nil {
		return err
	}
	itemID, err := bindPathUUID(ctx, "itemId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteCartLine(ctx, customerID, itemID)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	for name, dest := range map[string]any{
		"status":     &params.Status,
		"customerId": &params.CustomerId,
		"driverId":   &params.DriverId,
		"unassigned": &params.Unassigned,
		"limit":      &params.Limit,
	} {
		if err := bindQuery(ctx, name, false, dest); err != nil {
			return err
		}
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	customerID, err := bindPathUUID(ctx, "customerId")
	if err != nil {
		return err
	}
	driverID, err := bindPathUUID(ctx, "driverId")
	if err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, customerID, driverID)
}

func (w *ServerInterfaceWrapper) orderStatus(
	op func(echo.Context, openapi_types.UUID, OrderStatusParams) error,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		orderID, err := bindPathUUID(ctx, "orderId")
		if err != nil {
			return err
		}
		var params OrderStatusParams
		if err = bindQuery(ctx, "status", true, &params.Status); err != nil {
			return err
		}
		return op(ctx, orderID, params)
	}
}

func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	var params AssignDriverParams
	if err = bindQuery(ctx, "driverId", false, &params.DriverId); err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, orderID, params)
}

func (w *ServerInterfaceWrapper) CreatePayment(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	var params CreatePaymentParams
	if err = bindQuery(ctx, "paymentMethod", true, &params.PaymentMethod); err != nil {
		return err
	}
	return w.Handler.CreatePayment(ctx, orderID, params)
}

func (w *ServerInterfaceWrapper) GetDashboard(ctx echo.Context) error {
	var params GetDashboardParams
	if err := bindQuery(ctx, "topItems", false, &params.TopItems); err != nil {
		return err
	}
	if err := bindQuery(ctx, "recentOrders", false, &params.RecentOrders); err != nil {
		return err
	}
	return w.Handler.GetDashboard(ctx, params)
}

func (w *ServerInterfaceWrapper) GetRevenuePerDay(ctx echo.Context) error {
	var params GetRevenuePerDayParams
	if err := bindQuery(ctx, "days", false, &params.Days); err != nil {
		return err
	}
	return w.Handler.GetRevenuePerDay(ctx, params)
}

func (w *ServerInterfaceWrapper) ExportOrders(ctx echo.Context) error {
	var params ExportOrdersParams
	if err := bindQuery(ctx, "status", false, &params.Status); err != nil {
		return err
	}
	return w.Handler.ExportOrders(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts si on router. Paths are relative to the /api prefix.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/customers", si.RegisterCustomer)
	router.DELETE("/customers/:customerId", w.withID("customerId", si.DeleteCustomer))

	router.POST("/categories", si.CreateCategory)
	router.GET("/vendors", w.ListVendors)
	router.POST("/vendors", si.CreateVendor)
	router.POST("/vendors/:vendorId/items", w.withID("vendorId", si.AddVendorItem))
	router.PATCH("/items/:itemId", w.withID("itemId", si.UpdateItem))

	router.POST("/drivers", si.CreateDriver)
	router.PUT("/drivers/:driverId/status", w.ChangeDriverStatus)

	router.GET("/carts/customer/:customerId", w.withID("customerId", si.GetCart))
	router.POST("/carts/customer/:customerId", w.withID("customerId", si.CreateCart))
	router.POST("/carts/customer/:customerId/add-item", w.withID("customerId", si.AddCartItem))
	router.POST("/carts/customer/:customerId/remove-item", w.withID("customerId", si.RemoveCartItem))
	router.DELETE("/carts/customer/:customerId/items/:itemId", w.DeleteCartLine)
	router.DELETE("/carts/customer/:customerId/items", w.withID("customerId", si.ClearCart))
	router.POST("/carts/customer/:customerId/checkout", w.withID("customerId", si.CheckoutCart))
	router.POST("/carts/:cartId/checkout", w.withID("cartId", si.CheckoutCartById))

	router.GET("/orders", w.ListOrders)
	router.GET("/orders/status-counts", si.CountOrdersByStatus)
	router.POST("/orders/customer/:customerId/driver/:driverId", w.CreateOrder)
	router.GET("/orders/:orderId", w.withID("orderId", si.GetOrder))
	router.DELETE("/orders/:orderId", w.withID("orderId", si.DeleteOrder))
	router.PUT("/orders/:orderId/status", w.orderStatus(si.ChangeOrderStatus))
	router.POST("/orders/:orderId/cancel", w.orderStatus(si.CancelOrder))
	router.POST("/orders/:orderId/assign-driver", w.AssignDriver)
	router.POST("/orders/:orderId/pickup", w.withID("orderId", si.PickUpOrder))
	router.POST("/orders/:orderId/out-for-delivery", w.withID("orderId", si.StartDelivery))
	router.POST("/orders/:orderId/deliver", w.withID("orderId", si.DeliverOrder))
	router.GET("/orders/:orderId/payment", w.withID("orderId", si.GetOrderPayment))
	router.POST("/orders/:orderId/payment", w.CreatePayment)
	router.GET("/orders/:orderId/track", w.withID("orderId", si.TrackOrder))

	router.GET("/payments/:paymentId", w.withID("paymentId", si.GetPayment))
	router.DELETE("/payments/:paymentId", w.withID("paymentId", si.DeletePayment))
	router.POST("/payments/:paymentId/process", w.withID("paymentId", si.ProcessPayment))
	router.POST("/payments/:paymentId/refund", w.withID("paymentId", si.RefundPayment))
	router.POST("/payments/:paymentId/cancel", w.withID("paymentId", si.CancelPayment))

	router.GET("/admin/dashboard", w.GetDashboard)
	router.GET("/admin/revenue", w.GetRevenuePerDay)
	router.GET("/admin/vendors/performance", si.GetVendorPerformance)
	router.GET("/admin/orders/export", w.ExportOrders)
}
