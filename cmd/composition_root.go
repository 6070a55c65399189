package cmd

import (
	"context"
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/gateway"
	"fooddelivery/internal/adapters/out/notifier"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/eventhandlers"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	hub        *httpin.TrackingHub
	gateway    ports.PaymentGateway
	uowFactory *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the event handlers into the unit of work:
// payment mirroring and driver release run inside the transaction, websocket
// tracking and customer notifications after the commit.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	dispatcher := eventhandlers.NewDispatcher()
	dispatcher.Register(order.StatusChangedEventName, eventhandlers.NewPaymentMirror(logger))
	dispatcher.Register(order.StatusChangedEventName, eventhandlers.HandlerFunc(eventhandlers.DriverRelease))

	hub := httpin.NewTrackingHub(logger)
	fanOut := eventhandlers.NewFanOut(logger,
		hub,
		eventhandlers.NewCustomerNotifications(notifier.NewLogNotifier(logger), logger),
	)

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		hub:        hub,
		gateway:    gateway.NewSimulatedGateway(cfg.PaymentGatewayDelay, cfg.PaymentGatewayDeclineAbove, logger),
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, dispatcher, fanOut),
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoW() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoW() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(c.uow(), c.gateway, commands.GatewayPolicy{
		Timeout:    c.cfg.PaymentGatewayTimeout,
		MaxRetries: c.cfg.PaymentGatewayMaxRetries,
	}, c.logger)
}

func (c *CompositionRoot) CreateSweepCommandHandler() commands.SweepCommandHandler {
	return commands.NewSweepCommandHandler(c.uow(), c.logger)
}

// CreateHandlers builds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		RegisterCustomer:   commands.NewRegisterCustomerCommandHandler(c.uow()),
		DeleteCustomer:     commands.NewDeleteCustomerCommandHandler(c.uow()),
		CreateCategory:     commands.NewCreateCategoryCommandHandler(c.catalogUoW()),
		CreateVendor:       commands.NewCreateVendorCommandHandler(c.catalogUoW()),
		AddVendorItem:      commands.NewAddVendorItemCommandHandler(c.catalogUoW()),
		UpdateItem:         commands.NewUpdateItemCommandHandler(c.catalogUoW()),
		CreateDriver:       commands.NewCreateDriverCommandHandler(c.driverUoW()),
		ChangeDriverStatus: commands.NewChangeDriverStatusCommandHandler(c.driverUoW()),
		CreateCart:         commands.NewCreateCartCommandHandler(c.uow()),
		AddCartItem:        commands.NewAddCartItemCommandHandler(c.cartUoW()),
		ChangeCart:         commands.NewChangeCartCommandHandler(c.cartUoW()),
		CreateOrder:        commands.NewCreateOrderCommandHandler(c.uow()),
		ChangeOrderStatus:  commands.NewChangeOrderStatusCommandHandler(c.uow()),
		AssignDriver:       commands.NewAssignDriverCommandHandler(c.uow()),
		AdvanceDelivery:    commands.NewAdvanceDeliveryCommandHandler(c.uow()),
		DeleteOrder:        commands.NewDeleteOrderCommandHandler(c.uow()),
		CreatePayment:      commands.NewCreatePaymentCommandHandler(c.uow()),
		ProcessPayment:     c.CreateProcessPaymentCommandHandler(),
		PaymentAction:      commands.NewPaymentActionCommandHandler(c.uow(), c.logger),

		GetOrder:            queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:          queries.NewListOrdersQueryHandler(c.gormDB),
		CountOrdersByStatus: queries.NewCountOrdersByStatusQueryHandler(c.gormDB),
		GetCart:             queries.NewGetCartQueryHandler(c.gormDB),
		GetPayment:          queries.NewGetPaymentQueryHandler(c.gormDB),
		ListVendors:         queries.NewListVendorsQueryHandler(c.gormDB),
		Analytics:           queries.NewAnalyticsQueryHandler(c.gormDB),
	}
}

// CreateRouter builds the echo instance serving the REST API.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	server := httpin.NewServer(c.CreateHandlers(), c.hub, c.logger)
	return httpin.NewRouter(ctx, server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepCommandHandler(), jobs.Schedules{
		PaymentTimeout:    c.cfg.PaymentTimeoutSchedule,
		PaymentStaleAfter: c.cfg.PaymentStaleAfter,
		FailedOrderExpiry: c.cfg.FailedOrderExpirySchedule,
		FailedOrderMaxAge: c.cfg.FailedOrderExpireAfter,
	}, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}
