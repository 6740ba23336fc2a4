package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewEventPublisher(config.KafkaHost, config.KafkaOrderEventsTopic),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}
}

// Logger returns the application-wide structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateOfferOrdersCommandHandler() commands.OfferOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewOfferOrdersCommandHandler(f, c.config.AcceptanceWindowDuration(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, c.config.AcceptanceWindowDuration(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.settlementUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.settlementUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireOfferCommandHandler() commands.ExpireOfferCommandHandler {
	return commands.NewExpireOfferCommandHandler(c.settlementUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	return commands.NewExpireOffersCommandHandler(c.settlementUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportMilestoneCommandHandler() commands.ReportMilestoneCommandHandler {
	var f commands.MilestoneUoWFactory = FuncMilestoneUoWFactory(func() commands.MilestoneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportMilestoneCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRequeueOrderCommandHandler() commands.RequeueOrderCommandHandler {
	return commands.NewRequeueOrderCommandHandler(c.settlementUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnassignableOrdersQueryHandler() queries.GetUnassignableOrdersQueryHandler {
	return queries.NewGetUnassignableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) settlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncMilestoneUoWFactory func() commands.MilestoneUoW

func (f FuncMilestoneUoWFactory) Create() commands.MilestoneUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
