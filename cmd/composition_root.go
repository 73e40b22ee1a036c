package cmd

import (
	"log/slog"

	"freight/internal/adapters/out/notify"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateConsolidationCommandHandler() commands.CreateConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsolidationCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceConsolidationStatusCommandHandler() commands.AdvanceConsolidationStatusCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceConsolidationStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGenerateBulkInvoicesCommandHandler() commands.GenerateBulkInvoicesCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateBulkInvoicesCommandHandler(f, c.configs.BillingCurrency, c.logger)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	notifier := notify.NewLogNotifier(c.logger)
	return commands.NewDispatchNotificationsCommandHandler(f, notifier, c.logger)
}

func (c *CompositionRoot) CreateResolveTariffQueryHandler() queries.ResolveTariffQueryHandler {
	return queries.NewResolveTariffQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsolidationHistoryQueryHandler() queries.GetConsolidationHistoryQueryHandler {
	return queries.NewGetConsolidationHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchNotificationsCommandHandler(),
		c.configs.NotificationCronSpec,
		c.logger,
	)
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
