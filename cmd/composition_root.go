package cmd

import (
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Handlers are cheap value
// structs, so each Create* call builds a fresh one over the shared factory.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateAssignPendingCommandHandler() commands.AssignPendingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPendingCommandHandler(f, c.CreateAssignPartnerCommandHandler())
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptDeliveryCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateRejectDeliveryCommandHandler() commands.RejectDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectDeliveryCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPickedUpCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckTimeoutsCommandHandler() commands.CheckTimeoutsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckTimeoutsCommandHandler(f, nil)
}

func (c *CompositionRoot) CreateCreatePartnerCommandHandler() commands.CreatePartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() commands.SetPartnerAvailabilityCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetPartnerAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateSaveDispatchPolicyCommandHandler() commands.SaveDispatchPolicyCommandHandler {
	var f commands.PolicyUoWFactory = FuncPolicyUoWFactory(func() commands.PolicyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveDispatchPolicyCommandHandler(f)
}

func (c *CompositionRoot) CreateGetPartnerDeliveriesQueryHandler() queries.GetPartnerDeliveriesQueryHandler {
	return queries.NewGetPartnerDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerEarningsQueryHandler() queries.GetPartnerEarningsQueryHandler {
	return queries.NewGetPartnerEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryStatsQueryHandler() queries.GetDeliveryStatsQueryHandler {
	return queries.NewGetDeliveryStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryConfigQueryHandler() queries.GetDeliveryConfigQueryHandler {
	return queries.NewGetDeliveryConfigQueryHandler(c.gormDB)
}

// CreateServerHandlers bundles every use case handler the HTTP server needs.
func (c *CompositionRoot) CreateServerHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		AssignPartner:      c.CreateAssignPartnerCommandHandler(),
		AcceptDelivery:     c.CreateAcceptDeliveryCommandHandler(),
		RejectDelivery:     c.CreateRejectDeliveryCommandHandler(),
		MarkPickedUp:       c.CreateMarkPickedUpCommandHandler(),
		MarkDelivered:      c.CreateMarkDeliveredCommandHandler(),
		RateDelivery:       c.CreateRateDeliveryCommandHandler(),
		CreatePartner:      c.CreateCreatePartnerCommandHandler(),
		SetAvailability:    c.CreateSetPartnerAvailabilityCommandHandler(),
		SaveDispatchPolicy: c.CreateSaveDispatchPolicyCommandHandler(),

		GetPartnerDeliveries: c.CreateGetPartnerDeliveriesQueryHandler(),
		GetPartnerEarnings:   c.CreateGetPartnerEarningsQueryHandler(),
		GetDeliveryStats:     c.CreateGetDeliveryStatsQueryHandler(),
		GetDeliveryConfig:    c.CreateGetDeliveryConfigQueryHandler(),
	}
}

// CreateJobManager wires the background sweeps.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCheckTimeoutsCommandHandler(),
		c.CreateAssignPartnerCommandHandler(),
		c.CreateAssignPendingCommandHandler(),
		logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncPolicyUoWFactory func() commands.PolicyUoW

func (f FuncPolicyUoWFactory) Create() commands.PolicyUoW {
	return f()
}
