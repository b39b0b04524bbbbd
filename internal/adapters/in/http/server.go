// Package http exposes the dispatch use cases over a REST API.
// It coordinates between HTTP handlers and application use cases: request
// bodies are bound and validated here, domain outcomes are mapped to status
// codes, and nothing below this layer knows about echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Handlers groups the command and query handlers the server dispatches to.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	AssignPartner      commands.AssignPartnerCommandHandler
	AcceptDelivery     commands.AcceptDeliveryCommandHandler
	RejectDelivery     commands.RejectDeliveryCommandHandler
	MarkPickedUp       commands.MarkPickedUpCommandHandler
	MarkDelivered      commands.MarkDeliveredCommandHandler
	RateDelivery       commands.RateDeliveryCommandHandler
	CreatePartner      commands.CreatePartnerCommandHandler
	SetAvailability    commands.SetPartnerAvailabilityCommandHandler
	SaveDispatchPolicy commands.SaveDispatchPolicyCommandHandler

	GetPartnerDeliveries queries.GetPartnerDeliveriesQueryHandler
	GetPartnerEarnings   queries.GetPartnerEarningsQueryHandler
	GetDeliveryStats     queries.GetDeliveryStatsQueryHandler
	GetDeliveryConfig    queries.GetDeliveryConfigQueryHandler
}

// Server handles HTTP requests for the dispatch API.
type Server struct {
	handlers Handlers
	validate *validator.Validate
}

// NewServer creates an HTTP server wired to the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{
		handlers: handlers,
		validate: validator.New(),
	}
}

// RegisterRoutes attaches all dispatch API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderId/assign", s.AssignOrder)
	api.POST("/orders/:orderId/rate", s.RateDelivery)

	api.POST("/partners", s.CreatePartner)
	api.PUT("/partners/:partnerId/availability", s.SetAvailability)
	api.POST("/partners/:partnerId/deliveries/:orderId/accept", s.AcceptDelivery)
	api.POST("/partners/:partnerId/deliveries/:orderId/reject", s.RejectDelivery)
	api.PUT("/partners/:partnerId/deliveries/:orderId/status", s.UpdateDeliveryStatus)
	api.GET("/partners/:partnerId/deliveries", s.GetDeliveries)
	api.GET("/partners/:partnerId/earnings", s.GetEarnings)

	api.GET("/delivery/stats", s.GetStats)
	api.GET("/delivery-config", s.GetConfig)
	api.PUT("/delivery-config", s.PutConfig)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - creates an order and immediately
// tries to assign a delivery partner. A failed assignment attempt does not
// fail the request: the order stays in the pool and the sweep picks it up.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	total, err := kernel.NewMoneyFromFloat(request.Total)
	if err != nil {
		return badRequest(ctx, err)
	}
	tipAmount, err := kernel.NewMoneyFromFloat(request.TipAmount)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryFee, err := kernel.NewMoneyFromFloat(request.DeliveryFee)
	if err != nil {
		return badRequest(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, total, tipAmount, deliveryFee)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create order")
	}

	assigned := s.tryAssign(ctx.Request().Context(), orderID)

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:  orderID.String(),
		Assigned: assigned,
	})
}

// AssignOrder handles POST /api/v1/orders/:orderId/assign - explicitly asks
// the engine to pick a partner for a pool order. Expected non-assignment
// outcomes return 200 with assigned:false and a reason.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignPartnerCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	err = s.handlers.AssignPartner.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, AssignResponse{Assigned: true})
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "No order found")
	case errors.Is(err, commands.ErrOrderAlreadyAssigned):
		return respondError(ctx, http.StatusConflict, "Order is already assigned")
	case errors.Is(err, commands.ErrAssignmentDisabled),
		errors.Is(err, commands.ErrNoEligiblePartners):
		return ctx.JSON(http.StatusOK, AssignResponse{Assigned: false, Reason: err.Error()})
	default:
		return internalError(ctx, "Failed to assign order")
	}
}

// RateDelivery handles POST /api/v1/orders/:orderId/rate.
func (s *Server) RateDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request RateDeliveryRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRateDeliveryCommand(orderID, request.Rating, request.Review)
	if err != nil {
		return badRequest(ctx, err)
	}

	err = s.handlers.RateDelivery.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrDeliveryNotFound):
		return notFound(ctx, "Delivery not found")
	case errors.Is(err, commands.ErrAlreadyRated):
		return respondError(ctx, http.StatusConflict, "Delivery is already rated")
	default:
		return internalError(ctx, "Failed to rate delivery")
	}
}

// CreatePartner handles POST /api/v1/partners - registers a delivery partner.
func (s *Server) CreatePartner(ctx echo.Context) error {
	var request CreatePartnerRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return badRequest(ctx, err)
	}

	partnerID := kernel.NewUUID()
	cmd, err := commands.NewCreatePartnerCommand(partnerID, userID, request.Name)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.handlers.CreatePartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create partner")
	}

	return ctx.JSON(http.StatusCreated, CreatePartnerResponse{PartnerID: partnerID.String()})
}

// SetAvailability handles PUT /api/v1/partners/:partnerId/availability.
func (s *Server) SetAvailability(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var request SetAvailabilityRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerID, *request.IsAvailable)
	if err != nil {
		return badRequest(ctx, err)
	}

	err = s.handlers.SetAvailability.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrPartnerNotFound):
		return notFound(ctx, "No partner found")
	default:
		return internalError(ctx, "Failed to update availability")
	}
}

// AcceptDelivery handles POST /api/v1/partners/:partnerId/deliveries/:orderId/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	orderID, partnerID, err := deliveryParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(orderID, partnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	err = s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrDeliveryNotFound):
		return notFound(ctx, "Delivery not found")
	default:
		return internalError(ctx, "Failed to accept delivery")
	}
}

// RejectDelivery handles POST /api/v1/partners/:partnerId/deliveries/:orderId/reject.
// The order returns to the pool; reassignment is attempted in the background
// so the rejecting partner does not wait on it.
func (s *Server) RejectDelivery(ctx echo.Context) error {
	orderID, partnerID, err := deliveryParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRejectDeliveryCommand(orderID, partnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	reassigned, err := s.handlers.RejectDelivery.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrDeliveryNotFound):
		return notFound(ctx, "Delivery not found")
	default:
		return internalError(ctx, "Failed to reject delivery")
	}

	if reassigned {
		logger := ctx.Logger()
		go func() {
			if !s.tryAssign(context.Background(), orderID) {
				logger.Warnf("no partner picked up rejected order %s", orderID)
			}
		}()
	}

	return ctx.JSON(http.StatusOK, RejectResponse{Reassigned: reassigned})
}

// UpdateDeliveryStatus handles PUT /api/v1/partners/:partnerId/deliveries/:orderId/status.
// Accepted transitions are picked_up and delivered.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, partnerID, err := deliveryParams(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var request UpdateDeliveryStatusRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	switch request.Status {
	case "picked_up":
		var cmd commands.MarkPickedUpCommand
		if cmd, err = commands.NewMarkPickedUpCommand(orderID, partnerID); err != nil {
			return badRequest(ctx, err)
		}
		err = s.handlers.MarkPickedUp.Handle(ctx.Request().Context(), cmd)
	case "delivered":
		var cmd commands.MarkDeliveredCommand
		if cmd, err = commands.NewMarkDeliveredCommand(orderID, partnerID, request.Notes); err != nil {
			return badRequest(ctx, err)
		}
		err = s.handlers.MarkDelivered.Handle(ctx.Request().Context(), cmd)
	}

	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrDeliveryNotFound):
		return notFound(ctx, "Delivery not found")
	default:
		return internalError(ctx, "Failed to update delivery status")
	}
}

// GetDeliveries handles GET /api/v1/partners/:partnerId/deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetPartnerDeliveriesQuery(partnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	deliveries, err := s.handlers.GetPartnerDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve deliveries")
	}

	response := make([]DeliveryResponse, len(deliveries))
	for i, delivery := range deliveries {
		response[i] = DeliveryResponse{
			OrderID:        delivery.ID.String(),
			DeliveryStatus: delivery.DeliveryStatus,
			Status:         delivery.Status,
			Total:          delivery.Total.Float64(),
			TipAmount:      delivery.TipAmount.Float64(),
			DeliveryFee:    delivery.DeliveryFee.Float64(),
			AssignedAt:     formatTime(delivery.AssignedAt),
			AcceptedAt:     formatTime(delivery.AcceptedAt),
			PickedUpAt:     formatTime(delivery.PickedUpAt),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetEarnings handles GET /api/v1/partners/:partnerId/earnings.
func (s *Server) GetEarnings(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("partnerId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetPartnerEarningsQuery(partnerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	earnings, err := s.handlers.GetPartnerEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return notFound(ctx, "No partner found")
		}

		return internalError(ctx, "Failed to retrieve earnings")
	}

	deliveries := make([]EarningsDeliveryResponse, len(earnings.Deliveries))
	for i, delivery := range earnings.Deliveries {
		deliveries[i] = EarningsDeliveryResponse{
			OrderID:     delivery.OrderID.String(),
			Earnings:    delivery.Earnings.Float64(),
			TipAmount:   delivery.TipAmount.Float64(),
			CompletedAt: formatTime(delivery.CompletedAt),
		}
	}

	return ctx.JSON(http.StatusOK, EarningsResponse{
		PartnerID:       earnings.PartnerID.String(),
		TotalDeliveries: earnings.TotalDeliveries,
		TotalEarnings:   earnings.TotalEarnings.Float64(),
		Rating:          earnings.Rating,
		TotalRatings:    earnings.TotalRatings,
		Deliveries:      deliveries,
	})
}

// GetStats handles GET /api/v1/delivery/stats.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.handlers.GetDeliveryStats.Handle(
		ctx.Request().Context(), queries.NewGetDeliveryStatsQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve stats")
	}

	return ctx.JSON(http.StatusOK, StatsResponse{
		TotalPartners:     stats.TotalPartners,
		AvailablePartners: stats.AvailablePartners,
		PendingOrders:     stats.PendingOrders,
		CompletedToday:    stats.CompletedToday,
	})
}

// GetConfig handles GET /api/v1/delivery-config.
func (s *Server) GetConfig(ctx echo.Context) error {
	config, err := s.handlers.GetDeliveryConfig.Handle(
		ctx.Request().Context(), queries.NewGetDeliveryConfigQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve configuration")
	}

	return ctx.JSON(http.StatusOK, DeliveryConfigDTO{
		AutoAssignmentEnabled:    &config.AutoAssignmentEnabled,
		AssignmentTimeoutMinutes: config.AssignmentTimeoutMinutes,
		PartnerRatingThreshold:   config.PartnerRatingThreshold,
		PaymentType:              config.PaymentType,
		PaymentValue:             config.PaymentValue.Float64(),
		TipEnabled:               &config.TipEnabled,
		MaxTipAmount:             config.MaxTipAmount.Float64(),
		DeliveryFee:              config.DeliveryFee.Float64(),
		MaxDeliveryRadiusKm:      config.MaxDeliveryRadiusKm,
	})
}

// PutConfig handles PUT /api/v1/delivery-config - amends the dispatch policy.
func (s *Server) PutConfig(ctx echo.Context) error {
	var request DeliveryConfigDTO
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err)
	}

	paymentType, err := policy.PaymentTypeFromString(request.PaymentType)
	if err != nil {
		return badRequest(ctx, err)
	}

	paymentValue, err := kernel.NewMoneyFromFloat(request.PaymentValue)
	if err != nil {
		return badRequest(ctx, err)
	}
	maxTipAmount, err := kernel.NewMoneyFromFloat(request.MaxTipAmount)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryFee, err := kernel.NewMoneyFromFloat(request.DeliveryFee)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd := commands.NewSaveDispatchPolicyCommand(policy.Params{
		AutoAssignmentEnabled:    *request.AutoAssignmentEnabled,
		AssignmentTimeoutMinutes: request.AssignmentTimeoutMinutes,
		PartnerRatingThreshold:   request.PartnerRatingThreshold,
		PaymentType:              paymentType,
		PaymentValue:             paymentValue,
		TipEnabled:               *request.TipEnabled,
		MaxTipAmount:             maxTipAmount,
		DeliveryFee:              deliveryFee,
		MaxDeliveryRadiusKm:      request.MaxDeliveryRadiusKm,
	})

	if err := s.handlers.SaveDispatchPolicy.Handle(ctx.Request().Context(), cmd); err != nil {
		var outOfRangeErr *errs.ValueIsOutOfRangeError
		var invalidErr *errs.ValueIsInvalidError
		if errors.As(err, &outOfRangeErr) || errors.As(err, &invalidErr) {
			return badRequest(ctx, err)
		}

		return internalError(ctx, "Failed to save configuration")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// tryAssign attempts an assignment and reports whether a partner was picked.
// Expected non-assignment outcomes are not errors.
func (s *Server) tryAssign(ctx context.Context, orderID kernel.UUID) bool {
	cmd, err := commands.NewAssignPartnerCommand(orderID)
	if err != nil {
		return false
	}

	return s.handlers.AssignPartner.Handle(ctx, cmd) == nil
}

func (s *Server) bind(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return err
	}

	return s.validate.Struct(request)
}

func deliveryParams(ctx echo.Context) (orderID, partnerID kernel.UUID, err error) {
	if orderID, err = kernel.UUIDFromString(ctx.Param("orderId")); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	if partnerID, err = kernel.UUIDFromString(ctx.Param("partnerId")); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}

	return orderID, partnerID, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := t.Format(time.RFC3339)
	return &formatted
}

func badRequest(ctx echo.Context, err error) error {
	return respondError(ctx, http.StatusBadRequest, err.Error())
}

func notFound(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusNotFound, message)
}

func internalError(ctx echo.Context, message string) error {
	return respondError(ctx, http.StatusInternalServerError, message)
}

func respondError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
