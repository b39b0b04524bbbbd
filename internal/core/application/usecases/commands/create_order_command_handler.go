package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler registers a placed order in the dispatch system.
// The tip is clamped to the dispatch policy (zero when tips are disabled,
// capped at the maximum otherwise) and a zero delivery fee falls back to the
// policy default. Assignment is a separate follow-up: a failure to assign
// never fails order intake.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	policyRepo := uow.PolicyRepository()

	dispatchPolicy, err := policyRepo.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	tip := kernel.ZeroMoney()
	if dispatchPolicy.TipEnabled() {
		tip = command.TipAmount().Min(dispatchPolicy.MaxTipAmount())
	}

	deliveryFee := command.DeliveryFee()
	if deliveryFee.IsZero() {
		deliveryFee = dispatchPolicy.DeliveryFee()
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.Total(), tip, deliveryFee)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
