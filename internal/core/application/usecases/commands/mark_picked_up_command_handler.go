package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// MarkPickedUpCommandHandler processes a pickup: moves the delivery to
// PickedUp, stamps pickedUpAt, and mirrors the customer status to
// Out for Delivery.
type MarkPickedUpCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewMarkPickedUpCommandHandler creates a handler for order pickup.
// A nil clock defaults to time.Now.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) MarkPickedUpCommandHandler {
	if now == nil {
		now = time.Now
	}
	return MarkPickedUpCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the pickup command.
// Returns ErrDeliveryNotFound when the order is missing, not in Accepted
// status, or owned by another partner.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, command MarkPickedUpCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.MarkPickedUp(command.PartnerID(), h.now()); err != nil {
		if errors.Is(err, order.ErrNotAssignedToPartner) {
			return ErrDeliveryNotFound
		}
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
