package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrDeliveryNotFound is returned for any lifecycle action whose guard fails:
// the order does not exist, is in the wrong state, or is assigned to a
// different partner. The cases are indistinguishable so callers cannot probe
// other partners' assignments.
var ErrDeliveryNotFound = errors.New("delivery not found or not permitted")

// AcceptDeliveryCommandHandler processes a partner's acceptance of an
// assigned order: moves the delivery to Accepted, stamps acceptedAt, and
// mirrors the customer status to Preparing.
type AcceptDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery acceptance.
// A nil clock defaults to time.Now.
func NewAcceptDeliveryCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) AcceptDeliveryCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the acceptance command.
// Returns ErrDeliveryNotFound when the order is missing, not in Assigned
// status, or owned by another partner.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, command AcceptDeliveryCommand) error {
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

	if err = aggregate.Accept(command.PartnerID(), h.now()); err != nil {
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
