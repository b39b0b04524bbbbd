package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// RejectDeliveryCommandHandler processes a partner's rejection of an assigned
// order: clears the partner binding so the order re-enters the unassigned
// pool and records a rejection tracking note.
//
// The handler reports whether reassignment should follow; the caller triggers
// a single AssignPartnerCommand as a follow-up, with the assignment sweep job
// as the safety net. Reassignment is never recursive.
type RejectDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewRejectDeliveryCommandHandler creates a handler for delivery rejection.
// A nil clock defaults to time.Now.
func NewRejectDeliveryCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) RejectDeliveryCommandHandler {
	if now == nil {
		now = time.Now
	}
	return RejectDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the rejection command. On success it returns true: the
// order is back in the pool and a reassignment attempt should follow.
// Returns ErrDeliveryNotFound when the order is missing, not in Assigned
// status, or owned by another partner.
func (h RejectDeliveryCommandHandler) Handle(ctx context.Context, command RejectDeliveryCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, ErrDeliveryNotFound
	}
	if err != nil {
		return false, err
	}

	if err = aggregate.Reject(command.PartnerID(), h.now()); err != nil {
		if errors.Is(err, order.ErrNotAssignedToPartner) {
			return false, ErrDeliveryNotFound
		}
		return false, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
