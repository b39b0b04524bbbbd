package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// MarkDeliveredCommandHandler completes a delivery: moves the order to
// Delivered, computes the partner's payout from the dispatch policy, folds it
// into the order, and credits the partner's lifetime totals in one
// transaction. The payout is applied exactly once because the Delivered
// transition guards re-entry.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
// A nil clock defaults to time.Now.
func NewMarkDeliveredCommandHandler(uowFactory UoWFactory, now func() time.Time) MarkDeliveredCommandHandler {
	if now == nil {
		now = time.Now
	}
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the delivery completion command.
// Returns ErrDeliveryNotFound when the order is missing, not in PickedUp
// status, or owned by another partner.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, command MarkDeliveredCommand) error {
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
	partnerRepo := uow.PartnerRepository()
	policyRepo := uow.PolicyRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.MarkDelivered(command.PartnerID(), command.Notes(), h.now()); err != nil {
		if errors.Is(err, order.ErrNotAssignedToPartner) {
			return ErrDeliveryNotFound
		}
		return err
	}

	deliveryPartner, err := partnerRepo.Get(ctx, command.PartnerID())
	if err != nil {
		return err
	}

	dispatchPolicy, err := policyRepo.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	earnings := dispatchPolicy.EarningsFor(aggregate.Total(), aggregate.TipAmount())
	if err = aggregate.ApplyEarnings(earnings); err != nil {
		return err
	}
	if err = deliveryPartner.RecordDelivery(earnings); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = partnerRepo.Update(ctx, deliveryPartner); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
