package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrAlreadyRated is returned when a delivery that already carries a rating
// is rated again.
var ErrAlreadyRated = order.ErrAlreadyRated

// RateDeliveryCommandHandler records a customer's rating on a delivered
// order and folds the score into the partner's running mean, in one
// transaction.
type RateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for delivery rating.
func NewRateDeliveryCommandHandler(uowFactory UoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
// Returns ErrDeliveryNotFound when the order is missing or not delivered
// yet, and ErrAlreadyRated on a second rating attempt.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, command RateDeliveryCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrDeliveryNotFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.Rate(command.Rating(), command.Review()); err != nil {
		if errors.Is(err, order.ErrNotDelivered) {
			return ErrDeliveryNotFound
		}
		return err
	}

	// A delivered order keeps its partner binding.
	deliveryPartner, err := partnerRepo.Get(ctx, *aggregate.Partner())
	if err != nil {
		return err
	}

	if err = deliveryPartner.ApplyRating(command.Rating()); err != nil {
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
