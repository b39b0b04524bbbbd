package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// ErrPartnerNotFound is returned when a command references a partner that
// does not exist.
var ErrPartnerNotFound = errors.New("no partner found")

// SetPartnerAvailabilityCommandHandler toggles a partner in or out of the
// assignment pool. In-flight deliveries are unaffected; the partner simply
// stops (or resumes) receiving new assignments.
type SetPartnerAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetPartnerAvailabilityCommandHandler(uowFactory PartnerUoWFactory) SetPartnerAvailabilityCommandHandler {
	return SetPartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle command.
// Returns ErrPartnerNotFound when the partner does not exist.
func (h SetPartnerAvailabilityCommandHandler) Handle(ctx context.Context, command SetPartnerAvailabilityCommand) error {
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

	partnerRepo := uow.PartnerRepository()

	aggregate, err := partnerRepo.Get(ctx, command.PartnerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPartnerNotFound
	}
	if err != nil {
		return err
	}

	aggregate.SetAvailability(command.Available())

	if err = partnerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
