package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when the order to assign does not exist.
	ErrOrderNotFound = errors.New("no order found")

	// ErrOrderAlreadyAssigned is returned when the order picked up a partner
	// between the caller's read and this command's transaction.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned")

	// ErrAssignmentDisabled is returned when automatic assignment is switched
	// off by the dispatch policy. The order stays unassigned; this is an
	// expected outcome, not a fault.
	ErrAssignmentDisabled = errors.New("automatic assignment is disabled")

	// ErrNoEligiblePartners is returned when no partner passes the
	// eligibility rules. The order stays unassigned until the next sweep.
	ErrNoEligiblePartners = errors.New("no eligible partners found")
)

// AssignPartnerCommandHandler orchestrates the partner assignment process.
// Loads the order and the eligible partner pool, computes each partner's
// active load, and uses PartnerDispatcher to pick the least loaded candidate.
// The read-pick-write cycle runs inside a single transaction, and the order
// update is conditional on its delivery status, so two concurrent assignments
// of the same order cannot both commit.
//
// Example:
//
//	handler := NewAssignPartnerCommandHandler(uowFactory, nil)
//	cmd, _ := NewAssignPartnerCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrAssignmentDisabled):
//	    log.Println("Auto-assignment is off")
//	case errors.Is(err, ErrNoEligiblePartners):
//	    log.Println("All partners busy or below threshold")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
// A nil clock defaults to time.Now.
func NewAssignPartnerCommandHandler(uowFactory UoWFactory, now func() time.Time) AssignPartnerCommandHandler {
	if now == nil {
		now = time.Now
	}
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the partner assignment command.
// Returns ErrOrderNotFound, ErrOrderAlreadyAssigned, ErrAssignmentDisabled,
// or ErrNoEligiblePartners for the expected non-assignment outcomes.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, command AssignPartnerCommand) error {
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
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	if aggregate.Partner() != nil {
		return ErrOrderAlreadyAssigned
	}

	dispatchPolicy, err := policyRepo.GetOrCreate(ctx)
	if err != nil {
		return err
	}
	if !dispatchPolicy.AutoAssignmentEnabled() {
		return ErrAssignmentDisabled
	}

	partners, err := partnerRepo.GetAllEligible(ctx, dispatchPolicy.PartnerRatingThreshold())
	if err != nil {
		return err
	}
	if len(partners) == 0 {
		return ErrNoEligiblePartners
	}

	candidates := make([]services.Candidate, 0, len(partners))
	for _, p := range partners {
		load, err := orderRepo.CountActiveByPartner(ctx, p.ID())
		if err != nil {
			return err
		}
		candidates = append(candidates, services.Candidate{Partner: p, ActiveLoad: load})
	}

	_, err = services.NewPartnerDispatcher().Dispatch(
		aggregate, candidates, dispatchPolicy.PartnerRatingThreshold(), h.now())
	if errors.Is(err, services.ErrPartnerNotFound) {
		return ErrNoEligiblePartners
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
