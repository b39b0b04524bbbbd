package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// CheckTimeoutsCommandHandler releases assignments whose acceptance window
// expired: every order still in Assigned status past the policy's timeout is
// unassigned with a timeout tracking note and returned to the pool.
//
// The handler reports the released order IDs so the caller can trigger a
// reassignment attempt per order; the assignment sweep job covers any that
// remain unassigned.
type CheckTimeoutsCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewCheckTimeoutsCommandHandler creates a handler for the timeout sweep.
// A nil clock defaults to time.Now.
func NewCheckTimeoutsCommandHandler(uowFactory UoWFactory, now func() time.Time) CheckTimeoutsCommandHandler {
	if now == nil {
		now = time.Now
	}
	return CheckTimeoutsCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the timeout sweep and returns the IDs of released orders.
// An empty sweep is a normal outcome and returns an empty slice.
func (h CheckTimeoutsCommandHandler) Handle(ctx context.Context, command CheckTimeoutsCommand) ([]kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	policyRepo := uow.PolicyRepository()

	dispatchPolicy, err := policyRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	cutoff := now.Add(-time.Duration(dispatchPolicy.AssignmentTimeoutMinutes()) * time.Minute)

	stale, err := orderRepo.GetAssignedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	released := make([]kernel.UUID, 0, len(stale))
	for _, aggregate := range stale {
		if err = aggregate.Unassign(now); err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		released = append(released, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}
