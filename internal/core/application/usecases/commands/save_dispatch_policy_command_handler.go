package commands

import (
	"context"
)

// SaveDispatchPolicyCommandHandler updates the dispatch policy singleton in
// place, seeding the default policy first when none exists yet.
type SaveDispatchPolicyCommandHandler struct {
	uowFactory PolicyUoWFactory
}

// NewSaveDispatchPolicyCommandHandler creates a handler for policy updates.
func NewSaveDispatchPolicyCommandHandler(uowFactory PolicyUoWFactory) SaveDispatchPolicyCommandHandler {
	return SaveDispatchPolicyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the policy update command. Invalid settings (timeout out
// of 1-60, threshold out of 0-5, negative money) are rejected by the
// aggregate and nothing is persisted.
func (h SaveDispatchPolicyCommandHandler) Handle(ctx context.Context, command SaveDispatchPolicyCommand) error {
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

	policyRepo := uow.PolicyRepository()

	aggregate, err := policyRepo.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	if err = aggregate.Amend(command.Params()); err != nil {
		return err
	}

	if err = policyRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
