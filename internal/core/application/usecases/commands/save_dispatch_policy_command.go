package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/pkg/guard"
)

var ErrSaveDispatchPolicyCommandIsNotConstructed = errors.New(
	"SaveDispatchPolicyCommand must be created via NewSaveDispatchPolicyCommand constructor",
)

// SaveDispatchPolicyCommand represents an admin replacing the dispatch
// policy settings in place. Range validation happens on the aggregate.
type SaveDispatchPolicyCommand struct {
	params policy.Params

	guard guard.ConstructorGuard
}

// NewSaveDispatchPolicyCommand creates a command to update the dispatch policy.
func NewSaveDispatchPolicyCommand(params policy.Params) SaveDispatchPolicyCommand {
	return SaveDispatchPolicyCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSaveDispatchPolicyCommandIsNotConstructed if validation fails.
func (c SaveDispatchPolicyCommand) Validate() error {
	return c.guard.Validate(ErrSaveDispatchPolicyCommandIsNotConstructed)
}

// Params returns the requested policy settings.
func (c SaveDispatchPolicyCommand) Params() policy.Params {
	return c.params
}
