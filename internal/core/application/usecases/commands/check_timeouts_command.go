package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrCheckTimeoutsCommandIsNotConstructed = errors.New(
	"CheckTimeoutsCommand must be created via NewCheckTimeoutsCommand constructor",
)

// CheckTimeoutsCommand triggers a sweep for assignments that exceeded the
// acceptance window. Each stale assignment is released back to the unassigned
// pool. The sweep is idempotent: a second run over the same data finds
// nothing to release.
type CheckTimeoutsCommand struct {
	guard guard.ConstructorGuard
}

// NewCheckTimeoutsCommand creates a command to sweep timed-out assignments.
func NewCheckTimeoutsCommand() CheckTimeoutsCommand {
	return CheckTimeoutsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckTimeoutsCommandIsNotConstructed if validation fails.
func (c CheckTimeoutsCommand) Validate() error {
	return c.guard.Validate(ErrCheckTimeoutsCommandIsNotConstructed)
}
