package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignPendingCommandIsNotConstructed = errors.New(
	"AssignPendingCommand must be created via NewAssignPendingCommand constructor",
)

// AssignPendingCommand asks the engine to pick one order from the assignment
// pool and dispatch a partner for it. It carries no payload; the handler
// selects the order.
type AssignPendingCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignPendingCommand creates a command to assign the next pool order.
func NewAssignPendingCommand() AssignPendingCommand {
	return AssignPendingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPendingCommandIsNotConstructed if validation fails.
func (c AssignPendingCommand) Validate() error {
	return c.guard.Validate(ErrAssignPendingCommandIsNotConstructed)
}
