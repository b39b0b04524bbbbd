package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// AssignPendingCommandHandler picks the next order from the assignment pool
// and runs the regular assignment flow on it. It backs the periodic sweep
// that catches orders left unassigned by rejections, timeouts, or earlier
// failed attempts.
type AssignPendingCommandHandler struct {
	uowFactory    OrderUoWFactory
	assignHandler AssignPartnerCommandHandler
}

// NewAssignPendingCommandHandler creates a handler for pool assignment sweeps.
func NewAssignPendingCommandHandler(
	uowFactory OrderUoWFactory,
	assignHandler AssignPartnerCommandHandler,
) AssignPendingCommandHandler {
	return AssignPendingCommandHandler{
		uowFactory:    uowFactory,
		assignHandler: assignHandler,
	}
}

// Handle finds the next unassigned order and dispatches a partner for it.
// Returns ErrOrderNotFound when the pool is empty, and forwards the
// assignment outcome otherwise.
func (h AssignPendingCommandHandler) Handle(ctx context.Context, command AssignPendingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	// The read runs outside a transaction; the assignment itself re-reads
	// the order transactionally and tolerates it having been taken meanwhile.
	uow := h.uowFactory.Create()

	pending, err := uow.OrderRepository().GetFirstUnassigned(ctx)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ErrOrderNotFound
		}

		return err
	}

	assignCmd, err := NewAssignPartnerCommand(pending.ID())
	if err != nil {
		return err
	}

	return h.assignHandler.Handle(ctx, assignCmd)
}
