package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand triggers the assignment of a delivery partner to a
// specific unassigned order. This command represents the core business
// operation of the assignment engine: matching an order with the least
// loaded eligible partner.
//
// Example:
//
//	cmd, err := NewAssignPartnerCommand(orderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoEligiblePartners) {
//	    log.Println("Order left unassigned, sweep will retry")
//	}
type AssignPartnerCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignPartnerCommand creates a command to assign a partner to the given order.
func NewAssignPartnerCommand(orderID kernel.UUID) (AssignPartnerCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignPartnerCommand{}, err
	}

	return AssignPartnerCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignPartnerCommandIsNotConstructed if validation fails.
func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}
