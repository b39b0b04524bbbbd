package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents a partner collecting an accepted order for
// delivery.
type MarkPickedUpCommand struct {
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command for a partner to mark an order picked up.
func NewMarkPickedUpCommand(orderID, partnerID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return MarkPickedUpCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkPickedUpCommandIsNotConstructed if validation fails.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being picked up.
func (c MarkPickedUpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the partner picking up the order.
func (c MarkPickedUpCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
