package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a partner confirming an assignment within
// the acceptance window.
type AcceptDeliveryCommand struct {
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a command for a partner to accept an assigned order.
func NewAcceptDeliveryCommand(orderID, partnerID kernel.UUID) (AcceptDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return AcceptDeliveryCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptDeliveryCommandIsNotConstructed if validation fails.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being accepted.
func (c AcceptDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the accepting partner.
func (c AcceptDeliveryCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
