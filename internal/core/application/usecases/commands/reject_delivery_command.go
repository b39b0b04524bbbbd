package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRejectDeliveryCommandIsNotConstructed = errors.New(
	"RejectDeliveryCommand must be created via NewRejectDeliveryCommand constructor",
)

// RejectDeliveryCommand represents a partner declining an assignment before
// acceptance. The order returns to the unassigned pool.
type RejectDeliveryCommand struct {
	orderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectDeliveryCommand creates a command for a partner to reject an assigned order.
func NewRejectDeliveryCommand(orderID, partnerID kernel.UUID) (RejectDeliveryCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return RejectDeliveryCommand{}, err
	}

	return RejectDeliveryCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRejectDeliveryCommandIsNotConstructed if validation fails.
func (c RejectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being rejected.
func (c RejectDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the rejecting partner.
func (c RejectDeliveryCommand) PartnerID() kernel.UUID {
	return c.partnerID
}
