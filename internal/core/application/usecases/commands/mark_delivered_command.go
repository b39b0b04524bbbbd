package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents a partner completing a delivery, with
// optional free-text delivery notes.
type MarkDeliveredCommand struct {
	orderID   kernel.UUID
	partnerID kernel.UUID
	notes     string

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command for a partner to complete a delivery.
// Notes may be empty; a default message is recorded in that case.
func NewMarkDeliveredCommand(orderID, partnerID kernel.UUID, notes string) (MarkDeliveredCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID:   orderID,
		partnerID: partnerID,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDeliveredCommandIsNotConstructed if validation fails.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the identifier of the delivering partner.
func (c MarkDeliveredCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Notes returns the optional delivery notes.
func (c MarkDeliveredCommand) Notes() string {
	return c.notes
}
