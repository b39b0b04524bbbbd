package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand represents a partner switching in or out of
// the assignment pool.
type SetPartnerAvailabilityCommand struct {
	partnerID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetPartnerAvailabilityCommand creates a command to toggle a partner's availability.
func NewSetPartnerAvailabilityCommand(partnerID kernel.UUID, available bool) (SetPartnerAvailabilityCommand, error) {
	if err := partnerID.Validate(); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}

	return SetPartnerAvailabilityCommand{
		partnerID: partnerID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetPartnerAvailabilityCommandIsNotConstructed if validation fails.
func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner being toggled.
func (c SetPartnerAvailabilityCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Available returns the requested availability state.
func (c SetPartnerAvailabilityCommand) Available() bool {
	return c.available
}
