package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreatePartnerCommandIsNotConstructed = errors.New(
		"CreatePartnerCommand must be created via NewCreatePartnerCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreatePartnerCommand represents onboarding a delivery partner for an
// existing user account.
type CreatePartnerCommand struct {
	partnerID kernel.UUID
	userID    kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewCreatePartnerCommand creates a command to onboard a delivery partner.
func NewCreatePartnerCommand(partnerID, userID kernel.UUID, name string) (CreatePartnerCommand, error) {
	command := CreatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		partnerID.Validate(),
		userID.Validate(),
		command.setName(name),
	); err != nil {
		return CreatePartnerCommand{}, err
	}

	command.partnerID = partnerID
	command.userID = userID
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreatePartnerCommandIsNotConstructed if validation fails.
func (c CreatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartnerCommandIsNotConstructed)
}

// PartnerID returns the unique identifier for the new partner.
func (c CreatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// UserID returns the user account behind the partner.
func (c CreatePartnerCommand) UserID() kernel.UUID {
	return c.userID
}

// Name returns the partner's display name.
func (c CreatePartnerCommand) Name() string {
	return c.name
}

func (c *CreatePartnerCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}
