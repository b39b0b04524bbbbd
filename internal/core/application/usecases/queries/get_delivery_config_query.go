package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryConfigQueryIsNotConstructed = errors.New(
	"GetDeliveryConfigQuery must be created via NewGetDeliveryConfigQuery constructor",
)

// GetDeliveryConfigQuery retrieves the current dispatch policy read model.
type GetDeliveryConfigQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryConfigQuery creates a query for the dispatch configuration.
func NewGetDeliveryConfigQuery() GetDeliveryConfigQuery {
	return GetDeliveryConfigQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryConfigQueryIsNotConstructed if validation fails.
func (q GetDeliveryConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryConfigQueryIsNotConstructed)
}

// GetDeliveryConfigQueryResponse is the dispatch policy as exposed to readers.
// When no policy row has been saved yet, the response carries the defaults.
type GetDeliveryConfigQueryResponse struct {
	AutoAssignmentEnabled    bool
	AssignmentTimeoutMinutes int
	PartnerRatingThreshold   float64
	PaymentType              string
	PaymentValue             kernel.Money
	TipEnabled               bool
	MaxTipAmount             kernel.Money
	DeliveryFee              kernel.Money
	MaxDeliveryRadiusKm      float64
}
