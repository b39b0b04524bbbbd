// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPartnerDeliveriesQueryIsNotConstructed = errors.New(
	"GetPartnerDeliveriesQuery must be created via NewGetPartnerDeliveriesQuery constructor",
)

// GetPartnerDeliveriesQuery retrieves a partner's in-flight deliveries:
// orders assigned, accepted, or picked up by them, newest first.
type GetPartnerDeliveriesQuery struct {
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPartnerDeliveriesQuery creates a query for a partner's active deliveries.
func NewGetPartnerDeliveriesQuery(partnerID kernel.UUID) (GetPartnerDeliveriesQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerDeliveriesQuery{}, err
	}

	return GetPartnerDeliveriesQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPartnerDeliveriesQueryIsNotConstructed if validation fails.
func (q GetPartnerDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerDeliveriesQueryIsNotConstructed)
}

// PartnerID returns the partner whose deliveries are requested.
func (q GetPartnerDeliveriesQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// GetPartnerDeliveriesQueryResponse represents one in-flight delivery in the
// read model.
type GetPartnerDeliveriesQueryResponse struct {
	ID             kernel.UUID
	DeliveryStatus string
	Status         string
	Total          kernel.Money
	TipAmount      kernel.Money
	DeliveryFee    kernel.Money
	AssignedAt     *time.Time
	AcceptedAt     *time.Time
	PickedUpAt     *time.Time
}
