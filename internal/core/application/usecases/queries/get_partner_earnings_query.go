package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPartnerEarningsQueryIsNotConstructed = errors.New(
	"GetPartnerEarningsQuery must be created via NewGetPartnerEarningsQuery constructor",
)

// GetPartnerEarningsQuery retrieves a partner's lifetime earnings summary and
// their recent completed deliveries.
type GetPartnerEarningsQuery struct {
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPartnerEarningsQuery creates a query for a partner's earnings.
func NewGetPartnerEarningsQuery(partnerID kernel.UUID) (GetPartnerEarningsQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetPartnerEarningsQuery{}, err
	}

	return GetPartnerEarningsQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPartnerEarningsQueryIsNotConstructed if validation fails.
func (q GetPartnerEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerEarningsQueryIsNotConstructed)
}

// PartnerID returns the partner whose earnings are requested.
func (q GetPartnerEarningsQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// PartnerEarningsDelivery represents one completed delivery's payout in the
// read model.
type PartnerEarningsDelivery struct {
	OrderID     kernel.UUID
	Earnings    kernel.Money
	TipAmount   kernel.Money
	CompletedAt *time.Time
}

// GetPartnerEarningsQueryResponse aggregates the partner's lifetime counters
// with their most recent completed deliveries.
type GetPartnerEarningsQueryResponse struct {
	PartnerID       kernel.UUID
	TotalDeliveries int
	TotalEarnings   kernel.Money
	Rating          float64
	TotalRatings    int
	Deliveries      []PartnerEarningsDelivery
}
