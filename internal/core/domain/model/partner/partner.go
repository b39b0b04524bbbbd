package partner

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPartnerIsNotConstructed is returned when a Partner instance was not
// created through NewPartner or RestorePartner.
var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")

// initialRating is the rating every new partner starts with, before any
// customer has rated them.
const initialRating = 5.0

// Partner is the aggregate root for a delivery partner: their availability,
// their incrementally maintained rating, and their lifetime delivery counters.
//
// The rating is a weighted running mean over all received scores, kept to one
// decimal place. It is never recomputed from rating history.
type Partner struct {
	id     kernel.UUID
	userID kernel.UUID
	name   string

	isAvailable bool
	isActive    bool

	rating       float64
	totalRatings int

	totalDeliveries int
	totalEarnings   kernel.Money

	guard guard.ConstructorGuard
}

// NewPartner creates a delivery partner for the given user identity. New
// partners start available, active, with a rating of 5.0 and no ratings,
// deliveries, or earnings recorded.
func NewPartner(id, userID kernel.UUID, name string) (*Partner, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
	); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Partner{
		id:          id,
		userID:      userID,
		name:        name,
		isAvailable: true,
		isActive:    true,
		rating:      initialRating,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePartnerParams carries the persisted state of a partner for RestorePartner.
type RestorePartnerParams struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Name            string
	IsAvailable     bool
	IsActive        bool
	Rating          float64
	TotalRatings    int
	TotalDeliveries int
	TotalEarnings   kernel.Money
}

// RestorePartner reconstructs a partner aggregate from persistent storage.
func RestorePartner(params RestorePartnerParams) (*Partner, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.UserID.Validate(),
		params.TotalEarnings.Validate(),
	); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if params.Rating < 0 || params.Rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", params.Rating, 0, 5)
	}
	if params.TotalRatings < 0 {
		return nil, errs.NewValueIsInvalidError("totalRatings")
	}
	if params.TotalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("totalDeliveries")
	}

	return &Partner{
		id:              params.ID,
		userID:          params.UserID,
		name:            params.Name,
		isAvailable:     params.IsAvailable,
		isActive:        params.IsActive,
		rating:          params.Rating,
		totalRatings:    params.TotalRatings,
		totalDeliveries: params.TotalDeliveries,
		totalEarnings:   params.TotalEarnings,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Partner was constructed through NewPartner or RestorePartner.
func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by identity.
func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// UserID returns the identity of the user account behind the partner.
func (p *Partner) UserID() kernel.UUID {
	return p.userID
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// IsAvailable reports whether the partner is currently taking assignments.
func (p *Partner) IsAvailable() bool {
	return p.isAvailable
}

// IsActive reports whether the partner's account is active.
func (p *Partner) IsActive() bool {
	return p.isActive
}

// Rating returns the partner's running mean rating, one decimal place.
func (p *Partner) Rating() float64 {
	return p.rating
}

// TotalRatings returns how many customer ratings the partner has received.
func (p *Partner) TotalRatings() int {
	return p.totalRatings
}

// TotalDeliveries returns the partner's lifetime completed delivery count.
func (p *Partner) TotalDeliveries() int {
	return p.totalDeliveries
}

// TotalEarnings returns the partner's accumulated lifetime earnings.
func (p *Partner) TotalEarnings() kernel.Money {
	return p.totalEarnings
}

// IsEligible reports whether the partner may receive new assignments: they
// must be available, active, and rated at or above the given threshold.
func (p *Partner) IsEligible(ratingThreshold float64) bool {
	return p.isAvailable && p.isActive && p.rating >= ratingThreshold
}

// ApplyRating folds a new 1-5 customer score into the running mean and
// increments the rating count. The result is rounded to one decimal place.
func (p *Partner) ApplyRating(score int) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("rating score", score, 1, 5)
	}

	total := p.rating*float64(p.totalRatings) + float64(score)
	p.totalRatings++
	p.rating = math.Round(total/float64(p.totalRatings)*10) / 10
	return nil
}

// RecordDelivery adds a completed delivery's payout to the partner's lifetime
// totals.
func (p *Partner) RecordDelivery(earnings kernel.Money) error {
	if err := earnings.Validate(); err != nil {
		return err
	}

	p.totalDeliveries++
	p.totalEarnings = p.totalEarnings.Add(earnings)
	return nil
}

// SetAvailability switches the partner in or out of the assignment pool.
func (p *Partner) SetAvailability(available bool) {
	p.isAvailable = available
}

// SetActive switches the partner's account active state.
func (p *Partner) SetActive(active bool) {
	p.isActive = active
}
