package services

import (
	"errors"
	"sort"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// ErrPartnerNotFound is returned when no suitable partner is available for
// order dispatch. This occurs when either no candidates are provided or none
// of them pass the eligibility rules.
var ErrPartnerNotFound = errors.New("partner not found")

// Candidate pairs a partner with their current active load: the number of
// in-flight deliveries (assigned, accepted, or picked up) bound to them.
type Candidate struct {
	Partner    *partner.Partner
	ActiveLoad int
}

// PartnerDispatcher is a domain service responsible for selecting the optimal
// delivery partner for an order and executing the assignment.
//
// Selection balances load across the partner pool: among eligible partners
// the one with the fewest in-flight deliveries wins; ties go to the higher
// rated partner, and remaining ties break on partner ID so the outcome is
// deterministic for a given candidate set.
type PartnerDispatcher struct{}

// NewPartnerDispatcher creates a new PartnerDispatcher instance.
func NewPartnerDispatcher() PartnerDispatcher {
	return PartnerDispatcher{}
}

// Dispatch selects the best eligible partner for the order and assigns the
// order to them.
//
// Returns ErrPartnerNotFound when no candidate is eligible; the order is left
// untouched in that case.
func (d PartnerDispatcher) Dispatch(
	o *order.Order, candidates []Candidate, ratingThreshold float64, now time.Time,
) (*partner.Partner, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	best, err := d.findBestPartner(candidates, ratingThreshold)
	if err != nil {
		return nil, err
	}

	if err = o.Assign(best.ID(), best.Name(), now); err != nil {
		return nil, err
	}

	return best, nil
}

// findBestPartner filters the candidates by eligibility and orders them by
// active load ascending, rating descending, then ID.
func (d PartnerDispatcher) findBestPartner(
	candidates []Candidate, ratingThreshold float64,
) (*partner.Partner, error) {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Partner.Validate(); err != nil {
			return nil, err
		}
		if c.Partner.IsEligible(ratingThreshold) {
			eligible = append(eligible, c)
		}
	}

	if len(eligible) == 0 {
		return nil, ErrPartnerNotFound
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.ActiveLoad != b.ActiveLoad {
			return a.ActiveLoad < b.ActiveLoad
		}
		if a.Partner.Rating() != b.Partner.Rating() {
			return a.Partner.Rating() > b.Partner.Rating()
		}
		return a.Partner.ID().String() < b.Partner.ID().String()
	})

	return eligible[0].Partner, nil
}
