package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery retrieves platform-wide dispatch counters for
// monitoring dashboards.
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDeliveryStatsQuery creates a query for dispatch statistics.
// This is a parameterless query.
func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryStatsQueryIsNotConstructed if validation fails.
func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

// GetDeliveryStatsQueryResponse carries the dispatch counters.
type GetDeliveryStatsQueryResponse struct {
	TotalPartners     int
	AvailablePartners int
	PendingOrders     int
	CompletedToday    int
}
