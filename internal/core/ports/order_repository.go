// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their delivery status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// conditional on the stored delivery status still matching the status
	// the aggregate was loaded with; a concurrent transition surfaces as a
	// version conflict error.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstUnassigned retrieves the oldest order with no partner assigned.
	// Used by the assignment sweep to drain the unassigned pool.
	GetFirstUnassigned(ctx context.Context) (*order.Order, error)

	// GetAssignedBefore retrieves all orders still awaiting acceptance whose
	// assignment was made at or before the given cutoff. Used by the timeout
	// sweep.
	GetAssignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// CountActiveByPartner returns the partner's active load: the number of
	// orders assigned, accepted, or picked up by them.
	CountActiveByPartner(ctx context.Context, partnerID kernel.UUID) (int, error)
}
