package ports

import (
	"context"

	"dispatch/internal/core/domain/model/policy"
)

// PolicyRepository defines the persistence contract for the dispatch policy
// singleton.
type PolicyRepository interface {
	// GetOrCreate retrieves the dispatch policy, seeding the default policy
	// when no record exists yet.
	GetOrCreate(ctx context.Context) (*policy.DispatchPolicy, error)

	// Save persists the policy's current settings.
	Save(ctx context.Context, aggregate *policy.DispatchPolicy) error
}
