package policyrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// aggregateTracker tracks aggregates loaded or persisted within a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

var _ ports.PolicyRepository = &GormPolicyRepository{}

// GormPolicyRepository implements dispatch policy persistence using GORM.
// The policy is a singleton row seeded with defaults on first access.
type GormPolicyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPolicyRepository creates a repository bound to the given database
// handle (plain connection or open transaction) and aggregate tracker.
func NewGormPolicyRepository(db *gorm.DB, tracker aggregateTracker) *GormPolicyRepository {
	return &GormPolicyRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreate returns the current dispatch policy, creating the default
// policy row when none exists yet.
func (r *GormPolicyRepository) GetOrCreate(ctx context.Context) (*policy.DispatchPolicy, error) {
	var dto PolicyDTO

	err := r.db.WithContext(ctx).First(&dto).Error
	if err == nil {
		return toDomain(dto)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	aggregate, err := policy.NewDefaultDispatchPolicy(kernel.NewUUID())
	if err != nil {
		return nil, err
	}

	dto = fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return aggregate, nil
}

// Save persists changes to the dispatch policy.
func (r *GormPolicyRepository) Save(ctx context.Context, aggregate *policy.DispatchPolicy) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&PolicyDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}
