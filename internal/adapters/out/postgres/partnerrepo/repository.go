package partnerrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker tracks aggregates loaded or persisted within a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

var _ ports.PartnerRepository = &GormPartnerRepository{}

// GormPartnerRepository implements partner persistence using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPartnerRepository creates a repository bound to the given database
// handle (plain connection or open transaction) and aggregate tracker.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new partner aggregate.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}

// Update persists changes to an existing partner aggregate. Boolean flags and
// zeroed counters must survive the round trip, so every column is written.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("partnerID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}

// Get retrieves a partner aggregate by its unique identifier.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	var dto PartnerDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partnerID", id)
		}

		return nil, err
	}

	return toDomain(dto)
}

// GetAllEligible returns every partner who is available, active and rated at
// or above the policy threshold, ordered by identifier for determinism.
func (r *GormPartnerRepository) GetAllEligible(ctx context.Context, ratingThreshold float64) ([]*partner.Partner, error) {
	var dtos []PartnerDTO

	err := r.db.WithContext(ctx).
		Where("is_available = ? AND is_active = ? AND rating >= ?", true, true, ratingThreshold).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}

		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
