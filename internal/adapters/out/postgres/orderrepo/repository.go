package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// aggregateTracker tracks aggregates loaded or persisted within a unit of work
// so the transaction boundary can observe every touched aggregate.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

var _ ports.OrderRepository = &GormOrderRepository{}

// GormOrderRepository implements order persistence using GORM.
// It remembers the delivery status each order was loaded with and re-checks
// it on update, so two workers racing over the same order cannot both win.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	loaded  map[uuid.UUID]int
}

// NewGormOrderRepository creates a repository bound to the given database
// handle (plain connection or open transaction) and aggregate tracker.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
		loaded:  make(map[uuid.UUID]int),
	}
}

// Add persists a new order aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.loaded[dto.ID] = dto.DeliveryStatus
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}

// Update persists changes to an existing order aggregate. The write is
// conditional on the row still carrying the delivery status the aggregate
// was loaded with; a concurrent transition makes the update match zero rows
// and surfaces as a version conflict instead of a silent lost update.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID)
	if loadedStatus, ok := r.loaded[dto.ID]; ok {
		query = query.Where("delivery_status = ?", loadedStatus)
	}

	result := query.Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order delivery status")
	}

	r.loaded[dto.ID] = dto.DeliveryStatus
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	return nil
}

// Get retrieves an order aggregate by its unique identifier.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", id)
		}

		return nil, err
	}

	return r.restore(dto)
}

// GetFirstUnassigned returns one order still waiting in the assignment pool
// (ordered by identifier for a stable pick), or an ObjectNotFoundError when
// the pool is empty.
func (r *GormOrderRepository) GetFirstUnassigned(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO

	err := r.db.WithContext(ctx).
		Where("delivery_status = ?", int(order.None)).
		Order("id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("unassigned order", nil)
		}

		return nil, err
	}

	return r.restore(dto)
}

// GetAssignedBefore returns all orders assigned at or before the cutoff whose
// partner has not yet responded. Used by the timeout sweep.
func (r *GormOrderRepository) GetAssignedBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO

	err := r.db.WithContext(ctx).
		Where("delivery_status = ? AND assigned_at <= ?", int(order.Assigned), cutoff).
		Order("assigned_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, restoreErr := r.restore(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}

		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// CountActiveByPartner returns how many in-flight deliveries (assigned,
// accepted or picked up) the partner currently carries.
func (r *GormOrderRepository) CountActiveByPartner(ctx context.Context, partnerID kernel.UUID) (int, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("partner_id = ? AND delivery_status IN (?, ?, ?)",
			partnerID.Bytes(), int(order.Assigned), int(order.Accepted), int(order.PickedUp)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (r *GormOrderRepository) restore(dto OrderDTO) (*order.Order, error) {
	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.loaded[dto.ID] = dto.DeliveryStatus

	return aggregate, nil
}
