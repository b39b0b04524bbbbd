package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDeliveryStatsQueryHandler retrieves platform-wide dispatch counters
// from the database in a single round trip.
type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryStatsQueryHandler creates a handler for dispatch statistics.
// Requires a GORM database connection for query execution.
func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

// Handle executes the statistics query: active partners, available partners,
// orders awaiting acceptance, and deliveries completed since midnight.
func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (GetDeliveryStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	var response GetDeliveryStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM partners WHERE is_active) AS total_partners,
			(SELECT COUNT(*) FROM partners WHERE is_active AND is_available) AS available_partners,
			(SELECT COUNT(*) FROM orders WHERE delivery_status = ?) AS pending_orders,
			(SELECT COUNT(*) FROM orders
				WHERE delivery_status = ? AND completed_at >= CURRENT_DATE) AS completed_today
	`, order.Assigned, order.Delivered).Row()

	err := row.Scan(
		&response.TotalPartners,
		&response.AvailablePartners,
		&response.PendingOrders,
		&response.CompletedToday,
	)
	if err != nil {
		return GetDeliveryStatsQueryResponse{}, err
	}

	return response, nil
}
