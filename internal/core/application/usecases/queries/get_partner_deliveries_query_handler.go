package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPartnerDeliveriesQueryHandler retrieves a partner's in-flight deliveries
// from the database. Uses direct SQL queries for optimal read performance in
// the CQRS pattern.
type GetPartnerDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetPartnerDeliveriesQueryHandler(db *gorm.DB) GetPartnerDeliveriesQueryHandler {
	return GetPartnerDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve the partner's active deliveries.
// Returns orders in assigned, accepted, or picked_up status, newest
// assignment first.
func (h GetPartnerDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerDeliveriesQuery,
) ([]GetPartnerDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetPartnerDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_status,
			status,
			total,
			tip_amount,
			delivery_fee,
			assigned_at,
			accepted_at,
			picked_up_at
		FROM orders
		WHERE partner_id = ?
		  AND delivery_status IN (?, ?, ?)
		ORDER BY assigned_at DESC
	`, query.PartnerID().String(), order.Assigned, order.Accepted, order.PickedUp).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var delivery GetPartnerDeliveriesQueryResponse
		var id uuid.UUID
		var deliveryStatus, status int
		var total, tipAmount, deliveryFee decimal.Decimal

		err = rows.Scan(
			&id,
			&deliveryStatus,
			&status,
			&total,
			&tipAmount,
			&deliveryFee,
			&delivery.AssignedAt,
			&delivery.AcceptedAt,
			&delivery.PickedUpAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		delivery.ID = orderID
		delivery.DeliveryStatus = order.DeliveryStatus(deliveryStatus).String()
		delivery.Status = order.Status(status).String()

		if delivery.Total, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if delivery.TipAmount, err = kernel.NewMoney(tipAmount); err != nil {
			return nil, err
		}
		if delivery.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
