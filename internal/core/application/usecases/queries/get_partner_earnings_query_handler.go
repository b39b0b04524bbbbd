package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recentDeliveriesLimit caps the per-partner delivery history in the
// earnings read model.
const recentDeliveriesLimit = 50

// GetPartnerEarningsQueryHandler retrieves a partner's earnings summary and
// recent completed deliveries from the database.
type GetPartnerEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnerEarningsQueryHandler creates a handler for earnings queries.
// Requires a GORM database connection for query execution.
func NewGetPartnerEarningsQueryHandler(db *gorm.DB) GetPartnerEarningsQueryHandler {
	return GetPartnerEarningsQueryHandler{db: db}
}

// Handle executes the earnings query. Returns the partner's lifetime
// counters plus up to 50 most recently completed deliveries with their
// payouts.
func (h GetPartnerEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerEarningsQuery,
) (GetPartnerEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartnerEarningsQueryResponse{}, err
	}

	var response GetPartnerEarningsQueryResponse
	var totalEarnings decimal.Decimal

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total_deliveries,
			total_earnings,
			rating,
			total_ratings
		FROM partners
		WHERE id = ?
	`, query.PartnerID().String()).Row()

	err := row.Scan(
		&response.TotalDeliveries,
		&totalEarnings,
		&response.Rating,
		&response.TotalRatings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPartnerEarningsQueryResponse{},
			errs.NewObjectNotFoundError("partnerID", query.PartnerID())
	}
	if err != nil {
		return GetPartnerEarningsQueryResponse{}, err
	}

	response.PartnerID = query.PartnerID()
	if response.TotalEarnings, err = kernel.NewMoney(totalEarnings); err != nil {
		return GetPartnerEarningsQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			partner_earnings,
			tip_amount,
			completed_at
		FROM orders
		WHERE partner_id = ?
		  AND delivery_status = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`, query.PartnerID().String(), order.Delivered, recentDeliveriesLimit).Rows()
	if err != nil {
		return GetPartnerEarningsQueryResponse{}, err
	}
	defer rows.Close()

	response.Deliveries = make([]PartnerEarningsDelivery, 0)

	for rows.Next() {
		var delivery PartnerEarningsDelivery
		var id uuid.UUID
		var earnings, tipAmount decimal.Decimal

		err = rows.Scan(&id, &earnings, &tipAmount, &delivery.CompletedAt)
		if err != nil {
			return GetPartnerEarningsQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetPartnerEarningsQueryResponse{}, idErr
		}
		delivery.OrderID = orderID

		if delivery.Earnings, err = kernel.NewMoney(earnings); err != nil {
			return GetPartnerEarningsQueryResponse{}, err
		}
		if delivery.TipAmount, err = kernel.NewMoney(tipAmount); err != nil {
			return GetPartnerEarningsQueryResponse{}, err
		}

		response.Deliveries = append(response.Deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return GetPartnerEarningsQueryResponse{}, err
	}

	return response, nil
}
