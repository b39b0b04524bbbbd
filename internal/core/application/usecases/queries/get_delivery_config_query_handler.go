package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDeliveryConfigQueryHandler reads the dispatch policy row directly,
// falling back to the default configuration when none has been saved yet.
type GetDeliveryConfigQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryConfigQueryHandler creates a handler for the configuration read model.
func NewGetDeliveryConfigQueryHandler(db *gorm.DB) GetDeliveryConfigQueryHandler {
	return GetDeliveryConfigQueryHandler{db: db}
}

// Handle executes the configuration query.
func (h GetDeliveryConfigQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryConfigQuery,
) (GetDeliveryConfigQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryConfigQueryResponse{}, err
	}

	var (
		response     GetDeliveryConfigQueryResponse
		paymentType  int
		paymentValue decimal.Decimal
		maxTipAmount decimal.Decimal
		deliveryFee  decimal.Decimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT auto_assignment_enabled, assignment_timeout_minutes,
			partner_rating_threshold, payment_type, payment_value,
			tip_enabled, max_tip_amount, delivery_fee, max_delivery_radius_km
		FROM dispatch_policies
		LIMIT 1
	`).Row()

	err := row.Scan(
		&response.AutoAssignmentEnabled,
		&response.AssignmentTimeoutMinutes,
		&response.PartnerRatingThreshold,
		&paymentType,
		&paymentValue,
		&response.TipEnabled,
		&maxTipAmount,
		&deliveryFee,
		&response.MaxDeliveryRadiusKm,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaultConfigResponse()
		}

		return GetDeliveryConfigQueryResponse{}, err
	}

	response.PaymentType = policy.PaymentType(paymentType).String()

	if response.PaymentValue, err = kernel.NewMoney(paymentValue); err != nil {
		return GetDeliveryConfigQueryResponse{}, err
	}
	if response.MaxTipAmount, err = kernel.NewMoney(maxTipAmount); err != nil {
		return GetDeliveryConfigQueryResponse{}, err
	}
	if response.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
		return GetDeliveryConfigQueryResponse{}, err
	}

	return response, nil
}

func defaultConfigResponse() (GetDeliveryConfigQueryResponse, error) {
	defaults, err := policy.NewDefaultDispatchPolicy(kernel.NewUUID())
	if err != nil {
		return GetDeliveryConfigQueryResponse{}, err
	}

	return GetDeliveryConfigQueryResponse{
		AutoAssignmentEnabled:    defaults.AutoAssignmentEnabled(),
		AssignmentTimeoutMinutes: defaults.AssignmentTimeoutMinutes(),
		PartnerRatingThreshold:   defaults.PartnerRatingThreshold(),
		PaymentType:              defaults.PaymentType().String(),
		PaymentValue:             defaults.PaymentValue(),
		TipEnabled:               defaults.TipEnabled(),
		MaxTipAmount:             defaults.MaxTipAmount(),
		DeliveryFee:              defaults.DeliveryFee(),
		MaxDeliveryRadiusKm:      defaults.MaxDeliveryRadiusKm(),
	}, nil
}
