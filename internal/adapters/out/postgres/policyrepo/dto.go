// Package policyrepo provides data transfer objects and mapping functions for
// the dispatch policy singleton.
package policyrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PolicyDTO represents the database structure for persisting the dispatch policy.
type PolicyDTO struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AutoAssignmentEnabled    bool
	AssignmentTimeoutMinutes int
	PartnerRatingThreshold   float64
	PaymentType              int
	PaymentValue             decimal.Decimal `gorm:"type:numeric(12,2)"`
	TipEnabled               bool
	MaxTipAmount             decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee              decimal.Decimal `gorm:"type:numeric(12,2)"`
	MaxDeliveryRadiusKm      float64
}

// TableName specifies the database table name for the dispatch policy.
func (PolicyDTO) TableName() string {
	return "dispatch_policies"
}

// fromDomain converts a dispatch policy aggregate to its database representation.
func fromDomain(aggregate *policy.DispatchPolicy) PolicyDTO {
	return PolicyDTO{
		ID:                       aggregate.ID().Bytes(),
		AutoAssignmentEnabled:    aggregate.AutoAssignmentEnabled(),
		AssignmentTimeoutMinutes: aggregate.AssignmentTimeoutMinutes(),
		PartnerRatingThreshold:   aggregate.PartnerRatingThreshold(),
		PaymentType:              int(aggregate.PaymentType()),
		PaymentValue:             aggregate.PaymentValue().Decimal(),
		TipEnabled:               aggregate.TipEnabled(),
		MaxTipAmount:             aggregate.MaxTipAmount().Decimal(),
		DeliveryFee:              aggregate.DeliveryFee().Decimal(),
		MaxDeliveryRadiusKm:      aggregate.MaxDeliveryRadiusKm(),
	}
}

// toDomain converts a database DTO to a dispatch policy aggregate using RestoreDispatchPolicy.
func toDomain(dto PolicyDTO) (*policy.DispatchPolicy, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	paymentValue, err := kernel.NewMoney(dto.PaymentValue)
	if err != nil {
		return nil, err
	}

	maxTipAmount, err := kernel.NewMoney(dto.MaxTipAmount)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	return policy.RestoreDispatchPolicy(id, policy.Params{
		AutoAssignmentEnabled:    dto.AutoAssignmentEnabled,
		AssignmentTimeoutMinutes: dto.AssignmentTimeoutMinutes,
		PartnerRatingThreshold:   dto.PartnerRatingThreshold,
		PaymentType:              policy.PaymentType(dto.PaymentType),
		PaymentValue:             paymentValue,
		TipEnabled:               dto.TipEnabled,
		MaxTipAmount:             maxTipAmount,
		DeliveryFee:              deliveryFee,
		MaxDeliveryRadiusKm:      dto.MaxDeliveryRadiusKm,
	})
}
