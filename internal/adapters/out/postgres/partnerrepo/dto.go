// Package partnerrepo provides data transfer objects and mapping functions for
// delivery partner persistence.
package partnerrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerDTO represents the database structure for persisting partner aggregates.
type PartnerDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	IsAvailable     bool
	IsActive        bool
	Rating          float64
	TotalRatings    int
	TotalDeliveries int
	TotalEarnings   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "partners"
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(aggregate *partner.Partner) PartnerDTO {
	return PartnerDTO{
		ID:              aggregate.ID().Bytes(),
		UserID:          aggregate.UserID().Bytes(),
		Name:            aggregate.Name(),
		IsAvailable:     aggregate.IsAvailable(),
		IsActive:        aggregate.IsActive(),
		Rating:          aggregate.Rating(),
		TotalRatings:    aggregate.TotalRatings(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		TotalEarnings:   aggregate.TotalEarnings().Decimal(),
	}
}

// toDomain converts a database DTO to a partner domain aggregate using RestorePartner.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	totalEarnings, err := kernel.NewMoney(dto.TotalEarnings)
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(partner.RestorePartnerParams{
		ID:              id,
		UserID:          userID,
		Name:            dto.Name,
		IsAvailable:     dto.IsAvailable,
		IsActive:        dto.IsActive,
		Rating:          dto.Rating,
		TotalRatings:    dto.TotalRatings,
		TotalDeliveries: dto.TotalDeliveries,
		TotalEarnings:   totalEarnings,
	})
}
