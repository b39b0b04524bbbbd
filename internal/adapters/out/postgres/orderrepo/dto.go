// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by delivery status and partner assignment.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PartnerID       *uuid.UUID      `gorm:"type:uuid;index"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2)"`
	TipAmount       decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric(12,2)"`
	PartnerEarnings decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryStatus  int             `gorm:"index"`
	Status          int
	AssignedAt      *time.Time
	AcceptedAt      *time.Time
	PickedUpAt      *time.Time
	CompletedAt     *time.Time
	TrackingNotes   []TrackingNoteDTO `gorm:"serializer:json;type:jsonb"`
	DeliveryRating  *int
	DeliveryReview  *string
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingNoteDTO represents a single tracking history entry stored in the
// orders table as a JSONB array.
type TrackingNoteDTO struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional partner assignment and tracking history.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.Partner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	notes := aggregate.TrackingNotes()
	noteDTOs := make([]TrackingNoteDTO, 0, len(notes))
	for _, note := range notes {
		noteDTOs = append(noteDTOs, TrackingNoteDTO{
			Status:    note.Status(),
			Message:   note.Message(),
			Timestamp: note.Timestamp(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		PartnerID:       partnerID,
		Total:           aggregate.Total().Decimal(),
		TipAmount:       aggregate.TipAmount().Decimal(),
		DeliveryFee:     aggregate.DeliveryFee().Decimal(),
		PartnerEarnings: aggregate.PartnerEarnings().Decimal(),
		DeliveryStatus:  int(aggregate.DeliveryStatus()),
		Status:          int(aggregate.Status()),
		AssignedAt:      aggregate.AssignedAt(),
		AcceptedAt:      aggregate.AcceptedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		CompletedAt:     aggregate.CompletedAt(),
		TrackingNotes:   noteDTOs,
		DeliveryRating:  aggregate.DeliveryRating(),
		DeliveryReview:  aggregate.DeliveryReview(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including delivery status, partner
// assignment and tracking history using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	tipAmount, err := kernel.NewMoney(dto.TipAmount)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	partnerEarnings, err := kernel.NewMoney(dto.PartnerEarnings)
	if err != nil {
		return nil, err
	}

	notes := make([]order.TrackingNote, 0, len(dto.TrackingNotes))
	for _, noteDTO := range dto.TrackingNotes {
		note, noteErr := order.NewTrackingNote(noteDTO.Status, noteDTO.Message, noteDTO.Timestamp)
		if noteErr != nil {
			return nil, noteErr
		}

		notes = append(notes, note)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              id,
		Total:           total,
		TipAmount:       tipAmount,
		DeliveryFee:     deliveryFee,
		PartnerEarnings: partnerEarnings,
		PartnerID:       partnerID,
		DeliveryStatus:  order.DeliveryStatus(dto.DeliveryStatus),
		Status:          order.Status(dto.Status),
		AssignedAt:      dto.AssignedAt,
		AcceptedAt:      dto.AcceptedAt,
		PickedUpAt:      dto.PickedUpAt,
		CompletedAt:     dto.CompletedAt,
		TrackingNotes:   notes,
		DeliveryRating:  dto.DeliveryRating,
		DeliveryReview:  dto.DeliveryReview,
	})
}
