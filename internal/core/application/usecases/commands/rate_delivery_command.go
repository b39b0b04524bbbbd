package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand represents a customer rating a completed delivery with
// a 1-5 score and an optional review.
type RateDeliveryCommand struct {
	orderID kernel.UUID
	rating  int
	review  string

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand creates a command to rate a delivered order.
// The rating must be between 1 and 5.
func NewRateDeliveryCommand(orderID kernel.UUID, rating int, review string) (RateDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RateDeliveryCommand{}, err
	}
	if rating < 1 || rating > 5 {
		return RateDeliveryCommand{}, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	return RateDeliveryCommand{
		orderID: orderID,
		rating:  rating,
		review:  review,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRateDeliveryCommandIsNotConstructed if validation fails.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the rated order.
func (c RateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Rating returns the 1-5 score.
func (c RateDeliveryCommand) Rating() int {
	return c.rating
}

// Review returns the optional review text.
func (c RateDeliveryCommand) Review() string {
	return c.review
}
