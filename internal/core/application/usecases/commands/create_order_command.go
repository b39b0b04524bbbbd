package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a placed order entering the dispatch system,
// carrying the monetary amounts the payout formula later needs.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, total, tip, fee)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct {
	orderID     kernel.UUID
	total       kernel.Money
	tipAmount   kernel.Money
	deliveryFee kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a placed order.
// All monetary amounts must be non-negative.
func NewCreateOrderCommand(orderID kernel.UUID, total, tipAmount, deliveryFee kernel.Money) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		total.Validate(),
		tipAmount.Validate(),
		deliveryFee.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:     orderID,
		total:       total,
		tipAmount:   tipAmount,
		deliveryFee: deliveryFee,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Total returns the order total.
func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

// TipAmount returns the customer's tip before policy clamping.
func (c CreateOrderCommand) TipAmount() kernel.Money {
	return c.tipAmount
}

// DeliveryFee returns the delivery fee; zero means use the policy default.
func (c CreateOrderCommand) DeliveryFee() kernel.Money {
	return c.deliveryFee
}
