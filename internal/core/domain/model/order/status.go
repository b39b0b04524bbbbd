package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// DeliveryStatus represents the assignment lifecycle of an order's delivery.
// It implements a state machine with an explicit transition table; invalid
// combinations are rejected rather than silently stored.
//
// State transitions:
//
//	None ──> Assigned ──> Accepted ──> PickedUp ──> Delivered
//	  ^          │
//	  └──────────┘
//	 (reject / timeout)
//
// None is both the initial state and the state an order returns to when an
// assignment is rejected or times out. Delivered is final.
type DeliveryStatus int

const (
	// None means no delivery partner is assigned. This is the initial state
	// and a steady state when no partner is eligible.
	None DeliveryStatus = iota

	// Assigned means a partner has been selected and is yet to respond.
	Assigned

	// Accepted means the assigned partner confirmed the delivery.
	Accepted

	// PickedUp means the partner collected the order from the store.
	PickedUp

	// Delivered means the order reached the customer. Final state.
	Delivered
)

func deliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		None:      "none",
		Assigned:  "assigned",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		Delivered: "delivered",
	}
}

// String returns the wire name of the status, as recorded in tracking notes
// and persisted to the database.
func (s DeliveryStatus) String() string {
	if str, ok := deliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined states.
func (s DeliveryStatus) Validate() error {
	if _, ok := deliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// ValidateCanHavePartner enforces the core invariant: an order has a delivery
// partner if and only if its delivery status is not None.
func (s DeliveryStatus) ValidateCanHavePartner(hasPartner bool) error {
	if hasPartner && s == None {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%s is not a valid status to have a partner", s.String()),
		)
	}

	if !hasPartner && s != None {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%s is not a valid status to have no partner", s.String()),
		)
	}

	return nil
}

func (s DeliveryStatus) transition(to, legalFrom DeliveryStatus) (DeliveryStatus, error) {
	if s != legalFrom {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%s is not a valid status to become %s", s.String(), to.String()),
		)
	}
	return to, nil
}

// Assign transitions None -> Assigned. Orders already assigned, in progress,
// or delivered cannot be assigned again without passing through None.
func (s DeliveryStatus) Assign() (DeliveryStatus, error) {
	return s.transition(Assigned, None)
}

// Accept transitions Assigned -> Accepted.
func (s DeliveryStatus) Accept() (DeliveryStatus, error) {
	return s.transition(Accepted, Assigned)
}

// Unassign transitions Assigned -> None. Used for partner rejection and for
// assignment timeouts; an accepted or picked-up delivery cannot be unassigned.
func (s DeliveryStatus) Unassign() (DeliveryStatus, error) {
	return s.transition(None, Assigned)
}

// PickUp transitions Accepted -> PickedUp.
func (s DeliveryStatus) PickUp() (DeliveryStatus, error) {
	return s.transition(PickedUp, Accepted)
}

// Deliver transitions PickedUp -> Delivered.
func (s DeliveryStatus) Deliver() (DeliveryStatus, error) {
	return s.transition(Delivered, PickedUp)
}

// Status is the customer-facing order status mirrored by delivery
// transitions. The customer-visible labels ("Pending", "Preparing",
// "Out for Delivery", "Delivered") are the String forms.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota

	// StatusPending is the state of a freshly placed order.
	StatusPending

	// StatusPreparing is set when a partner accepts the delivery.
	StatusPreparing

	// StatusOutForDelivery is set when the partner picks the order up.
	StatusOutForDelivery

	// StatusDelivered is set on completion.
	StatusDelivered
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:        "Pending",
		StatusPreparing:      "Preparing",
		StatusOutForDelivery: "Out for Delivery",
		StatusDelivered:      "Delivered",
	}
}

// String returns the customer-facing label of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the status is one of the defined states.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}
