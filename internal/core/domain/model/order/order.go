package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for order delivery operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNotAssignedToPartner is returned for any partner action whose guard
	// fails: the order is in the wrong state or belongs to a different partner.
	// The two cases are deliberately indistinguishable so callers cannot probe
	// another partner's assignments.
	ErrNotAssignedToPartner = errors.New("order is not assigned to this partner")

	// ErrNotDelivered is returned when rating an order that has not completed delivery.
	ErrNotDelivered = errors.New("order is not delivered yet")

	// ErrAlreadyRated is returned when rating an order a second time.
	ErrAlreadyRated = errors.New("delivery is already rated")

	// ErrEarningsAlreadyApplied is returned when folding earnings into an order twice.
	ErrEarningsAlreadyApplied = errors.New("partner earnings are already applied")
)

// Tracking note messages recorded on lifecycle transitions.
const (
	noteAcceptedMessage  = "Delivery partner has accepted the order"
	noteRejectedMessage  = "Delivery partner rejected the order - reassigned"
	noteTimeoutMessage   = "Delivery assignment timed out, reassigning to another partner"
	notePickedUpMessage  = "Order picked up by delivery partner"
	noteDeliveredMessage = "Order delivered successfully"
	noteTimeoutStatus    = "timeout"
	noteRejectedStatus   = "rejected"
)

// Order is the aggregate root for an order's delivery lifecycle. It owns the
// assignment state machine, the monotonic lifecycle timestamps, the append-only
// tracking history, and the post-delivery rating.
//
// Invariants:
//   - deliveryStatus is None if and only if no partner is assigned
//   - a later-stage timestamp is never set while an earlier one is nil
//   - tracking notes are appended in event order and never mutated
//   - the delivery is rated at most once, and only after completion
//
// Order uses private fields and validated transition methods; construct
// through NewOrder and reconstruct from persistence through RestoreOrder.
type Order struct {
	id              kernel.UUID
	total           kernel.Money
	tipAmount       kernel.Money
	deliveryFee     kernel.Money
	partnerEarnings kernel.Money

	partnerID      *kernel.UUID
	deliveryStatus DeliveryStatus
	status         Status

	assignedAt  *time.Time
	acceptedAt  *time.Time
	pickedUpAt  *time.Time
	completedAt *time.Time

	trackingNotes []TrackingNote

	deliveryRating *int
	deliveryReview *string

	guard guard.ConstructorGuard
}

// NewOrder creates a new unassigned order with the given monetary amounts.
// The order starts in delivery status None and customer status Pending, with
// no partner, no timestamps, and an empty tracking history.
func NewOrder(id kernel.UUID, total, tipAmount, deliveryFee kernel.Money) (*Order, error) {
	o := &Order{
		deliveryStatus: None,
		status:         StatusPending,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAmounts(total, tipAmount, deliveryFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrderParams carries the persisted state of an order for RestoreOrder.
type RestoreOrderParams struct {
	ID              kernel.UUID
	Total           kernel.Money
	TipAmount       kernel.Money
	DeliveryFee     kernel.Money
	PartnerEarnings kernel.Money
	PartnerID       *kernel.UUID
	DeliveryStatus  DeliveryStatus
	Status          Status
	AssignedAt      *time.Time
	AcceptedAt      *time.Time
	PickedUpAt      *time.Time
	CompletedAt     *time.Time
	TrackingNotes   []TrackingNote
	DeliveryRating  *int
	DeliveryReview  *string
}

// RestoreOrder reconstructs an order aggregate from persistent storage,
// re-validating the status/partner invariant so corrupt rows are rejected
// at the boundary.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o := &Order{
		status:         params.Status,
		deliveryStatus: params.DeliveryStatus,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setAmounts(params.Total, params.TipAmount, params.DeliveryFee),
		params.PartnerEarnings.Validate(),
		params.DeliveryStatus.Validate(),
		params.Status.Validate(),
		params.DeliveryStatus.ValidateCanHavePartner(params.PartnerID != nil),
	); err != nil {
		return nil, err
	}

	if params.PartnerID != nil {
		if err := params.PartnerID.Validate(); err != nil {
			return nil, err
		}
	}

	o.partnerEarnings = params.PartnerEarnings
	o.partnerID = params.PartnerID
	o.assignedAt = params.AssignedAt
	o.acceptedAt = params.AcceptedAt
	o.pickedUpAt = params.PickedUpAt
	o.completedAt = params.CompletedAt
	o.trackingNotes = make([]TrackingNote, len(params.TrackingNotes))
	copy(o.trackingNotes, params.TrackingNotes)
	o.deliveryRating = params.DeliveryRating
	o.deliveryReview = params.DeliveryReview

	return o, nil
}

// Validate ensures the Order was constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Total returns the order total charged to the customer.
func (o *Order) Total() kernel.Money {
	return o.total
}

// TipAmount returns the tip the customer attached to the order.
func (o *Order) TipAmount() kernel.Money {
	return o.tipAmount
}

// DeliveryFee returns the delivery fee charged to the customer.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// PartnerEarnings returns the payout folded into the order at completion,
// zero until then.
func (o *Order) PartnerEarnings() kernel.Money {
	return o.partnerEarnings
}

// Partner returns the assigned partner's ID, or nil when unassigned.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// DeliveryStatus returns the current assignment lifecycle state.
func (o *Order) DeliveryStatus() DeliveryStatus {
	return o.deliveryStatus
}

// Status returns the customer-facing order status.
func (o *Order) Status() Status {
	return o.status
}

// AssignedAt returns when the current assignment was made, nil when unassigned.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// AcceptedAt returns when the partner accepted, nil before acceptance.
func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

// PickedUpAt returns when the partner picked the order up, nil before pickup.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// CompletedAt returns when the delivery completed, nil before completion.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// TrackingNotes returns a copy of the append-only delivery history.
func (o *Order) TrackingNotes() []TrackingNote {
	out := make([]TrackingNote, len(o.trackingNotes))
	copy(out, o.trackingNotes)
	return out
}

// DeliveryRating returns the customer's 1-5 rating, nil until rated.
func (o *Order) DeliveryRating() *int {
	return o.deliveryRating
}

// DeliveryReview returns the customer's review text, nil until rated.
func (o *Order) DeliveryReview() *string {
	return o.deliveryReview
}

// IsOwnedBy reports whether the order is currently assigned to the given partner.
func (o *Order) IsOwnedBy(partnerID kernel.UUID) bool {
	return o.partnerID != nil && o.partnerID.IsEqual(partnerID)
}

// Assign binds the order to a delivery partner. Legal only from delivery
// status None. Sets the assignment timestamp and appends an "assigned"
// tracking note naming the partner.
func (o *Order) Assign(partnerID kernel.UUID, partnerName string, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.deliveryStatus.Assign()
	if err != nil {
		return err
	}

	o.deliveryStatus = newStatus
	o.partnerID = &partnerID
	o.assignedAt = &now
	return o.appendNote(Assigned.String(),
		fmt.Sprintf("Order assigned to delivery partner %s", partnerName), now)
}

// Accept records the assigned partner's confirmation. Legal only from
// Assigned and only for the owning partner; any guard failure surfaces as
// ErrNotAssignedToPartner. Moves the customer status to Preparing.
func (o *Order) Accept(partnerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(partnerID) {
		return ErrNotAssignedToPartner
	}

	newStatus, err := o.deliveryStatus.Accept()
	if err != nil {
		return ErrNotAssignedToPartner
	}

	o.deliveryStatus = newStatus
	o.status = StatusPreparing
	o.acceptedAt = &now
	return o.appendNote(Accepted.String(), noteAcceptedMessage, now)
}

// Reject releases the assignment at the owning partner's request. Legal only
// from Assigned. Clears the partner binding and the assignment timestamp so
// the order re-enters the unassigned pool, and appends a "rejected" note.
// The caller is expected to trigger reassignment as a follow-up action.
func (o *Order) Reject(partnerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(partnerID) {
		return ErrNotAssignedToPartner
	}
	return o.unassign(noteRejectedStatus, noteRejectedMessage, now)
}

// Unassign releases an assignment that exceeded the acceptance window.
// Unlike Reject it requires no partner identity; the timeout monitor calls it
// on any order still in Assigned past the deadline.
func (o *Order) Unassign(now time.Time) error {
	return o.unassign(noteTimeoutStatus, noteTimeoutMessage, now)
}

func (o *Order) unassign(noteStatus, noteMessage string, now time.Time) error {
	newStatus, err := o.deliveryStatus.Unassign()
	if err != nil {
		return ErrNotAssignedToPartner
	}

	o.deliveryStatus = newStatus
	o.partnerID = nil
	o.assignedAt = nil
	return o.appendNote(noteStatus, noteMessage, now)
}

// MarkPickedUp records the pickup. Legal only from Accepted for the owning
// partner. Moves the customer status to Out for Delivery.
func (o *Order) MarkPickedUp(partnerID kernel.UUID, now time.Time) error {
	if !o.IsOwnedBy(partnerID) {
		return ErrNotAssignedToPartner
	}

	newStatus, err := o.deliveryStatus.PickUp()
	if err != nil {
		return ErrNotAssignedToPartner
	}

	o.deliveryStatus = newStatus
	o.status = StatusOutForDelivery
	o.pickedUpAt = &now
	return o.appendNote(PickedUp.String(), notePickedUpMessage, now)
}

// MarkDelivered completes the delivery. Legal only from PickedUp for the
// owning partner. Records the completion timestamp and a "delivered" note
// with the given message, or a default when empty.
func (o *Order) MarkDelivered(partnerID kernel.UUID, notes string, now time.Time) error {
	if !o.IsOwnedBy(partnerID) {
		return ErrNotAssignedToPartner
	}

	newStatus, err := o.deliveryStatus.Deliver()
	if err != nil {
		return ErrNotAssignedToPartner
	}

	if notes == "" {
		notes = noteDeliveredMessage
	}

	o.deliveryStatus = newStatus
	o.status = StatusDelivered
	o.completedAt = &now
	return o.appendNote(Delivered.String(), notes, now)
}

// ApplyEarnings folds the computed partner payout into the order. Applied
// exactly once, at delivery completion.
func (o *Order) ApplyEarnings(earnings kernel.Money) error {
	if err := earnings.Validate(); err != nil {
		return err
	}
	if o.deliveryStatus != Delivered {
		return ErrNotDelivered
	}
	if !o.partnerEarnings.IsZero() {
		return ErrEarningsAlreadyApplied
	}

	o.partnerEarnings = earnings
	return nil
}

// Rate records the customer's delivery rating (1-5) and optional review.
// Legal only after delivery, and only once per order.
func (o *Order) Rate(score int, review string) error {
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("delivery rating", score, 1, 5)
	}
	if o.deliveryStatus != Delivered {
		return ErrNotDelivered
	}
	if o.deliveryRating != nil {
		return ErrAlreadyRated
	}

	o.deliveryRating = &score
	if review != "" {
		o.deliveryReview = &review
	}
	return nil
}

func (o *Order) appendNote(status, message string, now time.Time) error {
	note, err := NewTrackingNote(status, message, now)
	if err != nil {
		return err
	}
	o.trackingNotes = append(o.trackingNotes, note)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAmounts(total, tipAmount, deliveryFee kernel.Money) error {
	if err := errors.Join(
		total.Validate(),
		tipAmount.Validate(),
		deliveryFee.Validate(),
	); err != nil {
		return err
	}

	o.total = total
	o.tipAmount = tipAmount
	o.deliveryFee = deliveryFee
	return nil
}
