package policy

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPolicyIsNotConstructed is returned when a DispatchPolicy instance was
// not created through NewDispatchPolicy or RestoreDispatchPolicy.
var ErrPolicyIsNotConstructed = errors.New("DispatchPolicy must be created via NewDispatchPolicy constructor")

// Default policy values seeded when no policy record exists yet.
const (
	DefaultPaymentValue        = 10.0
	DefaultDeliveryFee         = 20.0
	DefaultMaxTipAmount        = 100.0
	DefaultTimeoutMinutes      = 5
	DefaultRatingThreshold     = 3.5
	DefaultMaxDeliveryRadiusKm = 10.0
)

// Params carries the tunable dispatch settings of a DispatchPolicy.
type Params struct {
	AutoAssignmentEnabled    bool
	AssignmentTimeoutMinutes int
	PartnerRatingThreshold   float64
	PaymentType              PaymentType
	PaymentValue             kernel.Money
	TipEnabled               bool
	MaxTipAmount             kernel.Money
	DeliveryFee              kernel.Money
	MaxDeliveryRadiusKm      float64
}

// DispatchPolicy is the singleton aggregate holding the platform's dispatch
// configuration: whether orders auto-assign, how long a partner may sit on an
// assignment, who qualifies for assignments, and how completed deliveries pay
// out.
type DispatchPolicy struct {
	id     kernel.UUID
	params Params

	guard guard.ConstructorGuard
}

// NewDispatchPolicy creates a dispatch policy with the given settings.
func NewDispatchPolicy(id kernel.UUID, params Params) (*DispatchPolicy, error) {
	p := &DispatchPolicy{guard: guard.NewConstructorGuard()}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := p.setParams(params); err != nil {
		return nil, err
	}

	p.id = id
	return p, nil
}

// NewDefaultDispatchPolicy creates a dispatch policy with the platform seed
// defaults: auto-assignment on, 5-minute acceptance window, 3.5 rating
// threshold, 10% payout plus tips capped at 100, delivery fee 20.
func NewDefaultDispatchPolicy(id kernel.UUID) (*DispatchPolicy, error) {
	paymentValue, err := kernel.NewMoneyFromFloat(DefaultPaymentValue)
	if err != nil {
		return nil, err
	}
	maxTip, err := kernel.NewMoneyFromFloat(DefaultMaxTipAmount)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoneyFromFloat(DefaultDeliveryFee)
	if err != nil {
		return nil, err
	}

	return NewDispatchPolicy(id, Params{
		AutoAssignmentEnabled:    true,
		AssignmentTimeoutMinutes: DefaultTimeoutMinutes,
		PartnerRatingThreshold:   DefaultRatingThreshold,
		PaymentType:              Percentage,
		PaymentValue:             paymentValue,
		TipEnabled:               true,
		MaxTipAmount:             maxTip,
		DeliveryFee:              deliveryFee,
		MaxDeliveryRadiusKm:      DefaultMaxDeliveryRadiusKm,
	})
}

// RestoreDispatchPolicy reconstructs a dispatch policy from persistent storage.
func RestoreDispatchPolicy(id kernel.UUID, params Params) (*DispatchPolicy, error) {
	return NewDispatchPolicy(id, params)
}

func (p *DispatchPolicy) setParams(params Params) error {
	if err := errors.Join(
		params.PaymentType.Validate(),
		params.PaymentValue.Validate(),
		params.MaxTipAmount.Validate(),
		params.DeliveryFee.Validate(),
	); err != nil {
		return err
	}
	if params.AssignmentTimeoutMinutes < 1 || params.AssignmentTimeoutMinutes > 60 {
		return errs.NewValueIsOutOfRangeError("assignmentTimeoutMinutes",
			params.AssignmentTimeoutMinutes, 1, 60)
	}
	if params.PartnerRatingThreshold < 0 || params.PartnerRatingThreshold > 5 {
		return errs.NewValueIsOutOfRangeError("partnerRatingThreshold",
			params.PartnerRatingThreshold, 0, 5)
	}
	if params.MaxDeliveryRadiusKm <= 0 {
		return errs.NewValueIsInvalidError("maxDeliveryRadiusKm")
	}

	p.params = params
	return nil
}

// Amend replaces the policy's settings in place, keeping its identity.
func (p *DispatchPolicy) Amend(params Params) error {
	return p.setParams(params)
}

// Validate ensures the DispatchPolicy was constructed through a constructor.
func (p *DispatchPolicy) Validate() error {
	if p == nil {
		return ErrPolicyIsNotConstructed
	}
	return p.guard.Validate(ErrPolicyIsNotConstructed)
}

// ID returns the policy record's identifier.
func (p *DispatchPolicy) ID() kernel.UUID {
	return p.id
}

// AutoAssignmentEnabled reports whether new orders are assigned automatically.
func (p *DispatchPolicy) AutoAssignmentEnabled() bool {
	return p.params.AutoAssignmentEnabled
}

// AssignmentTimeoutMinutes returns the partner acceptance window in minutes.
func (p *DispatchPolicy) AssignmentTimeoutMinutes() int {
	return p.params.AssignmentTimeoutMinutes
}

// PartnerRatingThreshold returns the minimum rating for assignment eligibility.
func (p *DispatchPolicy) PartnerRatingThreshold() float64 {
	return p.params.PartnerRatingThreshold
}

// PaymentType returns how the base payout is computed.
func (p *DispatchPolicy) PaymentType() PaymentType {
	return p.params.PaymentType
}

// PaymentValue returns the payout percentage or fixed amount, per PaymentType.
func (p *DispatchPolicy) PaymentValue() kernel.Money {
	return p.params.PaymentValue
}

// TipEnabled reports whether customer tips are passed through to partners.
func (p *DispatchPolicy) TipEnabled() bool {
	return p.params.TipEnabled
}

// MaxTipAmount returns the cap applied to a tip before payout.
func (p *DispatchPolicy) MaxTipAmount() kernel.Money {
	return p.params.MaxTipAmount
}

// DeliveryFee returns the delivery fee charged to customers.
func (p *DispatchPolicy) DeliveryFee() kernel.Money {
	return p.params.DeliveryFee
}

// MaxDeliveryRadiusKm returns the configured delivery radius. It is part of
// the admin policy record; partner selection does not use it.
func (p *DispatchPolicy) MaxDeliveryRadiusKm() float64 {
	return p.params.MaxDeliveryRadiusKm
}

// EarningsFor computes the payout for a completed delivery: the base amount
// per the payment model, plus the customer's tip when tips are enabled
// (capped at MaxTipAmount), rounded to two decimal places.
func (p *DispatchPolicy) EarningsFor(total, tip kernel.Money) kernel.Money {
	base := p.params.PaymentValue
	if p.params.PaymentType == Percentage {
		base = total.MulPercent(p.params.PaymentValue)
	}

	if p.params.TipEnabled {
		base = base.Add(tip.Min(p.params.MaxTipAmount))
	}

	return base.Round(2)
}
