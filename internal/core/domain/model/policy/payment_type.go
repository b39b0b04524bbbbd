package policy

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PaymentType defines how the base payout for a completed delivery is
// computed: as a percentage of the order total or as a fixed amount.
type PaymentType int

const (
	// Percentage pays the partner a configured percentage of the order total.
	Percentage PaymentType = iota
	// Fixed pays the partner a configured flat amount per delivery.
	Fixed
)

func paymentTypeStrings() map[PaymentType]string {
	return map[PaymentType]string{
		Percentage: "percentage",
		Fixed:      "fixed",
	}
}

// String returns the wire name of the payment type.
func (t PaymentType) String() string {
	if s, ok := paymentTypeStrings()[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Validate checks that the payment type is a known value.
func (t PaymentType) Validate() error {
	if _, ok := paymentTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment type is invalid",
			fmt.Errorf("%d is not a valid payment type", t))
	}
	return nil
}

// PaymentTypeFromString parses a wire name into a PaymentType.
func PaymentTypeFromString(s string) (PaymentType, error) {
	for t, name := range paymentTypeStrings() {
		if name == s {
			return t, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("payment type is invalid",
		fmt.Errorf("%q is not a valid payment type", s))
}
