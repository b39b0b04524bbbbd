package kernel

import (
	"github.com/shopspring/decimal"

	"dispatch/internal/pkg/errs"
)

// ErrMoneyIsNegative is returned when constructing a monetary amount below zero.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount must not be negative")

// Money is a value object for monetary amounts: order totals, tips, delivery
// fees, payout values, and partner earnings. It wraps a fixed-point decimal so
// arithmetic and the two-decimal rounding applied to earnings stay exact.
//
// The zero value is a valid zero amount. Negative amounts are rejected at
// construction.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount. Returns ErrMoneyIsNegative
// for amounts below zero.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulPercent returns m scaled by percent/100, e.g. a 10% payout share.
func (m Money) MulPercent(percent Money) Money {
	return Money{amount: m.amount.Mul(percent.amount).Div(decimal.NewFromInt(100))}
}

// Round returns the amount rounded half-up to the given number of decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places)}
}

// Min returns the smaller of two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.GreaterThan(other.amount) {
		return other
	}
	return m
}

// Decimal returns the underlying decimal value for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for read models and responses.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Validate returns an error if the amount is negative. Zero is valid, so a
// zero-value Money passes; restored aggregates call this on load.
func (m Money) Validate() error {
	if m.amount.IsNegative() {
		return ErrMoneyIsNegative
	}
	return nil
}
