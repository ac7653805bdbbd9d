package valueobject

import (
	"math/bits"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultDecimals is the number of fractional digits of the ledger currency
// when none is configured (one major unit = 10^9 smallest units)
const DefaultDecimals int32 = 9

// Money is a value object representing an amount in the smallest currency unit.
// It is immutable; arithmetic is checked and returns new Money instances.
type Money struct {
	units uint64
}

// NewMoney creates Money from smallest units
func NewMoney(units uint64) Money {
	return Money{units: units}
}

// Zero returns a zero amount
func Zero() Money {
	return Money{}
}

// Units returns the amount in smallest units
func (m Money) Units() uint64 {
	return m.units
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.units == 0
}

// Add returns the sum of both amounts, or MATH_OVERFLOW
func (m Money) Add(other Money) (Money, error) {
	sum, carry := bits.Add64(m.units, other.units, 0)
	if carry != 0 {
		return Money{}, shared.ErrMathOverflow
	}
	return Money{units: sum}, nil
}

// Subtract returns the difference, or INSUFFICIENT_BALANCE when other is larger
func (m Money) Subtract(other Money) (Money, error) {
	if other.units > m.units {
		return Money{}, shared.ErrInsufficientBalance
	}
	return Money{units: m.units - other.units}, nil
}

// Percent returns m * percent / 100 truncated toward zero.
// The multiplication is checked: a product that does not fit in 64 bits is
// reported as MATH_OVERFLOW rather than wrapped.
func (m Money) Percent(percent uint8) (Money, error) {
	hi, lo := bits.Mul64(m.units, uint64(percent))
	if hi != 0 {
		return Money{}, shared.ErrMathOverflow
	}
	return Money{units: lo / 100}, nil
}

// Equals returns true if both amounts are equal
func (m Money) Equals(other Money) bool {
	return m.units == other.units
}

// GreaterThanOrEqual returns true if m >= other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.units >= other.units
}

// LessThan returns true if m < other
func (m Money) LessThan(other Money) bool {
	return m.units < other.units
}

// Decimal returns the amount in major units
func (m Money) Decimal(decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(m.units).Shift(-decimals)
}

// Format renders the amount in major units followed by the currency symbol
func (m Money) Format(decimals int32, symbol string) string {
	s := m.Decimal(decimals).StringFixed(decimals)
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// String renders the amount with the default number of decimals
func (m Money) String() string {
	return m.Decimal(DefaultDecimals).String()
}

// ParseMoney converts a major-unit decimal string into Money.
// Fractions finer than the smallest unit are rejected as INVALID_AMOUNT.
func ParseMoney(s string, decimals int32) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return Money{}, ErrInvalidAmount
	}
	if shifted.GreaterThan(decimal.NewFromUint64(^uint64(0))) {
		return Money{}, shared.ErrMathOverflow
	}
	return Money{units: shifted.BigInt().Uint64()}, nil
}

// ErrInvalidAmount is returned for amounts that cannot be represented
var ErrInvalidAmount = shared.NewDomainError("INVALID_AMOUNT", "Amount is not a valid ledger amount")
