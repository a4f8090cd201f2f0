// Package money defines the exact decimal arithmetic used for every
// monetary quantity in flowbooks. All amounts are base-10 fixed point;
// binary floating point never touches a stored value.
package money

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. Quantities, unit prices, rates and
// totals all use this type so that addition, subtraction and
// multiplication are lossless.
type Money = decimal.Decimal

// Scale is the currency minor-unit scale. Every computed quantity that
// involves division (percentage application) is rounded half-up to this
// scale exactly once.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// Zero returns the zero amount.
func Zero() Money { return decimal.Zero }

// FromString parses an exact decimal amount.
func FromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses an exact decimal amount and panics on malformed
// input. Intended for constants and tests.
func MustFromString(s string) Money {
	return decimal.RequireFromString(s)
}

// Round applies the single consistent rounding rule: half-up at Scale.
func Round(m Money) Money {
	return m.Round(Scale)
}

// LineAmount computes quantity x unit price, rounded once to Scale.
func LineAmount(quantity, unitPrice Money) Money {
	return Round(quantity.Mul(unitPrice))
}

// Percent applies pct (expressed as a percentage, e.g. 18 for 18%) to
// base, rounding the result once to Scale.
func Percent(base, pct Money) Money {
	return Round(base.Mul(pct).Div(hundred))
}
