/*
Package money provides decimal monetary amounts and Indian-locale formatting.

PURPOSE:
  Every rupee figure in the system flows through this package. Amounts are
  backed by decimal.Decimal so that stage thresholds (25% of a sanctioned
  amount) and running totals never accumulate floating-point error.

KEY CONCEPTS:
  - Amount: An INR quantity. Zero value is ₹0.
  - Coercion: Malformed numeric input (NaN, Inf, unparsable strings) degrades
    to zero instead of raising an error. Financial views must keep rendering
    even when a record carries a bad value.
  - Formatting: Indian digit grouping (lakhs/crores), no paise, literal ₹.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal internally, float64 only at JSON boundaries.
  2. Never throw: bad input becomes zero, documented and tested.
  3. One formatter: every display string comes from Format/FormatSigned so the
     "+ due / - advance" sign convention cannot drift between views.

SEE ALSO:
  - format.go: Indian numbering and sign conventions
  - ledger package: all balance math is done in Amounts
*/
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in Indian Rupees.
type Amount struct {
	Value decimal.Decimal
}

// New creates an Amount from a float64. NaN and Inf coerce to zero.
func New(value float64) Amount {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Amount{}
	}
	return Amount{Value: decimal.NewFromFloat(value)}
}

// NewFromInt creates an Amount from whole rupees.
func NewFromInt(value int64) Amount {
	return Amount{Value: decimal.NewFromInt(value)}
}

// FromDecimal wraps an existing decimal.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{Value: d}
}

// Parse converts a stored string to an Amount. Unparsable input coerces to
// zero, mirroring the defensive Number(x) || 0 handling of the data layer.
func Parse(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: d}
}

// Zero is the ₹0 amount.
func Zero() Amount { return Amount{} }

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value)} }
func (a Amount) Mul(d decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(d)} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg()} }

func (a Amount) IsZero() bool     { return a.Value.IsZero() }
func (a Amount) IsNegative() bool { return a.Value.IsNegative() }
func (a Amount) IsPositive() bool { return a.Value.IsPositive() }

func (a Amount) Equal(b Amount) bool              { return a.Value.Equal(b.Value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.Value.GreaterThan(b.Value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.Value.GreaterThanOrEqual(b.Value) }
func (a Amount) LessThan(b Amount) bool           { return a.Value.LessThan(b.Value) }

// FloorZero clamps negative amounts to zero. Views that show "pending" rather
// than a signed net balance use this.
func (a Amount) FloorZero() Amount {
	if a.Value.IsNegative() {
		return Amount{}
	}
	return a
}

// Sanitize coerces negative amounts to zero. Transaction amounts are summed
// through this so a corrupt negative row cannot reduce a total.
func (a Amount) Sanitize() Amount {
	return a.FloorZero()
}

// Float64 returns the amount for JSON serialization.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}

// String returns the plain decimal representation (storage form).
func (a Amount) String() string { return a.Value.String() }
