package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Round2 rounds half away from zero to 2 places (RON has bani)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Mul multiplies two decimals, rounds to 2 places
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Mul(b))
}

// CalculateVAT computes amount * (percent/100), rounded to 2 places.
// The product is taken at full precision before the single rounding step.
func CalculateVAT(amount, percent decimal.Decimal) decimal.Decimal {
	if percent.IsZero() {
		return Zero
	}
	return Round2(amount.Mul(percent).Div(hundred))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// InRange returns true if min <= d <= max
func InRange(d, min, max decimal.Decimal) bool {
	return d.GreaterThanOrEqual(min) && d.LessThanOrEqual(max)
}

// FormatAmount renders a monetary amount with exactly 2 decimals
func FormatAmount(d decimal.Decimal) string {
	return Round2(d).StringFixed(2)
}
