package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// Round2 rounds a monetary amount half-up to two decimal places
// (paise precision). Every derived monetary value must pass through
// Round2 before it participates in further arithmetic so that
// recomputed totals are reproducible bit-for-bit across call sites.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Add(half).Floor().Div(hundred)
}

// FloorUnit truncates an amount down to whole currency units.
// Coupon discounts and discounted cart totals are settled in whole
// rupees, never fractional.
func FloorUnit(d decimal.Decimal) decimal.Decimal {
	return d.Floor()
}

// Percent returns the rounded percentage share of an amount,
// e.g. Percent(1500, 10) == 150.00.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(pct).Div(hundred))
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThanOrEqual(b) {
		return a
	}
	return b
}
