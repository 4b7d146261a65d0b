package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Mode indicates whether a listed unit price already contains GST.
type Mode string

const (
	// ModeInclusive means the unit price embeds the tax component.
	ModeInclusive Mode = "inclusive"
	// ModeExclusive means tax is added on top of the unit price.
	ModeExclusive Mode = "exclusive"
)

// Slabs is the set of GST rate percentages permitted by the platform.
var Slabs = []int64{0, 5, 12, 18, 28}

// IsSlab reports whether the rate belongs to the permitted slab set.
func IsSlab(rate decimal.Decimal) bool {
	for _, s := range Slabs {
		if rate.Equal(decimal.NewFromInt(s)) {
			return true
		}
	}
	return false
}

// Resolve picks the applicable GST percentage for a product. The
// product's own override wins, then the category rate, then the
// configured platform default. A nil pointer means "not configured";
// an explicit zero is a valid zero-rated override and must not fall
// through to the next source.
func Resolve(productRate, categoryRate *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if productRate != nil {
		return *productRate
	}
	if categoryRate != nil {
		return *categoryRate
	}
	return fallback
}

// ParseMode normalises a stored price mode string, defaulting to
// inclusive pricing which is how the catalog lists consumer prices.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeInclusive, "":
		return ModeInclusive, nil
	case ModeExclusive:
		return ModeExclusive, nil
	default:
		return "", fmt.Errorf("tax: unknown price mode %q", raw)
	}
}
