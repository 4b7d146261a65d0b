package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResolveOrder(t *testing.T) {
	def := decimal.NewFromInt(18)
	productRate := decimal.NewFromInt(5)
	categoryRate := decimal.NewFromInt(12)

	require.True(t, Resolve(&productRate, &categoryRate, def).Equal(productRate))
	require.True(t, Resolve(nil, &categoryRate, def).Equal(categoryRate))
	require.True(t, Resolve(nil, nil, def).Equal(def))
}

func TestResolveZeroIsConfigured(t *testing.T) {
	// A zero-rated product override must not fall through to the
	// category or default rate.
	zero := decimal.Zero
	categoryRate := decimal.NewFromInt(18)
	require.True(t, Resolve(&zero, &categoryRate, decimal.NewFromInt(18)).IsZero())
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("exclusive")
	require.NoError(t, err)
	require.Equal(t, ModeExclusive, mode)

	mode, err = ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeInclusive, mode)

	_, err = ParseMode("vat")
	require.Error(t, err)
}

func TestIsSlab(t *testing.T) {
	require.True(t, IsSlab(decimal.NewFromInt(18)))
	require.True(t, IsSlab(decimal.Zero))
	require.False(t, IsSlab(decimal.NewFromInt(7)))
}
