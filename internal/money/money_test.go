package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRound2HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"99.999", "100"},
		{"0.125", "0.13"},
		{"118", "118"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := Round2(decimal.RequireFromString(tc.in))
		require.True(t, got.Equal(decimal.RequireFromString(tc.want)), "Round2(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestFloorUnit(t *testing.T) {
	require.True(t, FloorUnit(decimal.RequireFromString("150.99")).Equal(decimal.NewFromInt(150)))
	require.True(t, FloorUnit(decimal.RequireFromString("150.01")).Equal(decimal.NewFromInt(150)))
	require.True(t, FloorUnit(decimal.NewFromInt(150)).Equal(decimal.NewFromInt(150)))
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(1500), decimal.NewFromInt(10))
	require.True(t, got.Equal(decimal.NewFromInt(150)))

	// Odd paise amounts still round deterministically.
	got = Percent(decimal.RequireFromString("99.99"), decimal.NewFromInt(18))
	require.Equal(t, "18.00", got.StringFixed(2))
}
