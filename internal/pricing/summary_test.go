package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlabs/backend-bazaar/internal/tax"
)

func testPolicy() FeePolicy {
	return FeePolicy{
		FreeDeliveryThreshold: d("499"),
		CODSurcharge:          d("50"),
		PlatformFee:           d("5"),
	}
}

func TestFeesDeliveryPolicy(t *testing.T) {
	p := testPolicy()

	delivery, platform := p.Fees(d("400"), PaymentCOD)
	require.Equal(t, "50.00", delivery.StringFixed(2))
	require.Equal(t, "5.00", platform.StringFixed(2))

	delivery, _ = p.Fees(d("400"), PaymentPrepaid)
	require.True(t, delivery.IsZero())

	delivery, _ = p.Fees(d("600"), PaymentCOD)
	require.True(t, delivery.IsZero())

	// Exactly at the threshold ships free.
	delivery, _ = p.Fees(d("499"), PaymentCOD)
	require.True(t, delivery.IsZero())
}

func mustLines(t *testing.T, items ...LineItem) []ProcessedLine {
	t.Helper()
	lines := make([]ProcessedLine, 0, len(items))
	for _, it := range items {
		line, err := ComputeLine(it)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestAggregateInvariants(t *testing.T) {
	lines := mustLines(t,
		LineItem{ProductID: uuid.New(), Qty: 1, UnitPrice: d("118"), TaxRate: d("18"), PriceMode: tax.ModeInclusive},
		LineItem{ProductID: uuid.New(), Qty: 2, UnitPrice: d("100"), TaxRate: d("5"), PriceMode: tax.ModeExclusive},
		LineItem{ProductID: uuid.New(), Qty: 1, UnitPrice: d("33.33"), TaxRate: d("12"), PriceMode: tax.ModeInclusive},
	)
	s := Aggregate(lines, d("50"), d("5"), d("100"), false)

	finals := decimal.Zero
	for _, l := range s.Lines {
		finals = finals.Add(l.Final)
	}
	require.True(t, finals.Equal(s.Subtotal.Add(s.TotalTax)),
		"sum of finals %s != subtotal+tax %s", finals, s.Subtotal.Add(s.TotalTax))
	require.True(t, s.TotalCGST.Add(s.TotalSGST).Equal(s.TotalTax))

	want := s.Subtotal.Add(s.TotalTax).Add(s.DeliveryCharge).Add(s.PlatformFee).Sub(s.CouponDiscount)
	require.True(t, s.GrandTotal.Equal(want))
}

func TestAggregateDiscountCapped(t *testing.T) {
	lines := mustLines(t,
		LineItem{ProductID: uuid.New(), Qty: 1, UnitPrice: d("118"), TaxRate: d("18"), PriceMode: tax.ModeInclusive},
	)
	// Discount far exceeding the payable amount is capped, never negative.
	s := Aggregate(lines, decimal.Zero, d("5"), d("100000"), false)
	require.True(t, s.GrandTotal.IsZero())
	require.Equal(t, "123.00", s.CouponDiscount.StringFixed(2))
}

func TestAggregateFreeShipping(t *testing.T) {
	lines := mustLines(t,
		LineItem{ProductID: uuid.New(), Qty: 1, UnitPrice: d("100"), TaxRate: d("5"), PriceMode: tax.ModeExclusive},
	)
	s := Aggregate(lines, d("50"), d("5"), decimal.Zero, true)
	require.True(t, s.DeliveryCharge.IsZero())
	require.True(t, s.CouponDiscount.IsZero())
}
