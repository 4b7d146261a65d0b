package coupon

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func activeCoupon(kind Kind, value string) Coupon {
	return Coupon{
		ID:        uuid.New(),
		Code:      "PROMO",
		Kind:      kind,
		Value:     d(value),
		Active:    true,
		StartsAt:  testNow.Add(-24 * time.Hour),
		ExpiresAt: testNow.Add(24 * time.Hour),
	}
}

func item(price string, qty int32) CartItem {
	p := d(price)
	return CartItem{
		ProductID: uuid.New(),
		UnitPrice: p,
		Qty:       qty,
		LineTotal: p.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestEvaluatePercentageCappedAndFloored(t *testing.T) {
	c := activeCoupon(KindPercentage, "10")
	cap := d("100")
	c.MaxDiscount = &cap

	res, err := Evaluate(c, []CartItem{item("1500", 1)}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.True(t, res.Valid)
	// 10% of 1500 is 150, capped to 100.
	require.Equal(t, "100", res.Discount.String())
	require.Equal(t, "1400", res.FinalCartTotal.String())
}

func TestEvaluatePercentageFloorsToWholeRupee(t *testing.T) {
	c := activeCoupon(KindPercentage, "10")
	res, err := Evaluate(c, []CartItem{item("999.99", 1)}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	// 10% of 999.99 rounds to 100.00, floors to 100; final floors too.
	require.Equal(t, "100", res.Discount.String())
	require.Equal(t, "899", res.FinalCartTotal.String())
}

func TestEvaluateFlat(t *testing.T) {
	c := activeCoupon(KindFlat, "200")
	res, err := Evaluate(c, []CartItem{item("150", 1)}, Usage{}, "COD", testNow)
	require.NoError(t, err)
	// Flat discount never exceeds the cart total.
	require.Equal(t, "150", res.Discount.String())
	require.Equal(t, "0", res.FinalCartTotal.String())
}

func TestEvaluateFreeShipping(t *testing.T) {
	c := activeCoupon(KindFreeShipping, "0")
	res, err := Evaluate(c, []CartItem{item("300", 1)}, Usage{}, "COD", testNow)
	require.NoError(t, err)
	require.True(t, res.FreeShipping)
	require.True(t, res.Discount.IsZero())
	require.Equal(t, "300", res.FinalCartTotal.String())
}

func TestEvaluateBOGOCheapestFree(t *testing.T) {
	// Three units total at mixed prices: one free unit, the cheapest.
	a := item("300", 1)
	b := item("120", 1)
	cheap := item("80", 1)
	c := activeCoupon(KindBOGO, "0")

	res, err := Evaluate(c, []CartItem{a, b, cheap}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.Equal(t, "80", res.Discount.String())
	require.Len(t, res.FreeItems, 1)
	require.Equal(t, cheap.ProductID, res.FreeItems[0].ProductID)
	require.Equal(t, int32(1), res.FreeItems[0].Qty)
	require.Equal(t, "420", res.FinalCartTotal.String())
}

func TestEvaluateBOGOSpansLines(t *testing.T) {
	// Four units: two free, allocation spills from the cheapest line
	// into the next one.
	cheap := item("50", 1)
	mid := item("90", 2)
	dear := item("400", 1)
	c := activeCoupon(KindBOGO, "0")

	res, err := Evaluate(c, []CartItem{dear, mid, cheap}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	// 50 + one of the 90s.
	require.Equal(t, "140", res.Discount.String())
	require.Len(t, res.FreeItems, 2)
}

func TestEvaluateBOGORequiresTwoUnits(t *testing.T) {
	c := activeCoupon(KindBOGO, "0")
	_, err := Evaluate(c, []CartItem{item("300", 1)}, Usage{}, "PREPAID", testNow)
	require.ErrorIs(t, err, ErrInsufficientQuantity)
}

func TestEvaluateBOGOCategoryScoped(t *testing.T) {
	catID := uuid.New()
	in1 := item("100", 1)
	in1.CategoryID = &catID
	in2 := item("60", 1)
	in2.CategoryID = &catID
	out := item("10", 5)

	c := activeCoupon(KindBOGO, "0")
	c.Conditions.AllowedCategories = []uuid.UUID{catID}

	res, err := Evaluate(c, []CartItem{out, in1, in2}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	// Only the two in-category units count: one free, the 60.
	require.Equal(t, "60", res.Discount.String())
}

func TestEvaluateBuyXGetY(t *testing.T) {
	c := activeCoupon(KindBuyXGetY, "150")
	c.Conditions.BuyX = 3

	_, err := Evaluate(c, []CartItem{item("200", 2)}, Usage{}, "PREPAID", testNow)
	require.ErrorIs(t, err, ErrBuyQuantityNotMet)

	res, err := Evaluate(c, []CartItem{item("200", 3)}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.Equal(t, "150", res.Discount.String())

	// Six units still grant the value once.
	res, err = Evaluate(c, []CartItem{item("200", 6)}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.Equal(t, "150", res.Discount.String())
}

func TestEvaluateCategorySpecific(t *testing.T) {
	catID := uuid.New()
	scoped := item("500", 1)
	scoped.CategoryID = &catID
	other := item("1000", 1)

	c := activeCoupon(KindCategorySpecific, "20")
	c.Conditions.AllowedCategories = []uuid.UUID{catID}

	res, err := Evaluate(c, []CartItem{scoped, other}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	// 20% of the scoped 500 only.
	require.Equal(t, "100", res.Discount.String())
	require.Equal(t, []uuid.UUID{scoped.ProductID}, res.AppliedProductIDs)
}

func TestEvaluateCategorySpecificNoEligible(t *testing.T) {
	c := activeCoupon(KindCategorySpecific, "20")
	c.Conditions.AllowedCategories = []uuid.UUID{uuid.New()}
	_, err := Evaluate(c, []CartItem{item("1000", 1)}, Usage{}, "PREPAID", testNow)
	require.ErrorIs(t, err, ErrNoEligibleProducts)
}

func TestEvaluateProductSpecificExclusion(t *testing.T) {
	wanted := item("400", 1)
	banned := item("600", 1)

	c := activeCoupon(KindProductSpecific, "50")
	c.Conditions.AllowedProducts = []uuid.UUID{wanted.ProductID, banned.ProductID}
	c.Conditions.ExcludedProducts = []uuid.UUID{banned.ProductID}

	res, err := Evaluate(c, []CartItem{wanted, banned}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.Equal(t, "200", res.Discount.String())
}

func TestEvaluateMinCartValueKind(t *testing.T) {
	c := activeCoupon(KindMinCartValue, "75")
	min := d("500")
	c.MinCartValue = &min

	_, err := Evaluate(c, []CartItem{item("499.99", 1)}, Usage{}, "PREPAID", testNow)
	require.ErrorIs(t, err, ErrMinCartValueNotMet)

	res, err := Evaluate(c, []CartItem{item("500", 1)}, Usage{}, "PREPAID", testNow)
	require.NoError(t, err)
	require.Equal(t, "75", res.Discount.String())
}

func TestEvaluateGuardOrder(t *testing.T) {
	items := []CartItem{item("100", 1)}

	t.Run("inactive wins over expiry", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		c.Active = false
		c.ExpiresAt = testNow.Add(-time.Hour)
		_, err := Evaluate(c, items, Usage{}, "COD", testNow)
		require.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		c.StartsAt = testNow.Add(time.Hour)
		_, err := Evaluate(c, items, Usage{}, "COD", testNow)
		require.ErrorIs(t, err, ErrCouponNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		c.ExpiresAt = testNow.Add(-time.Hour)
		_, err := Evaluate(c, items, Usage{}, "COD", testNow)
		require.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("exhausted before per-user", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		one := int32(1)
		c.UsageLimit = &one
		c.PerUserLimit = &one
		_, err := Evaluate(c, items, Usage{GlobalUses: 1, UserUses: 1}, "COD", testNow)
		require.ErrorIs(t, err, ErrCouponExhausted)
	})

	t.Run("per-user limit", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		one := int32(1)
		c.PerUserLimit = &one
		_, err := Evaluate(c, items, Usage{UserUses: 1}, "COD", testNow)
		require.ErrorIs(t, err, ErrUserLimitReached)
	})

	t.Run("min cart before payment method", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		min := d("500")
		c.MinCartValue = &min
		c.Conditions.PaymentMethod = "PREPAID"
		_, err := Evaluate(c, items, Usage{}, "COD", testNow)
		require.ErrorIs(t, err, ErrMinCartValueNotMet)
	})

	t.Run("payment method case-insensitive", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		c.Conditions.PaymentMethod = "prepaid"
		_, err := Evaluate(c, items, Usage{}, "COD", testNow)
		require.ErrorIs(t, err, ErrPaymentMethodRestricted)

		res, err := Evaluate(c, items, Usage{}, "PREPAID", testNow)
		require.NoError(t, err)
		require.True(t, res.Valid)
	})

	t.Run("first order only", func(t *testing.T) {
		c := activeCoupon(KindFlat, "10")
		c.Conditions.FirstOrderOnly = true
		_, err := Evaluate(c, items, Usage{PriorOrders: 2}, "COD", testNow)
		require.ErrorIs(t, err, ErrNotFirstOrder)
	})
}

func TestEvaluateNoLimitsIgnoresUsage(t *testing.T) {
	c := activeCoupon(KindFlat, "10")
	res, err := Evaluate(c, []CartItem{item("100", 1)}, Usage{GlobalUses: 9999, UserUses: 42}, "COD", testNow)
	require.NoError(t, err)
	require.Equal(t, "10", res.Discount.String())
}
