package coupon

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/money"
)

// Evaluate runs the guard chain and the discount strategy for a coupon
// against a priced cart. The guards run in a fixed order and the first
// failure short-circuits the rest. The function is pure: all lookups
// happen before it is invoked.
func Evaluate(c Coupon, items []CartItem, usage Usage, paymentMethod string, now time.Time) (Result, error) {
	if !c.Active {
		return Result{}, ErrCouponInactive
	}
	if !c.StartsAt.IsZero() && now.Before(c.StartsAt) {
		return Result{}, ErrCouponNotYetValid
	}
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return Result{}, ErrCouponExpired
	}
	if c.UsageLimit != nil && usage.GlobalUses >= int64(*c.UsageLimit) {
		return Result{}, ErrCouponExhausted
	}
	if c.PerUserLimit != nil && usage.UserUses >= int64(*c.PerUserLimit) {
		return Result{}, ErrUserLimitReached
	}

	cartTotal := decimal.Zero
	for _, it := range items {
		cartTotal = cartTotal.Add(it.LineTotal)
	}
	cartTotal = money.Round2(cartTotal)

	if c.MinCartValue != nil && cartTotal.LessThan(*c.MinCartValue) {
		return Result{}, ErrMinCartValueNotMet
	}
	if c.Conditions.PaymentMethod != "" && !strings.EqualFold(c.Conditions.PaymentMethod, paymentMethod) {
		return Result{}, ErrPaymentMethodRestricted
	}
	if c.Conditions.FirstOrderOnly && usage.PriorOrders > 0 {
		return Result{}, ErrNotFirstOrder
	}

	res := Result{
		Valid:     true,
		CouponID:  c.ID,
		Code:      c.Code,
		CartTotal: cartTotal,
	}

	var discount decimal.Decimal
	switch c.Kind {
	case KindPercentage:
		discount = money.Percent(cartTotal, c.Value)

	case KindFlat:
		discount = c.Value

	case KindFreeShipping:
		// The caller zeroes the delivery charge; contributing a
		// discount amount here would double count it.
		res.FreeShipping = true
		discount = decimal.Zero

	case KindCategorySpecific:
		applicable, ids := scopedSubtotal(items, c.Conditions, matchCategory)
		if applicable.IsZero() {
			return Result{}, ErrNoEligibleProducts
		}
		discount = money.Percent(applicable, c.Value)
		res.AppliedProductIDs = ids

	case KindProductSpecific:
		applicable, ids := scopedSubtotal(items, c.Conditions, matchProduct)
		if applicable.IsZero() {
			return Result{}, ErrNoEligibleProducts
		}
		discount = money.Percent(applicable, c.Value)
		res.AppliedProductIDs = ids

	case KindBOGO:
		var err error
		discount, res.FreeItems, err = bogoDiscount(items, c.Conditions)
		if err != nil {
			return Result{}, err
		}

	case KindBuyXGetY:
		var totalQty int32
		for _, it := range items {
			totalQty += it.Qty
		}
		if totalQty < c.Conditions.BuyX {
			return Result{}, ErrBuyQuantityNotMet
		}
		// The stored value is applied flat once the threshold is met;
		// it does not scale with the number of qualifying groups.
		discount = c.Value

	case KindMinCartValue:
		min := decimal.Zero
		if c.MinCartValue != nil {
			min = *c.MinCartValue
		}
		if cartTotal.LessThan(min) {
			return Result{}, ErrMinCartValueNotMet
		}
		discount = c.Value

	default:
		return Result{}, ErrCouponNotFound
	}

	if c.MaxDiscount != nil {
		discount = money.Min(discount, *c.MaxDiscount)
	}
	discount = money.Min(discount, cartTotal)
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	// Discounts settle in whole rupees: truncate, never round up.
	res.Discount = money.FloorUnit(discount)
	res.FinalCartTotal = money.FloorUnit(cartTotal.Sub(res.Discount))
	return res, nil
}

func matchCategory(it CartItem, cond Conditions) bool {
	if it.CategoryID == nil {
		return false
	}
	if containsUUID(cond.ExcludedCategories, *it.CategoryID) {
		return false
	}
	return containsUUID(cond.AllowedCategories, *it.CategoryID)
}

func matchProduct(it CartItem, cond Conditions) bool {
	if containsUUID(cond.ExcludedProducts, it.ProductID) {
		return false
	}
	return containsUUID(cond.AllowedProducts, it.ProductID)
}

func scopedSubtotal(items []CartItem, cond Conditions, match func(CartItem, Conditions) bool) (decimal.Decimal, []uuid.UUID) {
	total := decimal.Zero
	var ids []uuid.UUID
	for _, it := range items {
		if match(it, cond) {
			total = total.Add(it.LineTotal)
			ids = append(ids, it.ProductID)
		}
	}
	return money.Round2(total), ids
}

// bogoDiscount frees floor(eligibleQty/2) units, cheapest first, so the
// granted discount is the minimum possible for the cart.
func bogoDiscount(items []CartItem, cond Conditions) (decimal.Decimal, []FreeItem, error) {
	eligible := make([]CartItem, 0, len(items))
	for _, it := range items {
		if len(cond.AllowedCategories) > 0 && !matchCategory(it, cond) {
			continue
		}
		eligible = append(eligible, it)
	}

	var totalQty int32
	for _, it := range eligible {
		totalQty += it.Qty
	}
	if totalQty < 2 {
		return decimal.Zero, nil, ErrInsufficientQuantity
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].UnitPrice.LessThan(eligible[j].UnitPrice)
	})

	remaining := totalQty / 2
	discount := decimal.Zero
	var free []FreeItem
	for _, it := range eligible {
		if remaining <= 0 {
			break
		}
		n := it.Qty
		if n > remaining {
			n = remaining
		}
		discount = discount.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(n))))
		free = append(free, FreeItem{ProductID: it.ProductID, Title: it.Title, Qty: n, UnitPrice: it.UnitPrice})
		remaining -= n
	}
	return money.Round2(discount), free, nil
}

func containsUUID(list []uuid.UUID, id uuid.UUID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
