package coupon

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	KindPercentage       Kind = "PERCENTAGE"
	KindFlat             Kind = "FLAT"
	KindFreeShipping     Kind = "FREE_SHIPPING"
	KindCategorySpecific Kind = "CATEGORY_SPECIFIC"
	KindProductSpecific  Kind = "PRODUCT_SPECIFIC"
	KindBOGO             Kind = "BOGO"
	KindBuyXGetY         Kind = "BUY_X_GET_Y"
	KindMinCartValue     Kind = "MIN_CART_VALUE"
)

// Guard and strategy failures. These are expected, frequent outcomes
// and travel through the normal error-result channel.
var (
	// ErrCouponNotFound is returned when no coupon exists for the code.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrCouponInactive is returned for coupons disabled by an admin.
	ErrCouponInactive = errors.New("coupon is not active")
	// ErrCouponNotYetValid is returned before the validity window opens.
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	// ErrCouponExpired is returned after the validity window closes.
	ErrCouponExpired = errors.New("coupon has expired")
	// ErrCouponExhausted indicates the global usage quota is spent.
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	// ErrUserLimitReached indicates the caller exceeded the per-user allowance.
	ErrUserLimitReached = errors.New("coupon per-user limit reached")
	// ErrMinCartValueNotMet indicates the cart total is below the coupon minimum.
	ErrMinCartValueNotMet = errors.New("minimum cart value not met")
	// ErrPaymentMethodRestricted indicates the coupon requires a different payment method.
	ErrPaymentMethodRestricted = errors.New("coupon restricted to another payment method")
	// ErrNotFirstOrder indicates a first-order-only coupon on a returning customer.
	ErrNotFirstOrder = errors.New("coupon valid only on first order")
	// ErrNoEligibleProducts indicates no cart line matches the coupon scope.
	ErrNoEligibleProducts = errors.New("no eligible products in cart")
	// ErrInsufficientQuantity indicates too few eligible units for BOGO.
	ErrInsufficientQuantity = errors.New("not enough eligible items for offer")
	// ErrBuyQuantityNotMet indicates the buy-X threshold was not reached.
	ErrBuyQuantityNotMet = errors.New("buy quantity requirement not met")
)

// Conditions narrows where a coupon applies. It is stored as JSON on
// the coupon row but modelled here as a typed struct so each strategy
// branch only reads the fields it actually uses.
type Conditions struct {
	AllowedCategories  []uuid.UUID `json:"allowedCategories,omitempty"`
	ExcludedCategories []uuid.UUID `json:"excludedCategories,omitempty"`
	AllowedProducts    []uuid.UUID `json:"allowedProducts,omitempty"`
	ExcludedProducts   []uuid.UUID `json:"excludedProducts,omitempty"`
	PaymentMethod      string      `json:"paymentMethod,omitempty"`
	FirstOrderOnly     bool        `json:"firstOrderOnly,omitempty"`
	BuyX               int32       `json:"buyX,omitempty"`
}

// Coupon is the evaluated form of a stored coupon.
type Coupon struct {
	ID           uuid.UUID
	Code         string
	Kind         Kind
	Value        decimal.Decimal
	MaxDiscount  *decimal.Decimal
	MinCartValue *decimal.Decimal
	UsageLimit   *int32
	PerUserLimit *int32
	StartsAt     time.Time
	ExpiresAt    time.Time
	Active       bool
	Conditions   Conditions
}

// CartItem is one priced cart line as seen by the coupon engine.
// LineTotal is the tax-inclusive final amount of the line.
type CartItem struct {
	ProductID  uuid.UUID
	CategoryID *uuid.UUID
	Title      string
	UnitPrice  decimal.Decimal
	Qty        int32
	LineTotal  decimal.Decimal
}

// FreeItem records a unit granted free by a BOGO allocation, for
// receipt display.
type FreeItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Qty       int32           `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Usage carries the redemption counters consulted by the guard chain.
// Counts come from the append-only usage ledger, not the denormalized
// counter on the coupon row.
type Usage struct {
	GlobalUses  int64
	UserUses    int64
	PriorOrders int64
}

// Result is the outcome of a successful evaluation.
type Result struct {
	Valid             bool
	CouponID          uuid.UUID
	Code              string
	Discount          decimal.Decimal
	CartTotal         decimal.Decimal
	FinalCartTotal    decimal.Decimal
	FreeItems         []FreeItem
	AppliedProductIDs []uuid.UUID
	FreeShipping      bool
}

// FromModel converts a stored coupon row into its evaluated form,
// decoding the conditions document.
func FromModel(m dbgen.Coupon) (Coupon, error) {
	c := Coupon{
		Code:   m.Code,
		Kind:   Kind(m.Kind),
		Value:  m.Value,
		Active: m.Status == dbgen.CouponStatusACTIVE,
	}
	if m.ID.Valid {
		c.ID = uuid.UUID(m.ID.Bytes)
	}
	if m.MaxDiscount.Valid {
		v := m.MaxDiscount.Decimal
		c.MaxDiscount = &v
	}
	if m.MinCartValue.Valid {
		v := m.MinCartValue.Decimal
		c.MinCartValue = &v
	}
	if m.UsageLimit.Valid {
		v := m.UsageLimit.Int32
		c.UsageLimit = &v
	}
	if m.PerUserLimit.Valid {
		v := m.PerUserLimit.Int32
		c.PerUserLimit = &v
	}
	if m.StartsAt.Valid {
		c.StartsAt = m.StartsAt.Time
	}
	if m.ExpiresAt.Valid {
		c.ExpiresAt = m.ExpiresAt.Time
	}
	if len(m.Conditions) > 0 {
		if err := json.Unmarshal(m.Conditions, &c.Conditions); err != nil {
			return Coupon{}, fmt.Errorf("coupon %s: decode conditions: %w", m.Code, err)
		}
	}
	return c, nil
}
