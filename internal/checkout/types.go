package checkout

import (
	"github.com/bazaarlabs/backend-bazaar/internal/coupon"
	"github.com/bazaarlabs/backend-bazaar/internal/preview"
)

// PreviewItem is one cart entry in a preview request. Quantities only;
// prices always come from the catalog. The variant is display metadata
// carried through to the order item snapshot, it never affects pricing.
type PreviewItem struct {
	ProductID         string `json:"productId"`
	SelectedVariantID string `json:"selectedVariantId,omitempty"`
	Qty               int32  `json:"qty"`
}

// PreviewInput is the request body for POST /checkout/preview.
type PreviewInput struct {
	Items         []PreviewItem `json:"items"`
	CouponCode    string        `json:"couponCode"`
	PaymentMethod string        `json:"paymentMethod"`
}

// CouponView reports what happened to the requested coupon. A coupon that
// fails a guard degrades the preview to zero discount instead of failing it;
// Reason tells the shopper why.
type CouponView struct {
	Applied      bool              `json:"applied"`
	Code         string            `json:"code,omitempty"`
	Reason       string            `json:"reason,omitempty"`
	Discount     string            `json:"discount"`
	FreeShipping bool              `json:"freeShipping,omitempty"`
	FreeItems    []coupon.FreeItem `json:"freeItems,omitempty"`
}

// PreviewOutput carries the signed payload the client must echo at commit.
type PreviewOutput struct {
	Preview preview.Payload `json:"preview"`
	Hash    string          `json:"hash"`
	Coupon  CouponView      `json:"coupon"`
}

// CommitInput is the request body for POST /checkout. The preview payload
// comes back verbatim together with its signature.
type CommitInput struct {
	Preview   preview.Payload `json:"preview"`
	Hash      string          `json:"hash"`
	AddressID string          `json:"addressId"`
}

// CommitOutput describes the created order.
type CommitOutput struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	TrackingID  string `json:"trackingId"`
	Status      string `json:"status"`
	GrandTotal  string `json:"grandTotal"`
}
