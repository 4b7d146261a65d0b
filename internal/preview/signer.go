// Package preview issues and verifies signed order previews. A preview
// freezes every amount the server computed for a cart; the commit step
// accepts the frozen numbers only when the signature still matches, which
// makes client-side tampering detectable without recomputing anything.
package preview

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrPriceTampered indicates the payload no longer matches its signature.
	ErrPriceTampered = errors.New("preview payload does not match signature")
	// ErrPreviewExpired indicates the preview is older than the allowed window.
	ErrPreviewExpired = errors.New("preview has expired")
)

// Line is one frozen order line inside a signed payload. Amounts are
// fixed-point strings so the serialization is byte-stable.
type Line struct {
	ProductID string `json:"productId"`
	VariantID string `json:"selectedVariantId,omitempty"`
	Title     string `json:"title"`
	SKU       string `json:"sku,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Qty       int32  `json:"qty"`
	UnitPrice string `json:"unitPrice"`
	Base      string `json:"base"`
	Tax       string `json:"tax"`
	CGST      string `json:"cgst"`
	SGST      string `json:"sgst"`
	Final     string `json:"final"`
}

// Payload is the canonical document covered by the signature.
type Payload struct {
	Lines          []Line `json:"lines"`
	Subtotal       string `json:"subtotal"`
	TotalTax       string `json:"totalTax"`
	TotalCGST      string `json:"totalCgst"`
	TotalSGST      string `json:"totalSgst"`
	DeliveryCharge string `json:"deliveryCharge"`
	PlatformFee    string `json:"platformFee"`
	CouponCode     string `json:"couponCode,omitempty"`
	CouponDiscount string `json:"couponDiscount"`
	GrandTotal     string `json:"grandTotal"`
	PaymentMethod  string `json:"paymentMethod"`
	IssuedAt       int64  `json:"issuedAt"`
}

// Signer produces and checks HMAC-SHA256 signatures over preview payloads.
type Signer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

// Sign stamps the payload with the current time and returns the hex signature.
func (s *Signer) Sign(p *Payload) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("preview signer has no secret")
	}
	p.IssuedAt = s.now().Unix()
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return s.mac(body), nil
}

// Verify checks the signature in constant time, then the freshness window.
// The tamper check runs first so an attacker cannot distinguish a forged
// payload from a stale one.
func (s *Signer) Verify(p Payload, signature string) error {
	if len(s.Secret) == 0 {
		return errors.New("preview signer has no secret")
	}
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	expected := s.mac(body)
	if signature == "" || !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrPriceTampered
	}
	if s.TTL > 0 {
		issued := time.Unix(p.IssuedAt, 0)
		if s.now().After(issued.Add(s.TTL)) {
			return ErrPreviewExpired
		}
	}
	return nil
}

func (s *Signer) mac(body []byte) string {
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
