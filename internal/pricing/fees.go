package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates the supported checkout payment methods.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery.
	PaymentCOD PaymentMethod = "COD"
	// PaymentPrepaid covers all online payment channels.
	PaymentPrepaid PaymentMethod = "PREPAID"
)

// ParsePaymentMethod normalises the client-supplied payment method,
// defaulting to prepaid.
func ParsePaymentMethod(raw string) PaymentMethod {
	if strings.EqualFold(strings.TrimSpace(raw), string(PaymentCOD)) {
		return PaymentCOD
	}
	return PaymentPrepaid
}

// FeePolicy holds the delivery and platform fee constants. The values
// are injected from configuration so the engine stays testable with
// varied policies.
type FeePolicy struct {
	FreeDeliveryThreshold decimal.Decimal
	CODSurcharge          decimal.Decimal
	PlatformFee           decimal.Decimal
}

// Fees computes the delivery charge and platform fee for a cart. Carts
// at or above the free-delivery threshold ship free; below it only cash
// on delivery pays the surcharge.
func (p FeePolicy) Fees(itemsTotal decimal.Decimal, method PaymentMethod) (delivery, platform decimal.Decimal) {
	delivery = decimal.Zero
	if itemsTotal.LessThan(p.FreeDeliveryThreshold) && method == PaymentCOD {
		delivery = p.CODSurcharge
	}
	return delivery, p.PlatformFee
}
