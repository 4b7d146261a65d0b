package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/money"
)

// Summary aggregates every monetary component of an order. The per-line
// final amounts remain receipt-accurate; the coupon discount is a
// summary-level adjustment only.
type Summary struct {
	Lines          []ProcessedLine
	Subtotal       decimal.Decimal
	TotalTax       decimal.Decimal
	TotalCGST      decimal.Decimal
	TotalSGST      decimal.Decimal
	DeliveryCharge decimal.Decimal
	PlatformFee    decimal.Decimal
	CouponDiscount decimal.Decimal
	GrandTotal     decimal.Decimal
}

// ItemsTotal is the tax-inclusive total of the processed lines, the
// base against which delivery policy and coupon eligibility are judged.
func ItemsTotal(lines []ProcessedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Final)
	}
	return money.Round2(total)
}

// Aggregate folds processed lines, fees and the coupon discount into a
// single summary. A free-shipping coupon zeroes the delivery charge
// here rather than contributing a discount amount, so it is never
// double counted. The discount is capped at the pre-discount payable
// amount so the grand total can never go negative.
func Aggregate(lines []ProcessedLine, delivery, platform, discount decimal.Decimal, freeShipping bool) Summary {
	subtotal, totalTax, cgst, sgst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Base)
		totalTax = totalTax.Add(l.Tax)
		cgst = cgst.Add(l.CGST)
		sgst = sgst.Add(l.SGST)
	}
	subtotal = money.Round2(subtotal)
	totalTax = money.Round2(totalTax)
	cgst = money.Round2(cgst)
	sgst = money.Round2(sgst)

	if freeShipping {
		delivery = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	payable := money.Round2(subtotal.Add(totalTax).Add(delivery).Add(platform))
	discount = money.Min(discount, payable)

	return Summary{
		Lines:          lines,
		Subtotal:       subtotal,
		TotalTax:       totalTax,
		TotalCGST:      cgst,
		TotalSGST:      sgst,
		DeliveryCharge: delivery,
		PlatformFee:    platform,
		CouponDiscount: discount,
		GrandTotal:     money.Round2(payable.Sub(discount)),
	}
}
