package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bazaarlabs/backend-bazaar/internal/money"
	"github.com/bazaarlabs/backend-bazaar/internal/tax"
)

var (
	// ErrInvalidQuantity is returned when a line carries a quantity below one.
	ErrInvalidQuantity = errors.New("pricing: quantity must be at least 1")
	// ErrInvalidUnitPrice is returned when a line carries a negative unit price.
	ErrInvalidUnitPrice = errors.New("pricing: unit price must not be negative")
	// ErrInvalidTaxRate is returned when a line carries a negative tax rate.
	ErrInvalidTaxRate = errors.New("pricing: tax rate must not be negative")
)

// LineItem is one (product, quantity) pair ready for calculation. Display
// metadata is carried only so order items can be snapshotted; it never
// participates in arithmetic.
type LineItem struct {
	ProductID  uuid.UUID
	CategoryID *uuid.UUID
	VariantID  string
	Title      string
	ImageURL   string
	SKU        string
	Qty        int32
	UnitPrice  decimal.Decimal
	TaxRate    decimal.Decimal
	PriceMode  tax.Mode
}

// ProcessedLine is the full monetary breakdown of a single line.
type ProcessedLine struct {
	ProductID  uuid.UUID
	CategoryID *uuid.UUID
	VariantID  string
	Title      string
	ImageURL   string
	SKU        string
	Qty        int32
	UnitPrice  decimal.Decimal
	Base       decimal.Decimal
	Tax        decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	Final      decimal.Decimal
}

// ComputeLine converts a line item into its monetary breakdown. Invalid
// input rejects the whole calculation; clamping a bad quantity or price
// to zero would silently under-charge.
func ComputeLine(item LineItem) (ProcessedLine, error) {
	if item.Qty < 1 {
		return ProcessedLine{}, fmt.Errorf("product %s: %w", item.ProductID, ErrInvalidQuantity)
	}
	if item.UnitPrice.IsNegative() {
		return ProcessedLine{}, fmt.Errorf("product %s: %w", item.ProductID, ErrInvalidUnitPrice)
	}
	if item.TaxRate.IsNegative() {
		return ProcessedLine{}, fmt.Errorf("product %s: %w", item.ProductID, ErrInvalidTaxRate)
	}

	gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Qty)))

	var base, taxAmt decimal.Decimal
	switch item.PriceMode {
	case tax.ModeExclusive:
		base = money.Round2(gross)
		taxAmt = money.Percent(base, item.TaxRate)
	default:
		divisor := decimal.NewFromInt(1).Add(item.TaxRate.Div(decimal.NewFromInt(100)))
		base = money.Round2(gross.Div(divisor))
		taxAmt = money.Round2(gross.Sub(base))
	}

	cgst := money.Round2(taxAmt.Div(decimal.NewFromInt(2)))
	// SGST takes the remainder so an odd-paise tax amount still
	// satisfies cgst + sgst == tax exactly.
	sgst := money.Round2(taxAmt.Sub(cgst))

	return ProcessedLine{
		ProductID:  item.ProductID,
		CategoryID: item.CategoryID,
		VariantID:  item.VariantID,
		Title:      item.Title,
		ImageURL:   item.ImageURL,
		SKU:        item.SKU,
		Qty:        item.Qty,
		UnitPrice:  item.UnitPrice,
		Base:       base,
		Tax:        taxAmt,
		CGST:       cgst,
		SGST:       sgst,
		Final:      money.Round2(base.Add(taxAmt)),
	}, nil
}
