package service

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

const DefaultShippingFee int64 = 79

var DefaultTaxRate = decimal.RequireFromString("0.05")

// A Pricer computes cart totals.
//
// Tax is rounded half away from zero to whole currency units, which for
// the non-negative subtotals of a cart is round-half-up: 1010 at 5%
// yields 51, not 50.
type Pricer struct {
	ShippingFee int64
	TaxRate     decimal.Decimal
}

func DefaultPricer() Pricer {
	return Pricer{ShippingFee: DefaultShippingFee, TaxRate: DefaultTaxRate}
}

// Summarize prices the lines. Shipping is charged only for a non-zero subtotal.
func (p Pricer) Summarize(lines []domain.CartLine) domain.Summary {
	var (
		subtotal int64
		count    int
	)
	for _, l := range lines {
		subtotal += l.LineTotal()
		count += l.Qty
	}

	var shipping int64
	if subtotal > 0 {
		shipping = p.ShippingFee
	}

	tax := p.Tax(subtotal)

	return domain.Summary{
		Items:     append([]domain.CartLine(nil), lines...),
		ItemCount: count,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal + shipping + tax,
	}
}

// Tax returns subtotal multiplied by the rate, rounded half-up.
func (p Pricer) Tax(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(p.TaxRate).Round(0).IntPart()
}
