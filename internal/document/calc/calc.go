// Package calc computes per-item amounts and document totals.
//
// Every function here is PURE:
// - No side effects
// - No DB access
// - Fully deterministic for a given item sequence
//
// Arithmetic is plain IEEE-754 float64 throughout. Invalid input is never
// rejected; negative results are clamped to zero instead of raised as errors
// so a live-editing client can keep calling through partial input.
package calc

import (
	"math"

	"github.com/quickbill/quickbill/internal/document/domain"
)

// Totals are the document-level aggregates, recomputed from the full line-item
// sequence on every mutation.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	DiscountTotal float64 `json:"discount_total"`
	TaxTotal      float64 `json:"tax_total"`
	Total         float64 `json:"total"`
}

// Amount returns the post-discount amount for a single line item.
// Order of operations is fixed: discount first, then the clamp. Tax is not
// part of the per-item amount.
func Amount(item domain.LineItem) float64 {
	amount := item.Quantity * item.Rate

	if item.Discount != nil && *item.Discount > 0 {
		if item.EffectiveDiscountType() == domain.DiscountFlat {
			amount -= *item.Discount
		} else {
			amount *= 1 - *item.Discount/100
		}
	}

	return math.Max(0, amount)
}

// Compute aggregates the four document totals from the full item sequence in
// a single pass. Summation is commutative, so item order never affects the
// result, and calling it twice on the same sequence is bit-identical.
//
// The discount total accumulates each item's raw discount contribution
// (percentage against that item's own quantity*rate, flat taken verbatim)
// without the per-item clamp, while the tax base is the clamped Amount. In
// extreme clamped cases subtotal-discountTotal can therefore diverge from the
// sum of item amounts; that asymmetry is intentional and pinned by tests.
func Compute(items []domain.LineItem) Totals {
	var subtotal, discountTotal, taxTotal float64

	for _, item := range items {
		base := item.Quantity * item.Rate
		subtotal += base

		if item.Discount != nil && *item.Discount > 0 {
			if item.EffectiveDiscountType() == domain.DiscountFlat {
				discountTotal += *item.Discount
			} else {
				discountTotal += base * (*item.Discount / 100)
			}
		}

		if item.TaxRate != nil && *item.TaxRate > 0 {
			taxTotal += Amount(item) * (*item.TaxRate / 100)
		}
	}

	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		TaxTotal:      taxTotal,
		Total:         math.Max(0, subtotal-discountTotal+taxTotal),
	}
}
