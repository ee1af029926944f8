// Package builder applies line-item edits as pure functions over an
// immutable snapshot. Every operation returns a new slice with derived
// amounts recomputed; callers then recompute document totals from the result
// and atomically replace whatever state they hold. Nothing here mutates its
// input.
package builder

import (
	"github.com/quickbill/quickbill/internal/document/calc"
	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/document/format"
)

// NewLineItem returns a blank row with the standard defaults: quantity 1,
// rate 0, amount 0.
func NewLineItem() domain.LineItem {
	return domain.LineItem{
		ID:       format.NewItemID(),
		Quantity: 1,
	}
}

// FromRequest builds a line item from caller-supplied fields and computes its
// amount. Suggested items from the assist provider go through this exact
// constructor; they get no special trust path.
func FromRequest(req domain.AddLineItemRequest) domain.LineItem {
	item := domain.LineItem{
		ID:           format.NewItemID(),
		Description:  req.Description,
		Quantity:     1,
		Rate:         req.Rate,
		TaxRate:      req.TaxRate,
		Discount:     req.Discount,
		DiscountType: req.DiscountType,
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	item.Amount = calc.Amount(item)
	return item
}

// Append returns a new slice with item added at the end.
func Append(items []domain.LineItem, item domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items)+1)
	out = append(out, items...)
	out = append(out, item)
	return out
}

// ApplyEdit returns a new slice where the item with the given id has the
// patch applied and its amount recomputed. All other items are carried over
// unchanged. An unknown id returns the sequence as-is; the found flag tells
// the caller whether anything matched.
func ApplyEdit(items []domain.LineItem, id string, patch domain.LineItemPatch) ([]domain.LineItem, bool) {
	out := make([]domain.LineItem, len(items))
	found := false

	for i, item := range items {
		if item.ID != id {
			out[i] = item
			continue
		}
		found = true

		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.Rate != nil {
			item.Rate = *patch.Rate
		}
		if patch.TaxRate != nil {
			item.TaxRate = patch.TaxRate
		}
		if patch.Discount != nil {
			item.Discount = patch.Discount
		}
		if patch.DiscountType != nil {
			item.DiscountType = *patch.DiscountType
		}

		item.Amount = calc.Amount(item)
		out[i] = item
	}

	return out, found
}

// Remove returns a new slice without the item carrying the given id.
func Remove(items []domain.LineItem, id string) ([]domain.LineItem, bool) {
	out := make([]domain.LineItem, 0, len(items))
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}
