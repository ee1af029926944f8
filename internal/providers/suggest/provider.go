package suggest

import (
	"context"

	"github.com/quickbill/quickbill/internal/document/domain"
	"go.uber.org/fx"
)

// Suggestion is one proposed line item. Rate and Quantity are starting
// points; the caller recomputes amounts after any edit.
type Suggestion struct {
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Quantity    float64 `json:"quantity"`
}

// Provider proposes line items and expands terse descriptions. Implementations
// must be safe for concurrent use.
type Provider interface {
	SuggestLineItems(ctx context.Context, query string, docType domain.DocumentType) ([]Suggestion, error)
	ExpandDescription(ctx context.Context, text string, docType domain.DocumentType) (string, error)
}

var Module = fx.Module("providers.suggest",
	fx.Provide(New),
)
