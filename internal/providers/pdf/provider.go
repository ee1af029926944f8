package pdf

import (
	"context"
	"io"

	"github.com/quickbill/quickbill/internal/document/domain"
	"go.uber.org/fx"
)

// Provider renders a finished document to PDF. Consumers receive computed
// totals and formatted strings; nothing here re-does arithmetic.
type Provider interface {
	GenerateDocument(ctx context.Context, doc domain.Document) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateDocument(ctx context.Context, doc domain.Document) (io.Reader, error) {
	return nil, nil
}
