package providers

import (
	"github.com/quickbill/quickbill/internal/providers/pdf"
	"github.com/quickbill/quickbill/internal/providers/suggest"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
	suggest.Module,
)
