package document

import (
	"github.com/quickbill/quickbill/internal/document/service"
	"github.com/quickbill/quickbill/internal/render"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
