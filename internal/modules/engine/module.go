package engine

import (
	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/modules/engine/service"
)

func Module() fx.Option {
	return fx.Module("engine",
		fx.Provide(
			service.NewFactory, // *service.Factory
		),
	)
}
