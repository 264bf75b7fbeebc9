package feed

import (
	"context"

	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/models"
	"github.com/parker-ryan1/tradestation/internal/modules/feed/service"
)

func newBarsChan() chan models.Bar {
	return make(chan models.Bar, 4096)
}

func asReadOnlyBars(ch chan models.Bar) <-chan models.Bar { return ch }

func Module() fx.Option {
	return fx.Module("feed",
		fx.Provide(
			service.NewClient, // *service.Client
			newBarsChan,       // chan models.Bar
			asReadOnlyBars,    // <-chan models.Bar
		),

		fx.Invoke(func(lc fx.Lifecycle, c *service.Client, bars chan models.Bar, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.Start(ctx, bars)
					return nil
				},
			})
		}),
	)
}
