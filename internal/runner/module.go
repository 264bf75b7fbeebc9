package runner

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/models"
	"github.com/parker-ryan1/tradestation/internal/modules/config"
	"github.com/parker-ryan1/tradestation/internal/notify"
)

func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	if cfg.Telegram.Token == "" {
		return notify.NewStdout(), nil
	}
	return notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
}

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			newNotifier, // notify.Notifier
			NewRouter,   // *Router
		),

		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Router,
			bars <-chan models.Bar,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						log.Printf("[RUNNER] bar loop started")
						for {
							select {
							case <-ctx.Done():
								log.Printf("[RUNNER] bar loop stopped")
								return
							case bar, ok := <-bars:
								if !ok {
									log.Printf("[RUNNER] bars channel closed")
									return
								}
								r.OnBar(ctx, bar)
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}
