package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/modules/config"
	"github.com/parker-ryan1/tradestation/internal/modules/engine"
	"github.com/parker-ryan1/tradestation/internal/modules/feed"
	"github.com/parker-ryan1/tradestation/internal/modules/journal"
	"github.com/parker-ryan1/tradestation/internal/modules/metrics"
	"github.com/parker-ryan1/tradestation/internal/runner"
	"github.com/parker-ryan1/tradestation/pkg/logger"
	"github.com/parker-ryan1/tradestation/pkg/tracing"
)

func main() {
	logger.SetServiceName("tradestation-engine")
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		engine.Module(),
		feed.Module(),
		journal.Module(),
		metrics.Module(),
		runner.Module(),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			tracing.SetServiceName("tradestation-engine")
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Tracing.Host,
				Port: cfg.Tracing.Port,
			})
			if err != nil {
				logger.Error("tracer init: %v", err)
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
		}),
	)

	app.Run()
}
