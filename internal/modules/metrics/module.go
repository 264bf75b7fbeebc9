package metrics

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/modules/config"
	"github.com/parker-ryan1/tradestation/internal/modules/metrics/service"
)

func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			service.NewCollector, // *service.Collector
		),

		// /metrics на админском порту
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())

			srv := &http.Server{
				Addr:    fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.AdminPort),
				Handler: mux,
			}

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go func() {
						log.Printf("[METRICS] admin http on %s", srv.Addr)
						if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
							log.Printf("[METRICS] http error: %v", err)
						}
					}()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return srv.Shutdown(ctx)
				},
			})
		}),
	)
}
