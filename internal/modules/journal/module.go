package journal

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/parker-ryan1/tradestation/internal/modules/config"
	"github.com/parker-ryan1/tradestation/internal/modules/journal/service"
	"github.com/parker-ryan1/tradestation/pkg/db"
)

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (service.Recorder, error) {
				if cfg.DB == "" {
					log.Printf("[JOURNAL] DSN не задан — журнал решений отключён")
					return service.NewNoop(), nil
				}

				pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, errors.Wrap(err, "failed to create pool")
				}
				if err := pool.Ping(ctx); err != nil {
					return nil, err
				}

				j := service.NewJournal(db.NewPgTxManager(pool))
				if err := j.EnsureSchema(ctx); err != nil {
					return nil, err
				}
				return j, nil
			},
		),
	)
}
