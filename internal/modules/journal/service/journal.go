package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/parker-ryan1/tradestation/internal/models"
	"github.com/parker-ryan1/tradestation/pkg/db"
)

// Recorder пишет след решений движка. Журнал — только выход:
// состояние движка из него никогда не восстанавливается.
type Recorder interface {
	Record(ctx context.Context, bar models.Bar, volatility float64, d models.Decision) error
}

const createDecisionsTable = `
CREATE TABLE IF NOT EXISTS decisions (
    id            BIGSERIAL PRIMARY KEY,
    run_id        UUID             NOT NULL,
    symbol        TEXT             NOT NULL,
    bar_index     BIGINT           NOT NULL,
    open          DOUBLE PRECISION NOT NULL,
    high          DOUBLE PRECISION NOT NULL,
    low           DOUBLE PRECISION NOT NULL,
    close         DOUBLE PRECISION NOT NULL,
    volume        DOUBLE PRECISION NOT NULL,
    volatility    DOUBLE PRECISION NOT NULL,
    action        SMALLINT         NOT NULL,
    buy_strength  DOUBLE PRECISION NOT NULL,
    sell_strength DOUBLE PRECISION NOT NULL,
    confidence    DOUBLE PRECISION NOT NULL,
    created_at    TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

const insertDecision = `
INSERT INTO decisions
    (run_id, symbol, bar_index, open, high, low, close, volume,
     volatility, action, buy_strength, sell_strength, confidence)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// Journal — решение на бар, одна строка в Postgres. run_id разделяет
// прогоны процесса между рестартами.
type Journal struct {
	tm    db.TxManager
	runID uuid.UUID
}

func NewJournal(tm db.TxManager) *Journal {
	return &Journal{
		tm:    tm,
		runID: uuid.New(),
	}
}

func (j *Journal) EnsureSchema(ctx context.Context) error {
	return j.tm.RunMaster(ctx, func(ctx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctx, createDecisionsTable)
		return errors.Wrap(err, "failed to ensure decisions table")
	})
}

func (j *Journal) Record(ctx context.Context, bar models.Bar, volatility float64, d models.Decision) error {
	return j.tm.RunMaster(ctx, func(ctx context.Context, tx db.Transaction) error {
		_, err := tx.Exec(ctx, insertDecision,
			j.runID, bar.Symbol, bar.Index,
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
			volatility, d.Action.Code(), d.BuyStrength, d.SellStrength, d.Confidence,
		)
		return errors.Wrap(err, "failed to insert decision")
	})
}

// Noop — журнал без DSN: молча глотает записи.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) Record(context.Context, models.Bar, float64, models.Decision) error { return nil }
