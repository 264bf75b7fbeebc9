package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/parker-ryan1/tradestation/internal/models"
	enginesvc "github.com/parker-ryan1/tradestation/internal/modules/engine/service"
)

func writeReport(path string, runID uuid.UUID, params enginesvc.Params, results []barResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Black-Scholes Decision Engine — backtest %s\n", runID)
	fmt.Fprintf(&b, "generated %s\n\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "params: r=%.4f sl=%.2f tp=%.2f lookback=%d sims=%d\n\n",
		params.RiskFreeRate, params.StopLossPercent, params.TakeProfitPercent,
		params.LookbackPeriod, params.MonteCarloSimulations)

	buys, sells, holds := 0, 0, 0
	for _, r := range results {
		switch r.decision.Action {
		case models.ActionBuy:
			buys++
		case models.ActionSell:
			sells++
		default:
			holds++
		}
		fmt.Fprintf(&b, "bar %4d  close=%9.2f  action=%-4s  buy=%.3f  sell=%.3f  conf=%.2f  vol=%.3f\n",
			r.bar.Index, r.bar.Close, r.decision.Action,
			r.decision.BuyStrength, r.decision.SellStrength,
			r.decision.Confidence, r.volatility)
	}

	fmt.Fprintf(&b, "\ntotal: %d bars, %d buy / %d sell / %d hold\n", len(results), buys, sells, holds)

	return errors.Wrap(os.WriteFile(path, []byte(b.String()), 0o644), "failed to write report")
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id     TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    seed       INTEGER  NOT NULL,
    bars       INTEGER  NOT NULL,
    sims       INTEGER  NOT NULL,
    buys       INTEGER  NOT NULL,
    sells      INTEGER  NOT NULL,
    holds      INTEGER  NOT NULL,
    last_close REAL     NOT NULL,
    last_vol   REAL     NOT NULL
);

CREATE TABLE IF NOT EXISTS run_decisions (
    run_id        TEXT    NOT NULL,
    bar_index     INTEGER NOT NULL,
    close         REAL    NOT NULL,
    action        INTEGER NOT NULL,
    buy_strength  REAL    NOT NULL,
    sell_strength REAL    NOT NULL,
    confidence    REAL    NOT NULL,
    volatility    REAL    NOT NULL,
    PRIMARY KEY (run_id, bar_index)
);
`

// storeRun складывает прогон в sqlite: строка-итог + решение на бар.
func storeRun(path string, runID uuid.UUID, seed int64, params enginesvc.Params, results []barResult) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrap(err, "failed to open sqlite")
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return errors.Wrap(err, "failed to ensure schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	buys, sells, holds := 0, 0, 0
	for _, r := range results {
		switch r.decision.Action {
		case models.ActionBuy:
			buys++
		case models.ActionSell:
			sells++
		default:
			holds++
		}

		if _, err := tx.Exec(
			`INSERT INTO run_decisions
			     (run_id, bar_index, close, action, buy_strength, sell_strength, confidence, volatility)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID.String(), r.bar.Index, r.bar.Close, r.decision.Action.Code(),
			r.decision.BuyStrength, r.decision.SellStrength, r.decision.Confidence, r.volatility,
		); err != nil {
			return errors.Wrap(err, "failed to insert decision")
		}
	}

	last := results[len(results)-1]
	if _, err := tx.Exec(
		`INSERT INTO runs
		     (run_id, started_at, seed, bars, sims, buys, sells, holds, last_close, last_vol)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), time.Now().UTC(), seed, len(results), params.MonteCarloSimulations,
		buys, sells, holds, last.bar.Close, last.volatility,
	); err != nil {
		return errors.Wrap(err, "failed to insert run")
	}

	return errors.Wrap(tx.Commit(), "failed to commit")
}
