package runner

import (
	"context"
	"log"
	"time"

	"github.com/opentracing/opentracing-go"

	"github.com/parker-ryan1/tradestation/internal/models"
	enginesvc "github.com/parker-ryan1/tradestation/internal/modules/engine/service"
	journalsvc "github.com/parker-ryan1/tradestation/internal/modules/journal/service"
	metricssvc "github.com/parker-ryan1/tradestation/internal/modules/metrics/service"
	"github.com/parker-ryan1/tradestation/internal/notify"
	"github.com/parker-ryan1/tradestation/pkg/logger"
)

// Router держит по одному хэндлу движка на символ и прогоняет через него
// закрытые свечи. Движок не потокобезопасен, поэтому все бары идут через
// один цикл — здесь он один на процесс, никакой гонки по определению.
type Router struct {
	factory *enginesvc.Factory
	journal journalsvc.Recorder
	metrics *metricssvc.Collector
	n       notify.Notifier

	engines       map[string]*enginesvc.Engine
	closeNotified map[string]bool
}

func NewRouter(
	factory *enginesvc.Factory,
	journal journalsvc.Recorder,
	metrics *metricssvc.Collector,
	n notify.Notifier,
) *Router {
	return &Router{
		factory:       factory,
		journal:       journal,
		metrics:       metrics,
		n:             n,
		engines:       make(map[string]*enginesvc.Engine),
		closeNotified: make(map[string]bool),
	}
}

func (r *Router) engineFor(symbol string) (*enginesvc.Engine, error) {
	if eng, ok := r.engines[symbol]; ok {
		return eng, nil
	}
	eng, err := r.factory.New()
	if err != nil {
		return nil, err
	}
	r.engines[symbol] = eng
	return eng, nil
}

// OpenPosition прокидывает исполненный снаружи филл в движок символа.
func (r *Router) OpenPosition(symbol string, entryPrice float64, quantity int) error {
	eng, err := r.engineFor(symbol)
	if err != nil {
		return err
	}
	eng.OpenPosition(entryPrice, quantity)
	r.closeNotified[symbol] = false
	return nil
}

func (r *Router) OnBar(ctx context.Context, bar models.Bar) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "process_bar")
	defer span.Finish()
	span.SetTag("symbol", bar.Symbol)
	span.SetTag("bar_index", bar.Index)

	eng, err := r.engineFor(bar.Symbol)
	if err != nil {
		// битая конфигурация ловится на старте, сюда попадать не должно
		logger.Error("engine for %s: %v", bar.Symbol, err)
		return
	}

	started := time.Now()
	d := eng.ProcessBar(bar)
	took := time.Since(started)

	vol := eng.Volatility()
	r.metrics.ObserveBar(bar.Symbol, d, vol, took)

	if err := r.journal.Record(ctx, bar, vol, d); err != nil {
		logger.Error("journal %s: %v", bar.Symbol, err)
	}

	if d.Action != models.ActionHold {
		log.Printf("[SIGNAL] %s %s @ %.4f buy=%.3f sell=%.3f conf=%.2f",
			bar.Symbol, d.Action, bar.Close, d.BuyStrength, d.SellStrength, d.Confidence)
		r.n.Sendf("🔔 [%s] %s @ %.4f (conf %.2f)", bar.Symbol, d.Action, bar.Close, d.Confidence)
	}

	// требование закрытия репортим один раз, пока хост не откроет новую позицию
	if eng.ShouldClosePosition() {
		if !r.closeNotified[bar.Symbol] {
			r.closeNotified[bar.Symbol] = true
			r.metrics.ObserveCloseRequest(bar.Symbol)
			r.n.Sendf("⚠️ [%s] требуется закрытие позиции, PnL=%.2f", bar.Symbol, eng.UnrealizedPnL())
		}
	} else {
		r.closeNotified[bar.Symbol] = false
	}
}
