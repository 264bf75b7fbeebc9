package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/parker-ryan1/tradestation/internal/models"
)

var (
	metricBarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_bars_processed_total", Help: "Closed bars fed into the decision engine"},
		[]string{"symbol"},
	)
	metricDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_decisions_total", Help: "Decisions by action"},
		[]string{"symbol", "action"},
	)
	metricForcedCloses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_close_requests_total", Help: "Bars after which the position risk tracker demanded a close"},
		[]string{"symbol"},
	)
	metricBarDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_bar_seconds",
		Help:    "ProcessBar latency, dominated by the Monte Carlo loop",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	})
	metricVolatility = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "engine_volatility", Help: "Last annualized volatility estimate"},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(
		metricBarsProcessed, metricDecisions, metricForcedCloses,
		metricBarDuration, metricVolatility,
	)
}

// Collector — тонкая обёртка над prometheus-метриками решателя.
type Collector struct{}

func NewCollector() *Collector { return &Collector{} }

func (*Collector) ObserveBar(symbol string, d models.Decision, volatility float64, took time.Duration) {
	metricBarsProcessed.WithLabelValues(symbol).Inc()
	metricDecisions.WithLabelValues(symbol, d.Action.String()).Inc()
	metricBarDuration.Observe(took.Seconds())
	metricVolatility.WithLabelValues(symbol).Set(volatility)
}

func (*Collector) ObserveCloseRequest(symbol string) {
	metricForcedCloses.WithLabelValues(symbol).Inc()
}
