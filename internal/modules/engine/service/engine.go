package service

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/parker-ryan1/tradestation/internal/models"
)

// ErrConfiguration — невалидные параметры при создании движка.
// Единственный класс ошибок, который роняет запуск; после конструктора
// горячий путь ошибок не возвращает, только деградирует (дефолтная
// волатильность, нулевой сигнал, внутренняя стоимость опциона).
var ErrConfiguration = errors.New("invalid engine configuration")

// Params — параметры движка. Меняются сеттерами в любой момент,
// применяются со следующего бара.
type Params struct {
	RiskFreeRate          float64
	MaxPositionSize       float64
	StopLossPercent       float64
	TakeProfitPercent     float64
	LookbackPeriod        int
	MonteCarloSimulations int
}

func DefaultParams() Params {
	return Params{
		RiskFreeRate:          0.02,
		MaxPositionSize:       0.1,
		StopLossPercent:       0.05,
		TakeProfitPercent:     0.15,
		LookbackPeriod:        252,
		MonteCarloSimulations: 1000,
	}
}

func (p Params) Validate() error {
	if p.LookbackPeriod <= 0 {
		return errors.Wrapf(ErrConfiguration, "lookback period must be positive, got %d", p.LookbackPeriod)
	}
	if p.MonteCarloSimulations <= 0 {
		return errors.Wrapf(ErrConfiguration, "monte carlo simulations must be positive, got %d", p.MonteCarloSimulations)
	}
	floats := map[string]float64{
		"risk_free_rate":      p.RiskFreeRate,
		"max_position_size":   p.MaxPositionSize,
		"stop_loss_percent":   p.StopLossPercent,
		"take_profit_percent": p.TakeProfitPercent,
	}
	for name, v := range floats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrConfiguration, "%s must be finite, got %v", name, v)
		}
	}
	return nil
}

// Engine — покадровый решатель для одного инструмента. Хэндл принадлежит
// вызывающему, никаких глобальных инстансов. Не потокобезопасен: один
// инструмент = один инстанс = один поток.
type Engine struct {
	params Params
	hist   history
	sim    *simulator
	pos    positionTracker
}

type Option func(*Engine)

// WithRandSource подменяет источник случайности Монте-Карло —
// для тестов и воспроизводимых прогонов. Без опции источник сеется
// от часов один раз при создании и дальше никогда не пересеивается.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.sim = newSimulator(rand.New(src)) }
}

func NewEngine(params Params, opts ...Option) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		params: params,
		sim:    newSimulator(nil),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// ProcessBar обрабатывает одну закрытую свечу, строго по одному бару за
// вызов и в порядке времени. Порядок шагов фиксирован: история → гейт
// 30 баров → волатильность → решение → mark-to-market позиции.
// До прохождения гейта позиция не маркируется.
func (e *Engine) ProcessBar(bar models.Bar) models.Decision {
	e.hist.Append(bar.Close, e.params.LookbackPeriod)

	if e.hist.Len() < minBarsForSignal {
		return models.Decision{}
	}

	vol := estimateVolatility(e.hist.returns)
	e.hist.AppendVol(vol, e.params.LookbackPeriod)

	d := e.decide(bar.Close, vol)

	e.pos.MarkToMarket(bar.Close, e.params.StopLossPercent, e.params.TakeProfitPercent)

	return d
}

// OpenPosition записывает исполненный снаружи филл.
// Движок сам ордеров не размещает.
func (e *Engine) OpenPosition(entryPrice float64, quantity int) {
	e.pos.Open(entryPrice, quantity)
}

func (e *Engine) UnrealizedPnL() float64 { return e.pos.UnrealizedPnL() }

// ShouldClosePosition — флаг требования закрытия. Хост опрашивает его
// после каждого бара и сам отправляет закрывающий ордер.
func (e *Engine) ShouldClosePosition() bool {
	return e.pos.ShouldClose(e.params.StopLossPercent, e.params.TakeProfitPercent)
}

// Volatility — последняя оценка волатильности (0 до первого расчёта).
func (e *Engine) Volatility() float64 { return e.hist.LastVol() }

func (e *Engine) BarsSeen() int { return e.hist.Len() }

// Сеттеры вступают в силу со следующего ProcessBar, задним числом
// ничего не пересчитывается.

func (e *Engine) SetRiskFreeRate(rate float64)    { e.params.RiskFreeRate = rate }
func (e *Engine) SetMaxPositionSize(size float64) { e.params.MaxPositionSize = size }
func (e *Engine) SetStopLoss(percent float64)     { e.params.StopLossPercent = percent }
func (e *Engine) SetTakeProfit(percent float64)   { e.params.TakeProfitPercent = percent }
func (e *Engine) SetLookbackPeriod(period int)    { e.params.LookbackPeriod = period }
func (e *Engine) SetMonteCarloSimulations(n int)  { e.params.MonteCarloSimulations = n }
func (e *Engine) SetParameters(p Params)          { e.params = p }
