package service

import (
	"github.com/parker-ryan1/tradestation/internal/modules/config"
)

// Factory собирает движки с параметрами из конфига — по одному на
// инструмент. Параметры валидируются один раз здесь, при старте.
type Factory struct {
	params Params
}

func NewFactory(cfg *config.Config) (*Factory, error) {
	p := Params{
		RiskFreeRate:          cfg.Engine.RiskFreeRate,
		MaxPositionSize:       cfg.Engine.MaxPositionSize,
		StopLossPercent:       cfg.Engine.StopLossPct,
		TakeProfitPercent:     cfg.Engine.TakeProfitPct,
		LookbackPeriod:        cfg.Engine.LookbackPeriod,
		MonteCarloSimulations: cfg.Engine.MonteCarloSimulations,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Factory{params: p}, nil
}

func (f *Factory) Params() Params { return f.params }

func (f *Factory) New(opts ...Option) (*Engine, error) {
	return NewEngine(f.params, opts...)
}
