package service

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parker-ryan1/tradestation/internal/models"
)

var samplePrices = []float64{
	100.0, 101.5, 99.8, 102.3, 103.1, 101.9, 104.2, 105.8, 103.4, 106.1,
	107.3, 105.9, 108.2, 109.5, 107.8, 110.1, 108.7, 111.3, 109.9, 112.5,
}

func testBar(i int, close float64) models.Bar {
	return models.Bar{
		Symbol: "TEST",
		Index:  i,
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 1_000_000,
	}
}

// longSeries — сэмпл + продолжение той же формы, чтобы пройти 30-барный гейт
func longSeries(n int) []float64 {
	out := append([]float64{}, samplePrices...)
	price := out[len(out)-1]
	rng := rand.New(rand.NewSource(5))
	for len(out) < n {
		price *= math.Exp(0.0005 + 0.01*rng.NormFloat64())
		out = append(out, price)
	}
	return out
}

func newTestEngine(t *testing.T, mutate func(*Params)) *Engine {
	t.Helper()

	params := DefaultParams()
	if mutate != nil {
		mutate(&params)
	}

	eng, err := NewEngine(params, WithRandSource(rand.NewSource(42)))
	require.NoError(t, err)
	return eng
}

func TestNewEngine_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero lookback", func(p *Params) { p.LookbackPeriod = 0 }},
		{"negative lookback", func(p *Params) { p.LookbackPeriod = -5 }},
		{"zero sims", func(p *Params) { p.MonteCarloSimulations = 0 }},
		{"nan risk free rate", func(p *Params) { p.RiskFreeRate = math.NaN() }},
		{"inf stop loss", func(p *Params) { p.StopLossPercent = math.Inf(1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)

			_, err := NewEngine(params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}

func TestProcessBar_WarmupIsZeroSignal(t *testing.T) {
	eng := newTestEngine(t, nil)

	for i, price := range longSeries(29) {
		d := eng.ProcessBar(testBar(i+1, price))

		assert.Equal(t, models.ActionHold, d.Action, "bar %d", i+1)
		assert.Equal(t, 0.0, d.BuyStrength, "bar %d", i+1)
		assert.Equal(t, 0.0, d.SellStrength, "bar %d", i+1)
		assert.Equal(t, 0.0, d.Confidence, "bar %d", i+1)
	}

	assert.Equal(t, 0.0, eng.Volatility(), "волатильность не считается до гейта")
}

func TestProcessBar_AfterWarmup(t *testing.T) {
	sims := 500
	eng := newTestEngine(t, func(p *Params) { p.MonteCarloSimulations = sims })

	for i, price := range longSeries(60) {
		d := eng.ProcessBar(testBar(i+1, price))

		assert.Contains(t, []models.Action{models.ActionBuy, models.ActionSell, models.ActionHold}, d.Action)
		assert.GreaterOrEqual(t, d.Confidence, 0.0)
		assert.LessOrEqual(t, d.Confidence, 1.0)

		if i+1 >= 30 {
			assert.Equal(t, math.Min(1, float64(sims)/1000.0), d.Confidence, "bar %d", i+1)
			assert.Greater(t, eng.Volatility(), 0.0)
		}
	}
}

func TestProcessBar_DeterministicWithSeed(t *testing.T) {
	params := DefaultParams()

	a, err := NewEngine(params, WithRandSource(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := NewEngine(params, WithRandSource(rand.NewSource(7)))
	require.NoError(t, err)

	for i, price := range longSeries(80) {
		da := a.ProcessBar(testBar(i+1, price))
		db := b.ProcessBar(testBar(i+1, price))

		// одинаковая история + одинаковое состояние генератора = бит-в-бит
		assert.Equal(t, da, db, "bar %d", i+1)
	}
}

func TestProcessBar_SettersApplyNextBar(t *testing.T) {
	eng := newTestEngine(t, nil)

	series := longSeries(45)
	for i, price := range series[:40] {
		eng.ProcessBar(testBar(i+1, price))
	}

	eng.SetMonteCarloSimulations(100)
	d := eng.ProcessBar(testBar(41, series[40]))
	assert.Equal(t, 0.1, d.Confidence)

	eng.SetParameters(DefaultParams())
	d = eng.ProcessBar(testBar(42, series[41]))
	assert.Equal(t, 1.0, d.Confidence)
}

func TestEngine_PositionLifecycle(t *testing.T) {
	eng := newTestEngine(t, nil)

	// позиция не маркируется, пока не пройден гейт
	eng.OpenPosition(400, 100)
	for i := 0; i < 29; i++ {
		eng.ProcessBar(testBar(i+1, 300)) // -25%, но баров ещё мало
	}
	assert.Equal(t, 0.0, eng.UnrealizedPnL())
	assert.False(t, eng.ShouldClosePosition())

	// 30-й бар маркирует и сразу закрывает по стопу
	eng.ProcessBar(testBar(30, 300))
	assert.Equal(t, 0.0, eng.UnrealizedPnL())
	assert.True(t, eng.ShouldClosePosition())

	// новая позиция сбрасывает требование закрытия
	eng.OpenPosition(300, 100)
	assert.False(t, eng.ShouldClosePosition())

	// внутри коридора позиция живёт, PnL честный
	eng.ProcessBar(testBar(31, 303))
	assert.Equal(t, 300.0, eng.UnrealizedPnL())
	assert.False(t, eng.ShouldClosePosition())
}

func TestEngine_TakeProfitViaProcessBar(t *testing.T) {
	eng := newTestEngine(t, nil)

	series := longSeries(35)
	for i, price := range series {
		eng.ProcessBar(testBar(i+1, price))
	}

	entry := series[len(series)-1]
	eng.OpenPosition(entry, 100)

	eng.ProcessBar(testBar(len(series)+1, entry*1.15))
	assert.True(t, eng.ShouldClosePosition())
	assert.Equal(t, 0.0, eng.UnrealizedPnL(), "принудительное закрытие обнуляет позицию")
}

func TestEngine_LookbackEviction(t *testing.T) {
	eng := newTestEngine(t, func(p *Params) { p.LookbackPeriod = 50 })

	for i, price := range longSeries(200) {
		eng.ProcessBar(testBar(i+1, price))
	}

	assert.Equal(t, 50, eng.BarsSeen())
}
