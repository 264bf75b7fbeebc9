package service

import (
	"math"

	"github.com/parker-ryan1/tradestation/internal/models"
)

const (
	// минимум закрытий до первого небарного решения
	minBarsForSignal = 30

	// окно дрифта и горизонт симуляции, торговых дней
	driftWindow       = 21
	simulationHorizon = 21

	// синтетические опционы: 30 дней до экспирации, страйки 5% OTM
	optionExpiryYears = 30.0 / 365.0
	otmOffset         = 0.05
)

// expectedAnnualReturn — средняя лог-доходность за последние 21 день,
// годовая (x252). Меньше 21 точки — дрифт нулевой, хотя 30-барный гейт
// уже пройден: унаследованный краевой случай, сохраняем как есть.
func expectedAnnualReturn(returns []float64) float64 {
	if len(returns) < driftWindow {
		return 0
	}

	total := 0.0
	for _, r := range returns[len(returns)-driftWindow:] {
		total += r
	}
	return total / float64(driftWindow) * tradingDaysPerYear
}

// decide сводит симуляцию, статистику исходов и опционные сигналы в решение.
func (e *Engine) decide(price, vol float64) models.Decision {
	var d models.Decision
	if e.hist.Len() < minBarsForSignal {
		return d
	}

	drift := expectedAnnualReturn(e.hist.returns)
	finals := e.sim.Simulate(price, drift, vol, simulationHorizon, e.params.MonteCarloSimulations)

	meanPrice := 0.0
	profitable, losing := 0, 0
	for _, f := range finals {
		meanPrice += f
		if f > price*(1+otmOffset) {
			profitable++
		} else if f < price*(1-otmOffset) {
			losing++
		}
	}
	meanPrice /= float64(len(finals))

	profitProb := float64(profitable) / float64(len(finals))
	lossProb := float64(losing) / float64(len(finals))
	expectedReturn := (meanPrice - price) / price

	callValue := blackScholesCall(price, price*(1+otmOffset), optionExpiryYears, e.params.RiskFreeRate, vol)
	putValue := blackScholesPut(price, price*(1-otmOffset), optionExpiryYears, e.params.RiskFreeRate, vol)

	// нормируем стоимость опциона на ширину страйка
	callSignal := callValue / (price * otmOffset)
	putSignal := putValue / (price * otmOffset)

	// насыщающаяся мера объёма выборки, от статистики исходов не зависит
	d.Confidence = math.Min(1, float64(len(finals))/1000.0)

	// Buy проверяется первым и строго конъюнктивен, Sell — дизъюнктивен,
	// поэтому взаимоисключение без отдельного tie-break.
	switch {
	case expectedReturn > 0.08 && profitProb > 0.6 && vol < 0.4 && callSignal > 0.3:
		d.Action = models.ActionBuy
		d.BuyStrength = math.Min(1, expectedReturn*profitProb*callSignal/0.15)
	case expectedReturn < -0.05 || lossProb > 0.6 || vol > 0.6 || putSignal > 0.4:
		d.Action = models.ActionSell
		d.SellStrength = math.Min(1, math.Abs(expectedReturn)*lossProb*putSignal/0.15)
	}

	return d
}
