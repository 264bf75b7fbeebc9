package service

import "math"

const (
	tradingDaysPerYear = 252.0

	// холодный старт: меньше десяти доходностей — отдаём фиксированные 20%
	minReturnsForVol  = 10
	defaultVolatility = 0.2
)

// estimateVolatility — годовая волатильность по несмещённой выборочной
// дисперсии лог-доходностей (знаменатель n-1), sqrt(var * 252).
func estimateVolatility(returns []float64) float64 {
	if len(returns) < minReturnsForVol {
		return defaultVolatility
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance * tradingDaysPerYear)
}
