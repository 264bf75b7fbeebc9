package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateVolatility_ColdStart(t *testing.T) {
	cases := []struct {
		name    string
		returns []float64
	}{
		{"empty", nil},
		{"one return", []float64{0.01}},
		{"nine returns", []float64{0.01, -0.02, 0.03, 0.01, -0.01, 0.02, 0.0, 0.01, -0.03}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, defaultVolatility, estimateVolatility(tc.returns))
		})
	}
}

func TestEstimateVolatility_ConstantReturns(t *testing.T) {
	returns := make([]float64, 15)
	for i := range returns {
		returns[i] = 0.004
	}

	// нулевая дисперсия — нулевая волатильность
	assert.Equal(t, 0.0, estimateVolatility(returns))
}

func TestEstimateVolatility_KnownSample(t *testing.T) {
	// десять чередующихся ±1%: mean = 0, var = 10*(0.01)^2/9
	returns := make([]float64, 10)
	for i := range returns {
		returns[i] = 0.01
		if i%2 == 1 {
			returns[i] = -0.01
		}
	}

	want := math.Sqrt(10 * 0.0001 / 9 * 252)
	assert.InDelta(t, want, estimateVolatility(returns), 1e-12)
}

func TestEstimateVolatility_NeverNegative(t *testing.T) {
	returns := []float64{-0.08, 0.02, -0.01, 0.05, -0.04, 0.03, 0.07, -0.06, 0.01, 0.0, -0.02, 0.04}
	assert.GreaterOrEqual(t, estimateVolatility(returns), 0.0)
}
