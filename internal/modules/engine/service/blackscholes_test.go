package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackScholes_DegenerateInputs(t *testing.T) {
	cases := []struct {
		name     string
		t, sigma float64
	}{
		{"zero expiry", 0, 0.2},
		{"negative expiry", -1, 0.2},
		{"zero vol", 1, 0},
		{"negative vol", 1, -0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// вырожденные входы дают внутреннюю стоимость
			assert.Equal(t, 10.0, blackScholesCall(110, 100, tc.t, 0.05, tc.sigma))
			assert.Equal(t, 0.0, blackScholesCall(90, 100, tc.t, 0.05, tc.sigma))
			assert.Equal(t, 10.0, blackScholesPut(90, 100, tc.t, 0.05, tc.sigma))
			assert.Equal(t, 0.0, blackScholesPut(110, 100, tc.t, 0.05, tc.sigma))
		})
	}
}

func TestBlackScholes_KnownValues(t *testing.T) {
	// классический ATM-пример: S=100, K=100, T=1, r=5%, σ=20%
	call := blackScholesCall(100, 100, 1, 0.05, 0.2)
	put := blackScholesPut(100, 100, 1, 0.05, 0.2)

	assert.InDelta(t, 10.4506, call, 1e-3)
	assert.InDelta(t, 5.5735, put, 1e-3)
}

func TestBlackScholes_PutCallParity(t *testing.T) {
	cases := []struct {
		s, k, tt, r, sigma float64
	}{
		{100, 100, 1, 0.05, 0.2},
		{100, 105, 30.0 / 365.0, 0.02, 0.3},
		{50, 45, 0.5, 0.01, 0.6},
	}

	for _, tc := range cases {
		call := blackScholesCall(tc.s, tc.k, tc.tt, tc.r, tc.sigma)
		put := blackScholesPut(tc.s, tc.k, tc.tt, tc.r, tc.sigma)

		// C - P = S - K·e^(-rT)
		assert.InDelta(t, tc.s-tc.k*math.Exp(-tc.r*tc.tt), call-put, 1e-9)
	}
}

func TestBlackScholes_NeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, blackScholesCall(10, 1000, 0.01, 0.0, 0.05), 0.0)
	assert.GreaterOrEqual(t, blackScholesPut(1000, 10, 0.01, 0.0, 0.05), 0.0)
}

func TestNormCDF(t *testing.T) {
	assert.InDelta(t, 0.5, normCDF(0), 1e-12)
	assert.InDelta(t, 0.8413, normCDF(1), 1e-4)
	assert.InDelta(t, 0.1587, normCDF(-1), 1e-4)
	assert.InDelta(t, 1.0, normCDF(10), 1e-12)
	assert.InDelta(t, 0.0, normCDF(-10), 1e-12)
}
