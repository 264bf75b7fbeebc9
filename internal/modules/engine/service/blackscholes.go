package service

import "math"

// Black-Scholes-Merton для европейских опционов.
// Вырожденные T <= 0 или sigma <= 0 минуют формулу и дают внутреннюю
// стоимость — иначе деление на ноль в d1.

func blackScholesCall(s, k, t, r, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return math.Max(s-k, 0)
	}

	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 := d1 - sigma*math.Sqrt(t)

	price := s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
	return math.Max(price, 0)
}

func blackScholesPut(s, k, t, r, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return math.Max(k-s, 0)
	}

	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 := d1 - sigma*math.Sqrt(t)

	price := k*math.Exp(-r*t)*normCDF(-d2) - s*normCDF(-d1)
	return math.Max(price, 0)
}

// normCDF — Φ стандартного нормального через erf.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
