package service

import (
	"math"
	"math/rand"
	"time"
)

const dailyStep = 1.0 / tradingDaysPerYear

// simulator — генератор терминальных цен по геометрическому броуновскому
// движению. Один stateful rand.Rand на инстанс движка: состояние живёт
// между барами и между вызовами не пересеивается.
type simulator struct {
	rng *rand.Rand
}

func newSimulator(rng *rand.Rand) *simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &simulator{rng: rng}
}

// Simulate прогоняет paths независимых путей по days дневных шагов
// (Δt = 1/252) и возвращает только терминальные цены:
//
//	logReturn = (drift - σ²/2)·Δt + σ·√Δt·Z, Z ~ N(0,1)
//	price_{t+1} = price_t · e^(logReturn)
func (s *simulator) Simulate(start, drift, sigma float64, days, paths int) []float64 {
	finals := make([]float64, 0, paths)

	for i := 0; i < paths; i++ {
		price := start
		for d := 0; d < days; d++ {
			z := s.rng.NormFloat64()
			logReturn := (drift-0.5*sigma*sigma)*dailyStep + sigma*math.Sqrt(dailyStep)*z
			price *= math.Exp(logReturn)
		}
		finals = append(finals, price)
	}

	return finals
}
