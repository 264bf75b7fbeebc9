package service

import "math"

// history — скользящие окна цен, лог-доходностей и оценок волатильности.
// Все три ограничены одним lookback, старые значения вытесняются FIFO.
type history struct {
	prices  []float64
	returns []float64
	vols    []float64
}

// Append добавляет закрытие и, если есть предыдущая цена,
// лог-доходность ln(p_t / p_{t-1}).
func (h *history) Append(price float64, lookback int) {
	if n := len(h.prices); n > 0 {
		h.returns = append(h.returns, math.Log(price/h.prices[n-1]))
		h.returns = trimWindow(h.returns, lookback)
	}
	h.prices = append(h.prices, price)
	h.prices = trimWindow(h.prices, lookback)
}

func (h *history) AppendVol(vol float64, lookback int) {
	h.vols = append(h.vols, vol)
	h.vols = trimWindow(h.vols, lookback)
}

func (h *history) Len() int { return len(h.prices) }

func (h *history) LastVol() float64 {
	if len(h.vols) == 0 {
		return 0
	}
	return h.vols[len(h.vols)-1]
}

func trimWindow(xs []float64, lookback int) []float64 {
	if lookback <= 0 {
		return xs
	}
	for len(xs) > lookback {
		xs = xs[1:]
	}
	return xs
}
