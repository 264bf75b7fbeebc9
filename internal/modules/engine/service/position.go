package service

import "math"

type positionState int

const (
	positionFlat positionState = iota
	positionLong
	positionShort
)

func (s positionState) String() string {
	switch s {
	case positionLong:
		return "LONG"
	case positionShort:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// positionTracker — состояние одной открытой позиции: Flat/Long/Short.
// Закрытие по стопу или тейку — явный переход в Flat, не частичная правка
// полей. closeRequested переживает авто-сброс, чтобы хост успел увидеть
// требование закрытия после принудительного перехода в Flat.
type positionTracker struct {
	state          positionState
	entryPrice     float64
	quantity       int
	pnl            float64
	closeRequested bool
}

// Open фиксирует исполненный снаружи филл. Знак quantity задаёт направление.
func (p *positionTracker) Open(entryPrice float64, quantity int) {
	*p = positionTracker{
		entryPrice: entryPrice,
		quantity:   quantity,
	}
	switch {
	case quantity > 0:
		p.state = positionLong
	case quantity < 0:
		p.state = positionShort
	}
}

// MarkToMarket пересчитывает нереализованный PnL по текущей цене и
// принудительно закрывает позицию за стопом или тейком. Для шорта знаки
// зеркальные. Возвращает true, если позиция была закрыта этим вызовом.
func (p *positionTracker) MarkToMarket(price, stopLoss, takeProfit float64) bool {
	if p.state == positionFlat {
		return false
	}

	p.pnl = (price - p.entryPrice) * float64(p.quantity)
	pct := p.pnl / (p.entryPrice * math.Abs(float64(p.quantity)))

	var triggered bool
	if p.state == positionLong {
		triggered = pct <= -stopLoss || pct >= takeProfit
	} else {
		triggered = pct >= stopLoss || pct <= -takeProfit
	}
	if !triggered {
		return false
	}

	*p = positionTracker{closeRequested: true} // Long/Short -> Flat
	return true
}

// ShouldClose — read-only проверка для хоста. Тейк здесь проверяется только
// вверх, стоп — по модулю; это несимметрично с MarkToMarket и так и должно
// быть, поведение унаследовано и закреплено тестами.
func (p *positionTracker) ShouldClose(stopLoss, takeProfit float64) bool {
	if p.closeRequested {
		return true
	}
	if p.quantity == 0 {
		return false
	}

	pct := p.pnl / (p.entryPrice * math.Abs(float64(p.quantity)))
	return math.Abs(pct) >= stopLoss || pct >= takeProfit
}

func (p *positionTracker) UnrealizedPnL() float64 { return p.pnl }
