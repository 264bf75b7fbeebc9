package models

// Action — что делать по итогам бара.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Code — целочисленная проекция для внешних систем:
// 1 = Buy, -1 = Sell, 0 = Hold. Только на границе (журнал, отчёт),
// внутри везде Action.
func (a Action) Code() int {
	switch a {
	case ActionBuy:
		return 1
	case ActionSell:
		return -1
	default:
		return 0
	}
}

// Decision — итог обработки одного бара. Ровно одна из сил
// (Buy/Sell) может быть ненулевой.
type Decision struct {
	Action       Action
	BuyStrength  float64
	SellStrength float64
	Confidence   float64
}
