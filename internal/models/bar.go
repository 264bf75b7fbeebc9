package models

import "time"

// Bar — одна закрытая свеча. Движок потребляет только Close,
// остальные поля идут транзитом в журнал и отчёты.
type Bar struct {
	Symbol string
	Index  int

	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	Start time.Time
	End   time.Time
}
