package pkg

import (
	"math"
	"time"
)

// EMA is a time-aware exponential moving average: each update is weighted by
// how much time passed since the previous one, relative to the window tau.
type EMA struct {
	tau   float64
	value float64
	last  time.Time
	init  bool
}

func NewEMA(tau time.Duration) *EMA {
	return &EMA{tau: tau.Seconds()}
}

func (e *EMA) Update(x float64, now time.Time) float64 {
	if !e.init || e.tau <= 0 {
		e.value = x
		e.last = now
		e.init = true
		return e.value
	}

	dt := now.Sub(e.last).Seconds()
	if dt <= 0 {
		return e.value
	}

	alpha := 1 - math.Exp(-dt/e.tau)
	e.value = alpha*x + (1-alpha)*e.value
	e.last = now

	return e.value
}

func (e *EMA) Value() float64 {
	return e.value
}
