package actuator

import (
	"math"
	"time"
)

// Delay is the pause taken before every step except the first one. It is
// either a fixed duration or a function of step index and total step count.
type Delay struct {
	fixed time.Duration
	fn    func(index, total int) time.Duration
}

func Fixed(d time.Duration) Delay {
	return Delay{fixed: d}
}

// Dynamic evaluates fn for every step allowing acceleration and
// deceleration within a single move.
func Dynamic(fn func(index, total int) time.Duration) Delay {
	return Delay{fn: fn}
}

func (d Delay) IsDynamic() bool {
	return d.fn != nil
}

// At resolves the delay before step index of total. Negative values are
// clamped to zero.
func (d Delay) At(index, total int) time.Duration {
	v := d.fixed
	if d.fn != nil {
		v = d.fn(index, total)
	}
	return clamp(v, 0, time.Duration(math.MaxInt64))
}
