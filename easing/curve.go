package easing

import (
	"math"
	"time"
)

// Func is a step delay function. total is the step count of the move that
// evaluates it.
type Func func(index, total int) time.Duration

// Curve transitions delay from Start to End over Steps steps.
type Curve struct {
	Shape Shape
	Start time.Duration
	End   time.Duration
	Steps int
}

func New(shape Shape, start, end time.Duration, steps int) Curve {
	return Curve{
		Shape: shape,
		Start: start,
		End:   end,
		Steps: steps,
	}
}

// At returns delay at step index. At(0) is Start and At(Steps) is End.
// Curve with no steps stays at Start.
func (c Curve) At(index int) time.Duration {
	switch {
	case index == 0 || c.Steps <= 0:
		return c.Start
	case index == c.Steps:
		return c.End
	}
	a := c.Shape.Ease(float64(index) / float64(c.Steps))
	return time.Duration(math.Round(float64(c.End)*a + float64(c.Start)*(1-a)))
}

// Reverse returns mirror curve going from End back to Start.
func (c Curve) Reverse() Curve {
	c.Start, c.End = c.End, c.Start
	return c
}

// Func returns delay function evaluating the curve at step index. Step count
// of the move is ignored, curve keeps its own duration.
func (c Curve) Func() Func {
	return func(index, _ int) time.Duration {
		return c.At(index)
	}
}
