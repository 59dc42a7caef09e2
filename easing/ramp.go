package easing

import "time"

// Ramp builds delay functions changing speed between Start and End delays.
//
//	r := easing.Ramp{Start: 100 * time.Millisecond, End: 10 * time.Millisecond}
//	s.Forward(ctx, actuator.Dynamic(r.Quad(200)), 200)           // speed up
//	s.Forward(ctx, actuator.Dynamic(r.Reverse().Quad(200)), 200) // slow down
type Ramp struct {
	Start time.Duration
	End   time.Duration
}

func DefaultRamp() Ramp {
	return Ramp{
		Start: 50 * time.Millisecond,
		End:   100 * time.Millisecond,
	}
}

// Reverse swaps start and end delays.
func (r Ramp) Reverse() Ramp {
	return Ramp{Start: r.End, End: r.Start}
}

func (r Ramp) Curve(shape Shape, steps int) Curve {
	return New(shape, r.Start, r.End, steps)
}

func (r Ramp) Linear(steps int) Func {
	return r.Curve(Linear, steps).Func()
}

func (r Ramp) Quad(steps int) Func {
	return r.Curve(QuadInOut, steps).Func()
}

func (r Ramp) Circular(steps int) Func {
	return r.Curve(CircularInOut, steps).Func()
}

func (r Ramp) Expo(steps int) Func {
	return r.Curve(ExpoInOut, steps).Func()
}

func (r Ramp) Elastic(steps int) Func {
	return r.Curve(ElasticInOut, steps).Func()
}

func (r Ramp) Back(steps int) Func {
	return r.Curve(BackInOut, steps).Func()
}

func (r Ramp) Bounce(steps int) Func {
	return r.Curve(BounceInOut, steps).Func()
}

// ByName returns ramp function for short curve name as used by Ramp methods
// (linear, quad, circular, expo, elastic, back, bounce).
func (r Ramp) ByName(name string, steps int) (Func, bool) {
	f, ok := map[string]func(int) Func{
		"linear":   r.Linear,
		"quad":     r.Quad,
		"circular": r.Circular,
		"expo":     r.Expo,
		"elastic":  r.Elastic,
		"back":     r.Back,
		"bounce":   r.Bounce,
	}[name]
	if !ok {
		return nil, false
	}
	return f(steps), true
}
