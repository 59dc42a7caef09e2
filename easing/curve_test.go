package easing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeEndpoints(t *testing.T) {
	for _, s := range Shapes() {
		assert.InDelta(t, 0, s.Ease(0), 1e-9, s.String())
		assert.InDelta(t, 1, s.Ease(1), 1e-9, s.String())
	}
}

func TestCurveEndpoints(t *testing.T) {
	ramps := []Ramp{
		{Start: 50 * time.Millisecond, End: 10 * time.Millisecond},
		{Start: 10 * time.Millisecond, End: 500 * time.Millisecond},
		{Start: time.Second, End: time.Second},
	}
	for _, s := range Shapes() {
		for _, r := range ramps {
			for _, steps := range []int{1, 7, 200} {
				c := New(s, r.Start, r.End, steps)
				assert.Equal(t, r.Start, c.At(0), "%s %v %d", s, r, steps)
				assert.Equal(t, r.End, c.At(steps), "%s %v %d", s, r, steps)
			}
		}
	}
}

func TestLinearMidpoint(t *testing.T) {
	c := New(Linear, 50*time.Millisecond, 10*time.Millisecond, 400)
	assert.Equal(t, 30*time.Millisecond, c.At(200))
	assert.Equal(t, 40*time.Millisecond, c.At(100))
}

func TestQuadInOutSymmetric(t *testing.T) {
	c := New(QuadInOut, 0, 100*time.Millisecond, 100)
	assert.Equal(t, 50*time.Millisecond, c.At(50))
	for i := 0; i <= 50; i++ {
		assert.InDelta(t, float64(100*time.Millisecond), float64(c.At(i)+c.At(100-i)), 2, "step %d", i)
	}
}

func TestMonotonicShapes(t *testing.T) {
	for _, s := range []Shape{Linear, QuadIn, QuadOut, QuadInOut, CircularIn, CircularOut,
		CircularInOut, ExpoIn, ExpoOut, ExpoInOut} {
		c := New(s, 10*time.Millisecond, 90*time.Millisecond, 50)
		for i := 1; i <= 50; i++ {
			assert.GreaterOrEqual(t, c.At(i), c.At(i-1), "%s step %d", s, i)
		}
	}
}

func TestQuadInAcceleratesQuadOutDecelerates(t *testing.T) {
	in := New(QuadIn, 0, 100*time.Millisecond, 10)
	out := New(QuadOut, 0, 100*time.Millisecond, 10)
	assert.Equal(t, time.Millisecond, in.At(1))
	assert.Equal(t, 19*time.Millisecond, out.At(1))
}

func TestBackOvershoots(t *testing.T) {
	c := New(BackIn, 10*time.Millisecond, 50*time.Millisecond, 100)
	lowest := c.At(0)
	for i := 0; i <= 100; i++ {
		if d := c.At(i); d < lowest {
			lowest = d
		}
	}
	assert.Less(t, lowest, 10*time.Millisecond)
}

func TestZeroStepCurveStaysAtStart(t *testing.T) {
	c := New(QuadIn, 50*time.Millisecond, 10*time.Millisecond, 0)
	assert.Equal(t, 50*time.Millisecond, c.At(0))
	assert.Equal(t, 50*time.Millisecond, c.At(5))
}

func TestReverse(t *testing.T) {
	c := New(QuadInOut, 50*time.Millisecond, 10*time.Millisecond, 200)
	r := c.Reverse()
	assert.Equal(t, 10*time.Millisecond, r.Start)
	assert.Equal(t, 50*time.Millisecond, r.End)
	assert.Equal(t, c.Shape, r.Shape)
	assert.Equal(t, c.Steps, r.Steps)
	// Accelerating then reversed deceleration lands on original delay.
	assert.Equal(t, c.At(c.Steps), r.At(0))
	assert.Equal(t, c.At(0), r.At(r.Steps))
}

func TestFuncIgnoresTotal(t *testing.T) {
	c := New(Linear, 0, 100*time.Millisecond, 10)
	f := c.Func()
	assert.Equal(t, 30*time.Millisecond, f(3, 10))
	assert.Equal(t, 30*time.Millisecond, f(3, 1000))
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]Shape{
		"linear":            Linear,
		"LinearInOut":       Linear,
		"quad-in":           QuadIn,
		"QuadEaseIn":        QuadIn,
		"QuadEaseOut":       QuadOut,
		"quad_in_out":       QuadInOut,
		"ExponentialEaseIn": ExpoIn,
		"expo-in-out":       ExpoInOut,
		"BounceEaseInOut":   BounceInOut,
		"back-out":          BackOut,
		"Elastic In":        ElasticIn,
		"circular-out":      CircularOut,
	} {
		got, err := ParseShape(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseShape("wobble")
	assert.Error(t, err)
}

func TestShapeText(t *testing.T) {
	for _, s := range Shapes() {
		b, err := s.MarshalText()
		require.NoError(t, err)
		var got Shape
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, s, got)
	}
}
