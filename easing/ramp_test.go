package easing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRampFactories(t *testing.T) {
	r := Ramp{Start: 100 * time.Millisecond, End: 10 * time.Millisecond}
	for _, name := range []string{"linear", "quad", "circular", "expo", "elastic", "back", "bounce"} {
		f, ok := r.ByName(name, 200)
		require.True(t, ok, name)
		assert.Equal(t, r.Start, f(0, 200), name)
		assert.Equal(t, r.End, f(200, 200), name)
	}
	_, ok := r.ByName("quad-in", 10)
	assert.False(t, ok)
}

func TestRampReverse(t *testing.T) {
	r := DefaultRamp()
	assert.Equal(t, Ramp{Start: 100 * time.Millisecond, End: 50 * time.Millisecond}, r.Reverse())

	up := r.Quad(10)
	down := r.Reverse().Quad(10)
	assert.Equal(t, up(10, 10), down(0, 10))
	assert.Equal(t, up(0, 10), down(10, 10))
}

func TestRampUsesInOutShapes(t *testing.T) {
	r := Ramp{Start: 0, End: 100 * time.Millisecond}
	assert.Equal(t, QuadInOut, r.Curve(QuadInOut, 4).Shape)
	assert.Equal(t, New(QuadInOut, 0, 100*time.Millisecond, 10).At(3), r.Quad(10)(3, 10))
	assert.Equal(t, New(BounceInOut, 0, 100*time.Millisecond, 10).At(7), r.Bounce(10)(7, 10))
}
