package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/gpio/gpiotest"
	"github.com/aliher1911/pimotor/shield"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns base + n*step on n-th call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		r := t
		t = t.Add(step)
		return r
	}
}

func TestInfrared(t *testing.T) {
	for name, line := range map[string]gpio.Line{"IR1": 7, "IR2": 12} {
		p := gpiotest.New()
		s, err := New(p, name, 0)
		require.NoError(t, err)
		p.Script(line, rpio.High, rpio.Low)

		on, err := s.Trigger(context.Background())
		require.NoError(t, err)
		assert.True(t, on, name)
		assert.True(t, s.Triggered(), name)

		on, err = s.Trigger(context.Background())
		require.NoError(t, err)
		assert.False(t, on, name)
	}
}

func TestUltrasonic(t *testing.T) {
	for _, tc := range []struct {
		boundary  float64
		triggered bool
	}{
		{50, true},
		{20, false},
	} {
		p := gpiotest.New()
		s, err := New(p, "ULTRASONIC", tc.boundary)
		require.NoError(t, err)
		assert.Equal(t, Ultrasonic, s.Kind())
		s.now = stepClock(time.Millisecond)
		p.Script(31, rpio.Low, rpio.Low, rpio.High, rpio.High, rpio.High, rpio.Low)

		on, err := s.Trigger(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tc.triggered, on)
		// Echo lasted 2ms.
		assert.InDelta(t, 34.3, s.LastRead(), 1e-9)

		assert.Equal(t, []time.Duration{settleTime, triggerPulse}, p.Sleeps())
		w := p.Writes(29)
		require.Len(t, w, 2)
		assert.Equal(t, rpio.High, w[0].State)
		assert.Equal(t, rpio.Low, w[1].State)
	}
}

func TestUltrasonicNoEcho(t *testing.T) {
	p := gpiotest.New()
	s, err := New(p, "ULTRASONIC", 10)
	require.NoError(t, err)
	s.now = stepClock(time.Millisecond)

	_, err = s.Trigger(context.Background())
	assert.ErrorIs(t, err, ErrNoEcho)
}

func TestUltrasonicCancelled(t *testing.T) {
	p := gpiotest.New()
	s, err := New(p, "ULTRASONIC", 10)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Trigger(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.Writes(29))
}

func TestUnknownSensor(t *testing.T) {
	_, err := New(gpiotest.New(), "IR3", 0)
	assert.ErrorIs(t, err, shield.ErrUnknownDevice)
}
