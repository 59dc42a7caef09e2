package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aliher1911/pimotor/easing"
	"github.com/aliher1911/pimotor/shield"

	logger "github.com/d2r2/go-logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
stepper: STEPPER2
mode: full
delay: 5ms
motion:
  initial_delay: 80ms
  steps: 400
  segments:
    - curve: QuadEaseIn
      delay: 10ms
      weight: 0.25
    - curve: linear
      delay: 10ms
      weight: 0.5
    - curve: bounce-out
      delay: 80ms
      weight: 0.25
  directions: [backward]
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "STEPPER2", c.Stepper)
	assert.Equal(t, "full", c.Mode)
	assert.Equal(t, 5*time.Millisecond, c.Delay)
	// Not present in file.
	assert.Equal(t, 200, c.Steps)
	lvl, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logger.DebugLevel, lvl)

	assert.Equal(t, 80*time.Millisecond, c.Motion.InitialDelay)
	assert.Equal(t, []Segment{
		{Curve: easing.QuadIn, Delay: 10 * time.Millisecond, Weight: 0.25},
		{Curve: easing.Linear, Delay: 10 * time.Millisecond, Weight: 0.5},
		{Curve: easing.BounceOut, Delay: 80 * time.Millisecond, Weight: 0.25},
	}, c.Motion.Segments)
	assert.Equal(t, []string{"backward"}, c.Motion.Directions)

	s := c.Motion.Sequence()
	assert.Equal(t, 400, s.Steps())
	assert.Equal(t, 80*time.Millisecond, s.Delay())
	segs := s.Segments()
	require.Len(t, segs, 3)
	assert.Equal(t, []int{100, 200, 100}, []int{segs[0].Steps(), segs[1].Steps(), segs[2].Steps()})
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"stepper":   "stepper: STEPPER3",
		"mode":      "mode: quarter",
		"curve":     "motion:\n  segments:\n    - curve: wobble\n      delay: 1ms\n      weight: 1",
		"weight":    "motion:\n  segments:\n    - curve: linear\n      delay: 1ms\n      weight: -1",
		"direction": "motion:\n  directions: [up]",
		"level":     "log_level: chatty",
		"steps":     "steps: -4",
		"duration":  "delay: soon",
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
	_, err := Parse([]byte("stepper: STEPPER9"))
	assert.ErrorIs(t, err, shield.ErrUnknownDevice)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBackward(t *testing.T) {
	b, err := Backward("Forward")
	require.NoError(t, err)
	assert.False(t, b)
	b, err = Backward("reverse")
	require.NoError(t, err)
	assert.True(t, b)
}
