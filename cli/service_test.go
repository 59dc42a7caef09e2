package cli

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/gpio/gpiotest"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stepper1Coils = []gpio.Line{13, 15, 18, 16}

func fakePort(t *testing.T) *gpiotest.Port {
	t.Helper()
	p := gpiotest.New()
	prev := Open
	Open = func() (gpio.Port, error) {
		return p, nil
	}
	t.Cleanup(func() {
		Open = prev
	})
	return p
}

func assertCoilsOff(t *testing.T, p *gpiotest.Port) {
	t.Helper()
	for _, l := range stepper1Coils {
		assert.Equal(t, rpio.Low, p.Level(l), "coil %s", l)
	}
}

func TestStep(t *testing.T) {
	p := fakePort(t)
	err := Step(StepOpts{
		Stepper: "STEPPER1",
		Mode:    "full",
		Delay:   10 * time.Millisecond,
		Steps:   5,
	}, nil)
	require.NoError(t, err)
	sleeps := p.Sleeps()
	require.Len(t, sleeps, 4)
	for _, s := range sleeps {
		assert.Equal(t, 10*time.Millisecond, s)
	}
	assertCoilsOff(t, p)
	assert.Equal(t, rpio.Low, p.Level(11), "enable released")
	assert.True(t, p.Closed())
}

func TestStepUnknownStepper(t *testing.T) {
	p := fakePort(t)
	err := Step(StepOpts{Stepper: "STEPPER9", Steps: 5}, nil)
	require.Error(t, err)
	assert.True(t, p.Closed())
}

func TestOpenFailure(t *testing.T) {
	prev := Open
	Open = func() (gpio.Port, error) {
		return nil, errors.New("no gpio")
	}
	defer func() { Open = prev }()
	require.EqualError(t, Party("STEPPER1", time.Millisecond, 10, nil), "no gpio")
}

func TestParty(t *testing.T) {
	p := fakePort(t)
	require.NoError(t, Party("STEPPER1", time.Millisecond, 10, nil))
	// half: 2 moves of 20 steps, full and wave: 2 moves of 10 steps each.
	assert.Len(t, p.Sleeps(), 2*19+4*9)
	assertCoilsOff(t, p)
}

func TestInterrupt(t *testing.T) {
	p := fakePort(t)
	sigs := make(chan os.Signal, 1)
	var once sync.Once
	p.OnSleep = func(time.Duration) {
		once.Do(func() {
			sigs <- syscall.SIGINT
		})
		time.Sleep(time.Millisecond)
	}
	err := Step(StepOpts{
		Stepper: "STEPPER1",
		Mode:    "half",
		Delay:   time.Millisecond,
		Steps:   10000,
	}, sigs)
	require.NoError(t, err, "interruption is not a failure")
	assert.Less(t, len(p.Sleeps()), 9999)
	assertCoilsOff(t, p)
	assert.True(t, p.Closed())
}

func TestEase(t *testing.T) {
	p := fakePort(t)
	err := Ease(EaseOpts{
		Stepper: "STEPPER1",
		Mode:    "half",
		Curve:   "linear",
		Start:   10 * time.Millisecond,
		End:     20 * time.Millisecond,
		Steps:   10,
	}, nil)
	require.NoError(t, err)
	sleeps := p.Sleeps()
	require.Len(t, sleeps, 18)
	assert.Equal(t, 11*time.Millisecond, sleeps[0])
	assert.Equal(t, 19*time.Millisecond, sleeps[8])
	assert.Equal(t, sleeps[:9], sleeps[9:])
}

func TestEaseReturn(t *testing.T) {
	p := fakePort(t)
	err := Ease(EaseOpts{
		Stepper: "STEPPER1",
		Curve:   "linear",
		Start:   10 * time.Millisecond,
		End:     20 * time.Millisecond,
		Steps:   10,
		Return:  true,
	}, nil)
	require.NoError(t, err)
	sleeps := p.Sleeps()
	require.Len(t, sleeps, 18)
	assert.Equal(t, 11*time.Millisecond, sleeps[0])
	assert.Equal(t, 19*time.Millisecond, sleeps[9])
}

func TestEaseUnknownCurve(t *testing.T) {
	p := fakePort(t)
	err := Ease(EaseOpts{Stepper: "STEPPER1", Curve: "wobble", Steps: 10}, nil)
	require.Error(t, err)
	assert.Empty(t, p.Events())
}

func TestMotorTestMode(t *testing.T) {
	p := fakePort(t)
	err := Motor(MotorOpts{
		Motors:   []string{"MOTOR1"},
		Config:   1,
		Speed:    50,
		Duration: time.Second,
		Test:     true,
	}, nil)
	require.NoError(t, err)
	// MOTOR1 arrow is arrow 4.
	arrow := p.Writes(36)
	require.NotEmpty(t, arrow)
	assert.Equal(t, rpio.High, arrow[0].State)
	assert.Equal(t, rpio.Low, arrow[len(arrow)-1].State)
	assert.Equal(t, []time.Duration{time.Second}, p.Sleeps())
}

func TestMotorLinked(t *testing.T) {
	p := fakePort(t)
	err := Motor(MotorOpts{
		Motors:   []string{"MOTOR1", "MOTOR2"},
		Config:   1,
		Speed:    150,
		Duration: time.Second,
	}, nil)
	require.NoError(t, err)
	for _, l := range []gpio.Line{11, 22} {
		duties := p.Duties(l)
		require.NotEmpty(t, duties)
		assert.Equal(t, 100.0, duties[0], "speed clamped on %s", l)
		assert.Equal(t, 0.0, duties[len(duties)-1], "stopped on %s", l)
	}
}

func TestSenseInfrared(t *testing.T) {
	p := fakePort(t)
	p.Script(7, rpio.High, rpio.Low, rpio.High)
	require.NoError(t, Sense("IR1", 0, 3, time.Millisecond, nil))
	assert.Len(t, p.Sleeps(), 2)
}

func TestArrows(t *testing.T) {
	p := fakePort(t)
	require.NoError(t, Arrows(2, time.Millisecond, nil))
	for _, l := range []gpio.Line{33, 35, 37, 36} {
		assert.Equal(t, rpio.Low, p.Level(l), "arrow on %s left lit", l)
	}
	assert.True(t, p.Closed())
}

func TestArrowsSetupFailureStartsNoBlinking(t *testing.T) {
	p := fakePort(t)
	broken := errors.New("broken led")
	// Arrow 3.
	p.Fail(37, broken)
	require.ErrorIs(t, Arrows(2, time.Millisecond, nil), broken)
	assert.Empty(t, p.Writes(33, 35, 37, 36))
	assert.True(t, p.Closed())
}

func TestProgramDefaults(t *testing.T) {
	p := fakePort(t)
	require.NoError(t, Program("", nil))
	// Two directions of two 800 step segments.
	assert.Len(t, p.Sleeps(), 4*799)
	assertCoilsOff(t, p)
	assert.True(t, p.Closed())
}
