package shield

import (
	"testing"

	"github.com/aliher1911/pimotor/gpio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMotorConfigSwapsDirection(t *testing.T) {
	m1, err := Motor("MOTOR1", 1)
	require.NoError(t, err)
	m2, err := Motor("MOTOR1", 2)
	require.NoError(t, err)
	assert.Equal(t, m1.Enable, m2.Enable)
	assert.Equal(t, m1.Forward, m2.Reverse)
	assert.Equal(t, m1.Reverse, m2.Forward)
	assert.Equal(t, 4, m1.Arrow)
}

func TestUnknownDevices(t *testing.T) {
	_, err := Motor("MOTOR5", 1)
	assert.ErrorIs(t, err, ErrUnknownDevice)
	_, err = Motor("MOTOR1", 3)
	assert.ErrorIs(t, err, ErrUnknownDevice)
	_, err = Stepper("STEPPER3")
	assert.ErrorIs(t, err, ErrUnknownDevice)
	_, err = Sensor("LIDAR")
	assert.ErrorIs(t, err, ErrUnknownDevice)
	_, err = Arrow(0)
	assert.ErrorIs(t, err, ErrUnknownDevice)
}

// Every shield line must be a usable GPIO on the header.
func TestAllPinsAreGPIO(t *testing.T) {
	var lines []gpio.Line
	for _, m := range motors {
		lines = append(lines, m.Enable, m.Forward, m.Reverse)
	}
	for _, s := range steppers {
		lines = append(lines, s.Enable[:]...)
		lines = append(lines, s.Coils[:]...)
	}
	for _, s := range sensors {
		if s.Trigger != 0 {
			lines = append(lines, s.Trigger)
		}
		lines = append(lines, s.Echo)
	}
	for _, a := range arrows {
		lines = append(lines, a)
	}
	for _, l := range lines {
		_, err := gpio.BCM(l)
		assert.NoError(t, err, "line %s", l)
	}
}
