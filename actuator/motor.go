package actuator

import (
	"errors"
	"fmt"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/indicator"
	"github.com/aliher1911/pimotor/shield"

	"github.com/stianeikeland/go-rpio/v4"
)

// PWMFrequency of DC motor enable lines in Hz.
const PWMFrequency = 50

// Motor is a brushed DC motor on one of the shield motor ports. Speed is the
// PWM duty cycle of the bridge enable line.
type Motor struct {
	port   gpio.Port
	pins   shield.MotorPins
	config int
	arrow  *indicator.Arrow
	// In test mode arrow is lit instead of moving the motor.
	test bool
}

// NewMotor creates motor on port name (MOTOR1..MOTOR4). config 1 or 2
// selects which of the bridge lines is treated as forward.
func NewMotor(port gpio.Port, name string, config int) (*Motor, error) {
	pins, err := shield.Motor(name, config)
	if err != nil {
		return nil, err
	}
	arrow, err := indicator.NewArrow(port, pins.Arrow)
	if err != nil {
		return nil, err
	}
	for _, l := range []gpio.Line{pins.Enable, pins.Forward, pins.Reverse} {
		if err := port.Output(l); err != nil {
			return nil, fmt.Errorf("motor %s: %w", name, err)
		}
	}
	if err := port.PWM(pins.Enable, PWMFrequency); err != nil {
		return nil, fmt.Errorf("motor %s: %w", name, err)
	}
	lg.Infof("created motor %s at enable=%s forward=%s reverse=%s",
		name, pins.Enable, pins.Forward, pins.Reverse)
	return &Motor{
		port:   port,
		pins:   pins,
		config: config,
		arrow:  arrow,
	}, nil
}

// Config returns wiring config the motor was created with.
func (m *Motor) Config() int {
	return m.config
}

// Test switches test mode on or off.
func (m *Motor) Test(on bool) {
	m.test = on
}

// Forward starts motor in its forward direction. speed is duty cycle
// percentage from 0 to 100.
func (m *Motor) Forward(speed float64) error {
	lg.Debugf("forward %.0f%%", speed)
	if m.test {
		return m.arrow.On()
	}
	return m.drive(speed, rpio.High, rpio.Low)
}

// Reverse starts motor in its reverse direction.
func (m *Motor) Reverse(speed float64) error {
	lg.Debugf("reverse %.0f%%", speed)
	if m.test {
		return m.arrow.Off()
	}
	return m.drive(speed, rpio.Low, rpio.High)
}

// Stop removes power from the motor.
func (m *Motor) Stop() error {
	lg.Debugf("stop")
	return errors.Join(
		m.arrow.Off(),
		m.drive(0, rpio.Low, rpio.Low),
	)
}

func (m *Motor) drive(speed float64, f, r rpio.State) error {
	if err := m.port.SetDuty(m.pins.Enable, clamp(speed, 0, 100)); err != nil {
		return err
	}
	if err := m.port.Write(m.pins.Forward, f); err != nil {
		return err
	}
	return m.port.Write(m.pins.Reverse, r)
}

// LinkedMotors controls a set of motors with single commands, e.g. all
// wheels of a vehicle.
type LinkedMotors []*Motor

func Link(motors ...*Motor) LinkedMotors {
	return LinkedMotors(motors)
}

func (l LinkedMotors) Forward(speed float64) error {
	return l.each(func(m *Motor) error { return m.Forward(speed) })
}

func (l LinkedMotors) Reverse(speed float64) error {
	return l.each(func(m *Motor) error { return m.Reverse(speed) })
}

func (l LinkedMotors) Stop() error {
	return l.each((*Motor).Stop)
}

func (l LinkedMotors) each(f func(*Motor) error) error {
	var errs []error
	for _, m := range l {
		if err := f(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
