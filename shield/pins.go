// Package shield holds pin assignments of the motor shield. All pins use
// physical header numbering.
package shield

import (
	"errors"
	"fmt"

	"github.com/aliher1911/pimotor/gpio"
)

// ErrUnknownDevice is returned for identifiers not present on the shield.
var ErrUnknownDevice = errors.New("unknown device")

// MotorPins are DC motor driver lines. Enable carries PWM speed.
type MotorPins struct {
	Enable  gpio.Line
	Forward gpio.Line
	Reverse gpio.Line
	// Arrow LED next to the motor terminal.
	Arrow int
}

// StepperPins are the enables of both H-bridges and four coil leads.
type StepperPins struct {
	Enable [2]gpio.Line
	Coils  [4]gpio.Line
}

// SensorPins are sensor header lines. Trigger is zero for passive sensors.
type SensorPins struct {
	Trigger gpio.Line
	Echo    gpio.Line
}

var motors = map[string]MotorPins{
	"MOTOR1": {Enable: 11, Forward: 15, Reverse: 13, Arrow: 4},
	"MOTOR2": {Enable: 22, Forward: 16, Reverse: 18, Arrow: 3},
	"MOTOR3": {Enable: 19, Forward: 21, Reverse: 23, Arrow: 2},
	"MOTOR4": {Enable: 32, Forward: 24, Reverse: 26, Arrow: 1},
}

var steppers = map[string]StepperPins{
	"STEPPER1": {Enable: [2]gpio.Line{11, 22}, Coils: [4]gpio.Line{13, 15, 18, 16}},
	"STEPPER2": {Enable: [2]gpio.Line{19, 32}, Coils: [4]gpio.Line{21, 23, 24, 26}},
}

var sensors = map[string]SensorPins{
	"IR1":        {Echo: 7},
	"IR2":        {Echo: 12},
	"ULTRASONIC": {Trigger: 29, Echo: 31},
}

var arrows = map[int]gpio.Line{1: 33, 2: 35, 3: 37, 4: 36}

// Motor returns pins for motor name. Config 1 is the default wiring, config 2
// swaps forward and reverse lines.
func Motor(name string, config int) (MotorPins, error) {
	m, ok := motors[name]
	if !ok {
		return MotorPins{}, fmt.Errorf("motor %q: %w", name, ErrUnknownDevice)
	}
	switch config {
	case 1:
	case 2:
		m.Forward, m.Reverse = m.Reverse, m.Forward
	default:
		return MotorPins{}, fmt.Errorf("motor %q config %d: %w", name, config, ErrUnknownDevice)
	}
	return m, nil
}

func Stepper(name string) (StepperPins, error) {
	s, ok := steppers[name]
	if !ok {
		return StepperPins{}, fmt.Errorf("stepper %q: %w", name, ErrUnknownDevice)
	}
	return s, nil
}

func Sensor(name string) (SensorPins, error) {
	s, ok := sensors[name]
	if !ok {
		return SensorPins{}, fmt.Errorf("sensor %q: %w", name, ErrUnknownDevice)
	}
	return s, nil
}

func Arrow(which int) (gpio.Line, error) {
	l, ok := arrows[which]
	if !ok {
		return 0, fmt.Errorf("arrow %d: %w", which, ErrUnknownDevice)
	}
	return l, nil
}
