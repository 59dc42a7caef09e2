package actuator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/shield"

	logger "github.com/d2r2/go-logger"
	"github.com/stianeikeland/go-rpio/v4"
)

var lg = logger.NewPackageLogger("actuator", logger.InfoLevel)

// Stepper drives a bipolar or unipolar stepper motor connected to one of the
// shield stepper ports.
//
// Position in the coil sequence is not kept between moves, every move starts
// from the first entry of the active pattern.
type Stepper struct {
	mu   sync.Mutex
	port gpio.Port
	pins shield.StepperPins
	mode Mode
}

// NewStepper creates stepper on shield port name (STEPPER1 or STEPPER2).
func NewStepper(port gpio.Port, name string) (*Stepper, error) {
	pins, err := shield.Stepper(name)
	if err != nil {
		return nil, err
	}
	return NewStepperPins(port, pins)
}

func NewStepperPins(port gpio.Port, pins shield.StepperPins) (*Stepper, error) {
	lg.Infof("creating new stepper at pins %v, enable %v", pins.Coils, pins.Enable)
	for _, l := range pins.Coils {
		if err := port.Output(l); err != nil {
			return nil, fmt.Errorf("stepper coil: %w", err)
		}
	}
	for _, l := range pins.Enable {
		if err := port.Output(l); err != nil {
			return nil, fmt.Errorf("stepper enable: %w", err)
		}
		if err := port.Write(l, rpio.High); err != nil {
			return nil, fmt.Errorf("stepper enable: %w", err)
		}
	}
	return &Stepper{
		port: port,
		pins: pins,
		mode: Single,
	}, nil
}

// SetMode selects coil sequence by name. "full" and "double" select Double,
// "half" selects Half. Any other name selects Single.
func (s *Stepper) SetMode(name string) {
	m, ok := LookupMode(name)
	if !ok {
		lg.Warningf("unknown step mode %q, falling back to %s", name, Single)
		m = Single
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

func (s *Stepper) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Forward makes steps, waiting delay before each step but the first.
func (s *Stepper) Forward(ctx context.Context, delay Delay, steps int) error {
	return s.advance(ctx, false, delay, steps)
}

// Backward is Forward with lead order of every coil state reversed.
func (s *Stepper) Backward(ctx context.Context, delay Delay, steps int) error {
	return s.advance(ctx, true, delay, steps)
}

// Stop removes power from all coils.
func (s *Stepper) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCoils(Coils{})
}

// Release removes power from coils and disables both bridges.
func (s *Stepper) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.setCoils(Coils{})
	for _, l := range s.pins.Enable {
		if werr := s.port.Write(l, rpio.Low); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	return err
}

func (s *Stepper) advance(ctx context.Context, backward bool, delay Delay, steps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.mode.Pattern()
	lg.Debugf("moving %d steps, mode=%s, backward=%t, dynamic=%t",
		steps, s.mode, backward, delay.IsDynamic())
	for i := 0; i < steps; i++ {
		if i > 0 {
			if err := s.port.Sleep(ctx, delay.At(i, steps)); err != nil {
				return s.abort(i, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return s.abort(i, err)
		}
		c := seq[i%len(seq)]
		if backward {
			c = c.Reversed()
		}
		if err := s.setCoils(c); err != nil {
			return fmt.Errorf("step %d of %d: %w", i, steps, err)
		}
	}
	return nil
}

// abort leaves motor de-energized when move is interrupted.
func (s *Stepper) abort(step int, err error) error {
	lg.Infof("move interrupted at step %d: %s", step, err)
	if serr := s.setCoils(Coils{}); serr != nil {
		return errors.Join(err, serr)
	}
	return err
}

func (s *Stepper) setCoils(c Coils) error {
	if c.Interferes() {
		lg.Warningf("cross coil interference %v", c)
	}
	for i, l := range s.pins.Coils {
		if err := s.port.Write(l, gpio.Level(c[i])); err != nil {
			return fmt.Errorf("coil %d: %w", i+1, err)
		}
	}
	return nil
}
