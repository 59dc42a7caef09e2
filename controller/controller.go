// Package controller owns shield devices and runs stepper moves, possibly
// several at once with one goroutine per motor.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aliher1911/pimotor/actuator"
	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/motion"

	logger "github.com/d2r2/go-logger"
	"golang.org/x/sync/errgroup"
)

var lg = logger.NewPackageLogger("controller", logger.InfoLevel)

// Move is a stepper motion. If Sequence is set it is executed instead of
// Delay and Steps.
type Move struct {
	Stepper  *actuator.Stepper
	Backward bool
	Delay    actuator.Delay
	Steps    int
	Sequence *motion.Sequence
}

func (m Move) step() motion.StepFunc {
	if m.Backward {
		return m.Stepper.Backward
	}
	return m.Stepper.Forward
}

func (m Move) run(ctx context.Context) error {
	if m.Sequence != nil {
		return m.Sequence.Execute(ctx, m.step())
	}
	return m.step()(ctx, m.Delay, m.Steps)
}

// Run executes moves concurrently. First failure cancels other moves, which
// leave their motors de-energized.
func Run(ctx context.Context, moves ...Move) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := m.run(ctx); err != nil {
				return fmt.Errorf("move %d: %w", i+1, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Controller keeps track of devices created on a port so they can all be
// powered off on exit.
type Controller struct {
	port gpio.Port

	mu       sync.Mutex
	steppers map[string]*actuator.Stepper
	motors   map[string]*actuator.Motor
}

func New(port gpio.Port) *Controller {
	return &Controller{
		port:     port,
		steppers: make(map[string]*actuator.Stepper),
		motors:   make(map[string]*actuator.Motor),
	}
}

func (c *Controller) Port() gpio.Port {
	return c.port
}

// Stepper returns stepper on shield port name creating it on first use.
func (c *Controller) Stepper(name string) (*actuator.Stepper, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.steppers[name]; ok {
		return s, nil
	}
	s, err := actuator.NewStepper(c.port, name)
	if err != nil {
		return nil, err
	}
	c.steppers[name] = s
	return s, nil
}

// Motor returns DC motor on shield port name creating it on first use.
// Asking for a created motor with a different wiring config is an error.
func (c *Controller) Motor(name string, config int) (*actuator.Motor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.motors[name]; ok {
		if m.Config() != config {
			return nil, fmt.Errorf("motor %s already created with config %d, requested %d",
				name, m.Config(), config)
		}
		return m, nil
	}
	m, err := actuator.NewMotor(c.port, name, config)
	if err != nil {
		return nil, err
	}
	c.motors[name] = m
	return m, nil
}

// Shutdown powers off every device and releases the port. Callers must
// cancel running moves first.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for n, s := range c.steppers {
		if err := s.Release(); err != nil {
			errs = append(errs, fmt.Errorf("stepper %s: %w", n, err))
		}
	}
	for n, m := range c.motors {
		if err := m.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("motor %s: %w", n, err))
		}
	}
	if err := c.port.Close(); err != nil {
		errs = append(errs, err)
	}
	lg.Infof("shutdown %d steppers, %d motors", len(c.steppers), len(c.motors))
	return errors.Join(errs...)
}
