package gpio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

// RPi is a Port backed by Raspberry Pi GPIO memory.
type RPi struct {
	mu      sync.Mutex
	pins    map[Line]rpio.Pin
	outputs map[Line]bool
	pwms    map[Line]*softPWM

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Port = (*RPi)(nil)

// Open maps GPIO memory. Only one RPi should be open at a time.
func Open() (*RPi, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open GPIO: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RPi{
		pins:    make(map[Line]rpio.Pin),
		outputs: make(map[Line]bool),
		pwms:    make(map[Line]*softPWM),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

func (p *RPi) setup(l Line) (rpio.Pin, error) {
	if pin, ok := p.pins[l]; ok {
		return pin, nil
	}
	n, err := BCM(l)
	if err != nil {
		return 0, err
	}
	pin := rpio.Pin(n)
	p.pins[l] = pin
	return pin, nil
}

func (p *RPi) Output(l Line) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pin, err := p.setup(l)
	if err != nil {
		return err
	}
	pin.Output()
	pin.Low()
	p.outputs[l] = true
	lg.Debugf("%s (gpio%d) set to output", l, pin)
	return nil
}

func (p *RPi) Input(l Line) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pin, err := p.setup(l)
	if err != nil {
		return err
	}
	pin.Input()
	pin.Pull(rpio.PullOff)
	p.outputs[l] = false
	lg.Debugf("%s (gpio%d) set to input", l, pin)
	return nil
}

func (p *RPi) Write(l Line, s rpio.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pin, ok := p.pins[l]
	if !ok || !p.outputs[l] {
		return fmt.Errorf("gpio: %s is not configured as output", l)
	}
	if _, ok := p.pwms[l]; ok {
		return fmt.Errorf("gpio: %s is driven by PWM", l)
	}
	pin.Write(s)
	return nil
}

func (p *RPi) Read(l Line) (rpio.State, error) {
	p.mu.Lock()
	pin, ok := p.pins[l]
	p.mu.Unlock()
	if !ok {
		return rpio.Low, fmt.Errorf("gpio: %s is not configured", l)
	}
	return pin.Read(), nil
}

func (p *RPi) PWM(l Line, freq int) error {
	if freq <= 0 {
		return fmt.Errorf("gpio: invalid PWM frequency %d", freq)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	pin, ok := p.pins[l]
	if !ok || !p.outputs[l] {
		return fmt.Errorf("gpio: %s is not configured as output", l)
	}
	if _, ok := p.pwms[l]; ok {
		return fmt.Errorf("gpio: PWM already running on %s", l)
	}
	s := newSoftPWM(pin, time.Second/time.Duration(freq))
	p.pwms[l] = s
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		s.Run(p.ctx)
	}()
	return nil
}

func (p *RPi) SetDuty(l Line, percent float64) error {
	p.mu.Lock()
	s, ok := p.pwms[l]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("gpio: PWM is not running on %s", l)
	}
	return s.SetDuty(p.ctx, percent)
}

func (p *RPi) Sleep(ctx context.Context, d time.Duration) error {
	return Sleep(ctx, d)
}

func (p *RPi) Close() error {
	p.cancel()
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for l, out := range p.outputs {
		if out {
			p.pins[l].Low()
		}
	}
	p.pwms = make(map[Line]*softPWM)
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("failed to close GPIO: %w", err)
	}
	return nil
}
