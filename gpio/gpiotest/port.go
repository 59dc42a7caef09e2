// Package gpiotest provides a recording gpio.Port for tests.
package gpiotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aliher1911/pimotor/gpio"

	"github.com/stianeikeland/go-rpio/v4"
)

type Op int

const (
	OpOutput Op = iota
	OpInput
	OpWrite
	OpPWM
	OpDuty
	OpSleep
)

type Event struct {
	Op    Op
	Line  gpio.Line
	State rpio.State
	Freq  int
	Duty  float64
	Delay time.Duration
}

// Port records every operation. Sleeps return immediately.
type Port struct {
	mu     sync.Mutex
	events []Event
	levels map[gpio.Line]rpio.State
	modes  map[gpio.Line]Op
	reads  map[gpio.Line][]rpio.State
	fail   map[gpio.Line]error
	closed bool

	// OnSleep is invoked for every sleep before it returns.
	OnSleep func(d time.Duration)
}

var _ gpio.Port = (*Port)(nil)

func New() *Port {
	return &Port{
		levels: make(map[gpio.Line]rpio.State),
		modes:  make(map[gpio.Line]Op),
		reads:  make(map[gpio.Line][]rpio.State),
		fail:   make(map[gpio.Line]error),
	}
}

// Script queues values returned by consecutive reads of l. Once the queue is
// drained reads return the last level of the line.
func (p *Port) Script(l gpio.Line, states ...rpio.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads[l] = append(p.reads[l], states...)
}

// Fail makes output setup and writes of l return err.
func (p *Port) Fail(l gpio.Line, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail[l] = err
}

func (p *Port) record(e Event) {
	p.events = append(p.events, e)
}

func (p *Port) Output(l gpio.Line) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail[l]; err != nil {
		return err
	}
	p.modes[l] = OpOutput
	p.levels[l] = rpio.Low
	p.record(Event{Op: OpOutput, Line: l})
	return nil
}

func (p *Port) Input(l gpio.Line) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes[l] = OpInput
	p.record(Event{Op: OpInput, Line: l})
	return nil
}

func (p *Port) Write(l gpio.Line, s rpio.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail[l]; err != nil {
		return err
	}
	if m, ok := p.modes[l]; !ok || m != OpOutput {
		return fmt.Errorf("gpiotest: %s is not an output", l)
	}
	p.levels[l] = s
	p.record(Event{Op: OpWrite, Line: l, State: s})
	return nil
}

func (p *Port) Read(l gpio.Line) (rpio.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.modes[l]; !ok {
		return rpio.Low, fmt.Errorf("gpiotest: %s is not configured", l)
	}
	if q := p.reads[l]; len(q) > 0 {
		p.levels[l] = q[0]
		p.reads[l] = q[1:]
	}
	return p.levels[l], nil
}

func (p *Port) PWM(l gpio.Line, freq int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.modes[l]; !ok || m != OpOutput {
		return fmt.Errorf("gpiotest: %s is not an output", l)
	}
	p.modes[l] = OpPWM
	p.record(Event{Op: OpPWM, Line: l, Freq: freq})
	return nil
}

func (p *Port) SetDuty(l gpio.Line, percent float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.fail[l]; err != nil {
		return err
	}
	if p.modes[l] != OpPWM {
		return fmt.Errorf("gpiotest: PWM is not running on %s", l)
	}
	p.record(Event{Op: OpDuty, Line: l, Duty: percent})
	return nil
}

func (p *Port) Sleep(ctx context.Context, d time.Duration) error {
	p.mu.Lock()
	p.record(Event{Op: OpSleep, Delay: d})
	hook := p.OnSleep
	p.mu.Unlock()
	if hook != nil {
		hook(d)
	}
	return ctx.Err()
}

func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for l, m := range p.modes {
		if m == OpOutput || m == OpPWM {
			p.levels[l] = rpio.Low
		}
	}
	p.closed = true
	return nil
}

func (p *Port) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Events returns a copy of recorded events.
func (p *Port) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Reset drops recorded events but keeps line configuration and levels.
func (p *Port) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func (p *Port) Level(l gpio.Line) rpio.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.levels[l]
}

func (p *Port) Mode(l gpio.Line) (Op, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.modes[l]
	return m, ok
}

// Sleeps returns durations of all recorded sleeps.
func (p *Port) Sleeps() []time.Duration {
	var r []time.Duration
	for _, e := range p.Events() {
		if e.Op == OpSleep {
			r = append(r, e.Delay)
		}
	}
	return r
}

// Writes returns write events for the given lines in order.
func (p *Port) Writes(lines ...gpio.Line) []Event {
	want := make(map[gpio.Line]bool)
	for _, l := range lines {
		want[l] = true
	}
	var r []Event
	for _, e := range p.Events() {
		if e.Op == OpWrite && want[e.Line] {
			r = append(r, e)
		}
	}
	return r
}

// Frames groups consecutive writes to lines into full frames, one value per
// line in the order of lines. A frame is emitted every time the last line is
// written.
func (p *Port) Frames(lines ...gpio.Line) [][]uint8 {
	pos := make(map[gpio.Line]int)
	for i, l := range lines {
		pos[l] = i
	}
	var frames [][]uint8
	cur := make([]uint8, len(lines))
	for _, e := range p.Writes(lines...) {
		i := pos[e.Line]
		cur[i] = uint8(e.State)
		if i == len(lines)-1 {
			frames = append(frames, append([]uint8(nil), cur...))
		}
	}
	return frames
}

// Duties returns duty cycle values set on l.
func (p *Port) Duties(l gpio.Line) []float64 {
	var r []float64
	for _, e := range p.Events() {
		if e.Op == OpDuty && e.Line == l {
			r = append(r, e.Duty)
		}
	}
	return r
}
