// Package indicator drives the arrow LEDs printed next to the shield motor
// terminals.
package indicator

import (
	"context"
	"time"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/shield"

	logger "github.com/d2r2/go-logger"
	"github.com/stianeikeland/go-rpio/v4"
)

var lg = logger.NewPackageLogger("indicator", logger.InfoLevel)

// Arrow is one of four LED arrows. Numbering starts with arrow closest to
// the shield power pins and runs clockwise.
type Arrow struct {
	port  gpio.Port
	line  gpio.Line
	which int
}

func NewArrow(port gpio.Port, which int) (*Arrow, error) {
	l, err := shield.Arrow(which)
	if err != nil {
		return nil, err
	}
	if err := port.Output(l); err != nil {
		return nil, err
	}
	return &Arrow{port: port, line: l, which: which}, nil
}

func (a *Arrow) On() error {
	return a.port.Write(a.line, rpio.High)
}

func (a *Arrow) Off() error {
	return a.port.Write(a.line, rpio.Low)
}

func (a *Arrow) Set(on bool) error {
	if on {
		return a.On()
	}
	return a.Off()
}

// Op is a link in a chain of timed LED states.
type Op struct {
	on bool
	t  time.Duration
	n  *Op
}

// NewOp creates chain of operations starting with state on held for t
// followed by next chains.
func NewOp(on bool, t time.Duration, next ...*Op) *Op {
	root := &Op{
		on: on,
		t:  t,
	}
	last := root
	for _, n := range next {
		last.n = n
		last = n
		for ; last.n != nil; last = last.n {
		}
	}
	return root
}

// Blink creates chain of n on/off periods.
func Blink(n int, period time.Duration) *Op {
	var ops []*Op
	for i := 0; i < n; i++ {
		ops = append(ops, NewOp(true, period/2), NewOp(false, period/2))
	}
	if len(ops) == 0 {
		return NewOp(false, 0)
	}
	return NewOp(ops[0].on, ops[0].t, ops[1:]...)
}

// Runner plays op chains on an arrow.
type Runner struct {
	a    *Arrow
	opsC chan *Op
}

func NewRunner(a *Arrow) (*Runner, chan<- *Op) {
	c := make(chan *Op, 10)
	return &Runner{
		a:    a,
		opsC: c,
	}, c
}

// Run is a LED work loop and should be started in a separate goroutine.
// New chain received from channel replaces the one being played.
func (r *Runner) Run(ctx context.Context) error {
	never := time.Duration(1<<63 - 1)
	t := time.NewTimer(never)
	next := &Op{
		on: false,
		t:  never,
	}
	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return r.a.Off()
		case next = <-r.opsC:
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
		case <-t.C:
		}
		if err := r.a.Set(next.on); err != nil {
			lg.Errorf("arrow %d: %s", r.a.which, err)
		}
		t.Reset(next.t)
		if next.n != nil {
			next = next.n
		} else {
			// Turn off at the end of sequence.
			next = &Op{
				on: false,
				t:  never,
			}
		}
	}
}
