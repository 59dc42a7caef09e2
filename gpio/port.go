// Package gpio is the output port the motor shield is driven through.
// Lines are identified by their physical header pin number, the way the
// shield silkscreen labels them.
package gpio

import (
	"context"
	"fmt"
	"time"

	logger "github.com/d2r2/go-logger"
	"github.com/stianeikeland/go-rpio/v4"
)

var lg = logger.NewPackageLogger("gpio", logger.InfoLevel)

// Line is a physical (BOARD numbered) header pin.
type Line int

func (l Line) String() string {
	return fmt.Sprintf("pin%d", int(l))
}

// Port is the set of primitives devices need from the GPIO header.
type Port interface {
	// Output configures line as a digital output driven low.
	Output(l Line) error
	// Input configures line as a digital input.
	Input(l Line) error
	Write(l Line, s rpio.State) error
	Read(l Line) (rpio.State, error)
	// PWM starts pulse width modulation on an output line at freq Hz with
	// 0% duty.
	PWM(l Line, freq int) error
	// SetDuty changes duty cycle of a PWM line. percent is in 0-100 range.
	SetDuty(l Line, percent float64) error
	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
	// Close drives all outputs low and releases the header.
	Close() error
}

// Level converts coil or flag value into pin state.
func Level(v uint8) rpio.State {
	if v == 0 {
		return rpio.Low
	}
	return rpio.High
}

// Sleep waits for d unless ctx is cancelled first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
