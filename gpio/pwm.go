package gpio

import (
	"context"
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

// softPWM toggles a plain output pin from a goroutine. Shield enable pins
// are not wired to hardware PWM channels.
type softPWM struct {
	pin    rpio.Pin
	period time.Duration
	dutyC  chan float64
}

func newSoftPWM(pin rpio.Pin, period time.Duration) *softPWM {
	return &softPWM{
		pin:    pin,
		period: period,
		dutyC:  make(chan float64, 1),
	}
}

func (s *softPWM) SetDuty(ctx context.Context, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("gpio: duty cycle %.1f%% out of range", percent)
	}
	// Drop pending value, only latest duty matters.
	select {
	case <-s.dutyC:
	default:
	}
	select {
	case s.dutyC <- percent:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run is a PWM work loop and should be started in a separate goroutine.
func (s *softPWM) Run(ctx context.Context) {
	never := time.Duration(1<<63 - 1)
	t := time.NewTimer(never)
	defer t.Stop()
	reset := func(d time.Duration) {
		if !t.Stop() {
			select {
			case <-t.C:
			default:
			}
		}
		t.Reset(d)
	}

	duty := 0.0
	high := false
	s.pin.Low()
	for {
		switch {
		case duty <= 0:
			s.pin.Low()
			reset(never)
		case duty >= 100:
			s.pin.High()
			reset(never)
		case high:
			s.pin.Low()
			reset(s.period - s.on(duty))
		default:
			s.pin.High()
			reset(s.on(duty))
		}
		high = !high && duty > 0 && duty < 100
		select {
		case <-ctx.Done():
			s.pin.Low()
			return
		case duty = <-s.dutyC:
			high = false
		case <-t.C:
		}
	}
}

func (s *softPWM) on(duty float64) time.Duration {
	return time.Duration(float64(s.period) * duty / 100)
}
