package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aliher1911/pimotor/actuator"
	"github.com/aliher1911/pimotor/controller"
	"github.com/aliher1911/pimotor/easing"
	"github.com/aliher1911/pimotor/indicator"
	"github.com/aliher1911/pimotor/motion"
	"github.com/aliher1911/pimotor/sensor"
)

type StepOpts struct {
	Stepper  string
	Mode     string
	Delay    time.Duration
	Steps    int
	Backward bool
}

// Step makes a constant speed move.
func Step(o StepOpts, sigs <-chan os.Signal) error {
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		s, err := ctrl.Stepper(o.Stepper)
		if err != nil {
			return err
		}
		s.SetMode(o.Mode)
		fmt.Printf("moving %s %d steps in %s mode, delay %s\n", o.Stepper, o.Steps, s.Mode(), o.Delay)
		return controller.Run(ctx, controller.Move{
			Stepper:  s,
			Backward: o.Backward,
			Delay:    actuator.Fixed(o.Delay),
			Steps:    o.Steps,
		})
	})
}

// Party exercises the motor through half, double and single modes back and
// forth.
func Party(name string, delay time.Duration, steps int, sigs <-chan os.Signal) error {
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		s, err := ctrl.Stepper(name)
		if err != nil {
			return err
		}
		d := actuator.Fixed(delay)
		for _, p := range []struct {
			mode  string
			steps int
			moves []motion.StepFunc
		}{
			{"half", steps * 2, []motion.StepFunc{s.Forward, s.Backward}},
			{"full", steps, []motion.StepFunc{s.Backward, s.Forward}},
			{"wave", steps, []motion.StepFunc{s.Forward, s.Backward}},
		} {
			fmt.Printf("back and forth in %s mode\n", p.mode)
			s.SetMode(p.mode)
			for _, m := range p.moves {
				if err := m(ctx, d, p.steps); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type EaseOpts struct {
	Stepper string
	Mode    string
	Curve   string
	Start   time.Duration
	End     time.Duration
	Steps   int
	// Return decelerates back to start delay instead of repeating the curve
	// backward.
	Return bool
}

// Ease moves forward with delays following the curve, then either backward
// along the same curve or forward along the reversed one.
func Ease(o EaseOpts, sigs <-chan os.Signal) error {
	r := easing.Ramp{Start: o.Start, End: o.End}
	there, ok := r.ByName(o.Curve, o.Steps)
	if !ok {
		return fmt.Errorf("unknown curve %q", o.Curve)
	}
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		s, err := ctrl.Stepper(o.Stepper)
		if err != nil {
			return err
		}
		s.SetMode(o.Mode)
		fmt.Printf("%s ramp %s -> %s over %d steps\n", o.Curve, o.Start, o.End, o.Steps)
		if err := s.Forward(ctx, actuator.Dynamic(there), o.Steps); err != nil {
			return err
		}
		if o.Return {
			back, _ := r.Reverse().ByName(o.Curve, o.Steps)
			return s.Forward(ctx, actuator.Dynamic(back), o.Steps)
		}
		return s.Backward(ctx, actuator.Dynamic(there), o.Steps)
	})
}

type MotorOpts struct {
	Motors   []string
	Config   int
	Speed    float64
	Duration time.Duration
	Reverse  bool
	Test     bool
}

// Motor runs DC motors linked together for a duration.
func Motor(o MotorOpts, sigs <-chan os.Signal) error {
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		var l actuator.LinkedMotors
		for _, n := range o.Motors {
			m, err := ctrl.Motor(n, o.Config)
			if err != nil {
				return err
			}
			m.Test(o.Test)
			l = append(l, m)
		}
		move := l.Forward
		if o.Reverse {
			move = l.Reverse
		}
		fmt.Printf("running %v at %.0f%% for %s\n", o.Motors, o.Speed, o.Duration)
		if err := move(o.Speed); err != nil {
			return err
		}
		if err := ctrl.Port().Sleep(ctx, o.Duration); err != nil {
			return err
		}
		return l.Stop()
	})
}

// Sense takes n readings of a sensor with interval between them.
func Sense(name string, boundary float64, n int, interval time.Duration, sigs <-chan os.Signal) error {
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		s, err := sensor.New(ctrl.Port(), name, boundary)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				if err := ctrl.Port().Sleep(ctx, interval); err != nil {
					return err
				}
			}
			on, err := s.Trigger(ctx)
			if err != nil {
				fmt.Printf("failed to read %s: %s\n", name, err)
				continue
			}
			if s.Kind() == sensor.Ultrasonic {
				fmt.Printf("reading=%3d, triggered=%t, distance=%.1fcm\n", i, on, s.LastRead())
			} else {
				fmt.Printf("reading=%3d, triggered=%t\n", i, on)
			}
		}
		return nil
	})
}

// Arrows blinks all four arrows, each one period longer than the previous.
func Arrows(count int, period time.Duration, sigs <-chan os.Signal) error {
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		var arrows []*indicator.Arrow
		for i := 1; i <= 4; i++ {
			a, err := indicator.NewArrow(ctrl.Port(), i)
			if err != nil {
				return err
			}
			arrows = append(arrows, a)
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		errC := make(chan error, len(arrows))
		for i, a := range arrows {
			r, opsC := indicator.NewRunner(a)
			go func() {
				errC <- r.Run(ctx)
			}()
			opsC <- indicator.Blink(count, time.Duration(i+1)*period)
		}
		wait := time.Duration(4*count) * period
		err := ctrl.Port().Sleep(ctx, wait)
		cancel()
		for range arrows {
			<-errC
		}
		return err
	})
}
