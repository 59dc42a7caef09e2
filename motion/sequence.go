// Package motion chains easing curves into a single stepper move.
package motion

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aliher1911/pimotor/actuator"
	"github.com/aliher1911/pimotor/easing"

	logger "github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("motion", logger.InfoLevel)

// StepFunc moves a motor. Stepper.Forward and Stepper.Backward method values
// satisfy it.
type StepFunc func(ctx context.Context, delay actuator.Delay, steps int) error

// Segment is one easing curve of a sequence with the number of steps it is
// executed for.
type Segment struct {
	Curve easing.Curve
}

func (s Segment) Steps() int {
	return s.Curve.Steps
}

func (s Segment) Delay() actuator.Delay {
	return actuator.Dynamic(s.Curve.Func())
}

// Sequence shares a step budget between easing segments. Each segment starts
// at the delay the previous one ended on.
type Sequence struct {
	steps    int
	start    time.Duration
	segments []Segment
}

// New creates empty sequence beginning at delay start.
func New(start time.Duration, steps int) *Sequence {
	return &Sequence{
		steps: steps,
		start: start,
	}
}

// Append adds segment easing from current delay to target over
// floor(steps*weight) steps. Weights are not normalized.
func (s *Sequence) Append(shape easing.Shape, target time.Duration, weight float64) *Sequence {
	n := int(math.Floor(float64(s.steps) * weight))
	if n < 0 {
		n = 0
	}
	c := easing.New(shape, s.start, target, n)
	s.start = c.At(n)
	s.segments = append(s.segments, Segment{Curve: c})
	lg.Debugf("segment %d: %s %s -> %s over %d steps", len(s.segments), shape, c.Start, target, n)
	return s
}

// Segments returns a copy of appended segments.
func (s *Sequence) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// Delay is the delay the next appended segment will start from.
func (s *Sequence) Delay() time.Duration {
	return s.start
}

// Steps returns number of steps all segments take together.
func (s *Sequence) Steps() int {
	total := 0
	for _, seg := range s.segments {
		total += seg.Steps()
	}
	return total
}

// Execute runs segments in order through f. Execution stops on first error.
func (s *Sequence) Execute(ctx context.Context, f StepFunc) error {
	for i, seg := range s.segments {
		if err := f(ctx, seg.Delay(), seg.Steps()); err != nil {
			return fmt.Errorf("segment %d: %w", i+1, err)
		}
	}
	return nil
}
