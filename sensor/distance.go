package sensor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aliher1911/pimotor/gpio"
	"github.com/aliher1911/pimotor/shield"

	logger "github.com/d2r2/go-logger"
	"github.com/stianeikeland/go-rpio/v4"
)

var lg = logger.NewPackageLogger("sensor", logger.InfoLevel)

// ErrNoEcho is returned when ultrasonic echo doesn't arrive or doesn't end.
var ErrNoEcho = errors.New("no echo")

type Kind int

const (
	// InfraredNear is the IR1 header.
	InfraredNear Kind = iota
	// InfraredFar is the IR2 header.
	InfraredFar
	// Ultrasonic is the HC-SR04 style trigger/echo header.
	Ultrasonic
)

var kinds = map[string]Kind{
	"IR1":        InfraredNear,
	"IR2":        InfraredFar,
	"ULTRASONIC": Ultrasonic,
}

func (k Kind) String() string {
	switch k {
	case InfraredNear:
		return "infrared-near"
	case InfraredFar:
		return "infrared-far"
	case Ultrasonic:
		return "ultrasonic"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

const (
	settleTime   = 333 * time.Millisecond
	triggerPulse = 10 * time.Microsecond
	echoTimeout  = 100 * time.Millisecond
	// Speed of sound in cm/s.
	soundSpeed = 34300
)

// Sensor is a proximity sensor on one of the shield sensor headers.
type Sensor struct {
	port gpio.Port
	kind Kind
	pins shield.SensorPins
	// Distance in cm below which ultrasonic sensor is triggered.
	boundary float64

	triggered bool
	lastRead  float64

	now func() time.Time
}

// New creates sensor on header name (IR1, IR2 or ULTRASONIC).
func New(port gpio.Port, name string, boundary float64) (*Sensor, error) {
	k, ok := kinds[name]
	if !ok {
		return nil, fmt.Errorf("sensor %q: %w", name, shield.ErrUnknownDevice)
	}
	pins, err := shield.Sensor(name)
	if err != nil {
		return nil, err
	}
	if k == Ultrasonic {
		if err := port.Output(pins.Trigger); err != nil {
			return nil, err
		}
	}
	if err := port.Input(pins.Echo); err != nil {
		return nil, err
	}
	return &Sensor{
		port:     port,
		kind:     k,
		pins:     pins,
		boundary: boundary,
		now:      time.Now,
	}, nil
}

func (s *Sensor) Kind() Kind {
	return s.kind
}

// Trigger takes a reading and updates triggered state.
func (s *Sensor) Trigger(ctx context.Context) (bool, error) {
	var err error
	switch s.kind {
	case InfraredNear, InfraredFar:
		err = s.infrared()
	case Ultrasonic:
		err = s.sonic(ctx)
	default:
		err = fmt.Errorf("unsupported sensor kind %s", s.kind)
	}
	if err != nil {
		return false, err
	}
	return s.triggered, nil
}

// Triggered returns result of the last reading.
func (s *Sensor) Triggered() bool {
	return s.triggered
}

// LastRead returns last ultrasonic distance in cm.
func (s *Sensor) LastRead() float64 {
	return s.lastRead
}

func (s *Sensor) infrared() error {
	st, err := s.port.Read(s.pins.Echo)
	if err != nil {
		return err
	}
	s.triggered = st == rpio.High
	if s.triggered {
		lg.Debugf("%s: object detected", s.kind)
	}
	return nil
}

func (s *Sensor) sonic(ctx context.Context) error {
	if err := s.port.Sleep(ctx, settleTime); err != nil {
		return err
	}
	if err := s.port.Write(s.pins.Trigger, rpio.High); err != nil {
		return err
	}
	if err := s.port.Sleep(ctx, triggerPulse); err != nil {
		return err
	}
	if err := s.port.Write(s.pins.Trigger, rpio.Low); err != nil {
		return err
	}

	deadline := s.now().Add(echoTimeout)
	start := s.now()
	if err := s.waitEcho(ctx, rpio.High, deadline, &start); err != nil {
		return err
	}
	stop := start
	if err := s.waitEcho(ctx, rpio.Low, deadline, &stop); err != nil {
		return err
	}

	s.lastRead = stop.Sub(start).Seconds() * soundSpeed / 2
	s.triggered = s.boundary > s.lastRead
	if s.triggered {
		lg.Infof("boundary %.1fcm breached, distance %.1fcm", s.boundary, s.lastRead)
	}
	return nil
}

// waitEcho polls echo line until it reaches state, updating ts with time of
// the last poll that didn't.
func (s *Sensor) waitEcho(ctx context.Context, state rpio.State, deadline time.Time, ts *time.Time) error {
	for {
		st, err := s.port.Read(s.pins.Echo)
		if err != nil {
			return err
		}
		if st == state {
			return nil
		}
		*ts = s.now()
		if ts.After(deadline) {
			return fmt.Errorf("waiting for echo %d: %w", state, ErrNoEcho)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
