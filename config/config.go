// Package config loads motion programs from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aliher1911/pimotor/actuator"
	"github.com/aliher1911/pimotor/easing"
	"github.com/aliher1911/pimotor/motion"
	"github.com/aliher1911/pimotor/shield"

	logger "github.com/d2r2/go-logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	// Stepper is the shield port, STEPPER1 or STEPPER2.
	Stepper string `yaml:"stepper"`
	Mode    string `yaml:"mode"`
	// Constant speed moves.
	Delay time.Duration `yaml:"delay"`
	Steps int           `yaml:"steps"`

	Motion Motion `yaml:"motion"`
}

// Motion is an eased move executed once per direction.
type Motion struct {
	InitialDelay time.Duration `yaml:"initial_delay"`
	Steps        int           `yaml:"steps"`
	Segments     []Segment     `yaml:"segments"`
	Directions   []string      `yaml:"directions"`
}

type Segment struct {
	Curve  easing.Shape  `yaml:"curve"`
	Delay  time.Duration `yaml:"delay"`
	Weight float64       `yaml:"weight"`
}

func Defaults() Config {
	return Config{
		LogLevel: "info",
		Stepper:  "STEPPER1",
		Mode:     "half",
		Delay:    10 * time.Millisecond,
		Steps:    200,
		Motion: Motion{
			InitialDelay: 50 * time.Millisecond,
			Steps:        1600,
			Segments: []Segment{
				{Curve: easing.QuadIn, Delay: 10 * time.Millisecond, Weight: 0.5},
				{Curve: easing.QuadOut, Delay: 50 * time.Millisecond, Weight: 0.5},
			},
			Directions: []string{"forward", "backward"},
		},
	}
}

// Load reads program from path. Values absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	c := Defaults()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := shield.Stepper(c.Stepper); err != nil {
		errs = append(errs, err)
	}
	// Unlike Stepper.SetMode, a typo in a file is reported.
	if _, ok := actuator.LookupMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("unknown step mode %q", c.Mode))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("negative delay %s", c.Delay))
	}
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("negative steps %d", c.Steps))
	}
	if c.Motion.Steps < 0 {
		errs = append(errs, fmt.Errorf("motion: negative steps %d", c.Motion.Steps))
	}
	for i, s := range c.Motion.Segments {
		if s.Weight < 0 {
			errs = append(errs, fmt.Errorf("motion segment %d: negative weight %g", i+1, s.Weight))
		}
		if s.Delay < 0 {
			errs = append(errs, fmt.Errorf("motion segment %d: negative delay %s", i+1, s.Delay))
		}
	}
	for _, d := range c.Motion.Directions {
		if _, err := Backward(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Level converts LogLevel name into logger level.
func (c Config) Level() (logger.LogLevel, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logger.DebugLevel, nil
	case "", "info":
		return logger.InfoLevel, nil
	case "warn", "warning":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return logger.InfoLevel, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// Sequence builds motion sequence from configured segments.
func (m Motion) Sequence() *motion.Sequence {
	s := motion.New(m.InitialDelay, m.Steps)
	for _, seg := range m.Segments {
		s.Append(seg.Curve, seg.Delay, seg.Weight)
	}
	return s
}

// Backward parses direction name.
func Backward(direction string) (bool, error) {
	switch strings.ToLower(direction) {
	case "forward", "fwd":
		return false, nil
	case "backward", "back", "reverse":
		return true, nil
	}
	return false, fmt.Errorf("unknown direction %q", direction)
}
