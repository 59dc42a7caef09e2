package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aliher1911/pimotor/config"
	"github.com/aliher1911/pimotor/controller"
	"github.com/aliher1911/pimotor/gpio"

	logger "github.com/d2r2/go-logger"
)

// Open creates the port commands run on.
var Open = func() (gpio.Port, error) {
	return gpio.Open()
}

// Packages with loggers.
var packages = []string{"gpio", "actuator", "motion", "sensor", "indicator", "controller", "cli"}

var lg = logger.NewPackageLogger("cli", logger.InfoLevel)

// SetLogLevel changes log level of all packages.
func SetLogLevel(level logger.LogLevel) {
	for _, p := range packages {
		logger.ChangePackageLogLevel(p, level)
	}
}

// session opens port and returns context cancelled on signal. Returned close
// function stops every device created through controller and releases the
// port.
func session(sigs <-chan os.Signal) (context.Context, *controller.Controller, func() error, error) {
	port, err := Open()
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := controller.New(port)
	done := make(chan struct{})
	go func() {
		select {
		case s := <-sigs:
			fmt.Printf("stopping on signal %s\n", s)
			cancel()
		case <-done:
		}
	}()
	return ctx, ctrl, func() error {
		close(done)
		cancel()
		return ctrl.Shutdown()
	}, nil
}

// run executes f within session. Interruption is not an error.
func run(sigs <-chan os.Signal, f func(ctx context.Context, ctrl *controller.Controller) error) (err error) {
	ctx, ctrl, closeFn, err := session(sigs)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	err = f(ctx, ctrl)
	if errors.Is(err, context.Canceled) {
		lg.Infof("interrupted")
		return nil
	}
	return err
}

// Program runs motion sequence from config file in every configured
// direction.
func Program(path string, sigs <-chan os.Signal) error {
	cfg := config.Defaults()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
		if lvl, err := cfg.Level(); err == nil {
			SetLogLevel(lvl)
		}
	}
	return run(sigs, func(ctx context.Context, ctrl *controller.Controller) error {
		s, err := ctrl.Stepper(cfg.Stepper)
		if err != nil {
			return err
		}
		s.SetMode(cfg.Mode)
		seq := cfg.Motion.Sequence()
		for _, d := range cfg.Motion.Directions {
			backward, err := config.Backward(d)
			if err != nil {
				return err
			}
			fmt.Printf("running %d steps %s in %s mode\n", seq.Steps(), d, s.Mode())
			if err := controller.Run(ctx, controller.Move{
				Stepper:  s,
				Backward: backward,
				Sequence: seq,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
