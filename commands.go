package main

import (
	"time"

	"github.com/aliher1911/pimotor/cli"
	"github.com/aliher1911/pimotor/easing"

	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Move stepper a number of steps at constant speed",
	RunE: func(cmd *cobra.Command, args []string) error {
		var o cli.StepOpts
		o.Stepper, _ = cmd.Flags().GetString("stepper")
		o.Mode, _ = cmd.Flags().GetString("mode")
		o.Delay, _ = cmd.Flags().GetDuration("delay")
		o.Steps, _ = cmd.Flags().GetInt("steps")
		o.Backward, _ = cmd.Flags().GetBool("backward")
		return cli.Step(o, sigs)
	},
}

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Run stepper back and forth in half, full and wave modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("stepper")
		delay, _ := cmd.Flags().GetDuration("delay")
		steps, _ := cmd.Flags().GetInt("steps")
		return cli.Party(name, delay, steps, sigs)
	},
}

var easeCmd = &cobra.Command{
	Use:   "ease",
	Short: "Move stepper with step delays following an easing curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		var o cli.EaseOpts
		o.Stepper, _ = cmd.Flags().GetString("stepper")
		o.Mode, _ = cmd.Flags().GetString("mode")
		o.Curve, _ = cmd.Flags().GetString("curve")
		o.Start, _ = cmd.Flags().GetDuration("start")
		o.End, _ = cmd.Flags().GetDuration("end")
		o.Steps, _ = cmd.Flags().GetInt("steps")
		o.Return, _ = cmd.Flags().GetBool("return")
		return cli.Ease(o, sigs)
	},
}

var runCmd = &cobra.Command{
	Use:   "run [program.yaml]",
	Short: "Run motion sequence from program file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.Program(path, sigs)
	},
}

var motorCmd = &cobra.Command{
	Use:   "motor MOTOR...",
	Short: "Run DC motors linked together",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := cli.MotorOpts{Motors: args}
		o.Config, _ = cmd.Flags().GetInt("config")
		o.Speed, _ = cmd.Flags().GetFloat64("speed")
		o.Duration, _ = cmd.Flags().GetDuration("duration")
		o.Reverse, _ = cmd.Flags().GetBool("reverse")
		o.Test, _ = cmd.Flags().GetBool("test")
		return cli.Motor(o, sigs)
	},
}

var senseCmd = &cobra.Command{
	Use:   "sense SENSOR",
	Short: "Read IR1, IR2 or ULTRASONIC sensor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boundary, _ := cmd.Flags().GetFloat64("boundary")
		count, _ := cmd.Flags().GetInt("count")
		interval, _ := cmd.Flags().GetDuration("interval")
		return cli.Sense(args[0], boundary, count, interval, sigs)
	},
}

var arrowsCmd = &cobra.Command{
	Use:   "arrows",
	Short: "Blink indicator arrows",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		period, _ := cmd.Flags().GetDuration("period")
		return cli.Arrows(count, period, sigs)
	},
}

func stepperFlags(cmd *cobra.Command, delay time.Duration, steps int) {
	cmd.Flags().String("stepper", "STEPPER1", "Stepper name: STEPPER1 or STEPPER2")
	cmd.Flags().Duration("delay", delay, "Delay between steps")
	cmd.Flags().Int("steps", steps, "Number of steps")
}

func init() {
	stepperFlags(stepCmd, 10*time.Millisecond, 200)
	stepCmd.Flags().String("mode", "half", "Step mode: single, wave, full, double or half")
	stepCmd.Flags().Bool("backward", false, "Move backward")

	stepperFlags(partyCmd, 10*time.Millisecond, 200)

	ramp := easing.DefaultRamp()
	easeCmd.Flags().String("stepper", "STEPPER1", "Stepper name: STEPPER1 or STEPPER2")
	easeCmd.Flags().String("mode", "half", "Step mode: single, wave, full, double or half")
	easeCmd.Flags().String("curve", "quad", "Curve: linear, quad, circular, expo, elastic, back or bounce")
	easeCmd.Flags().Duration("start", ramp.Start, "Delay at the start of the move")
	easeCmd.Flags().Duration("end", ramp.End, "Delay at the end of the move")
	easeCmd.Flags().Int("steps", 200, "Number of steps")
	easeCmd.Flags().Bool("return", false, "Return along reversed curve instead of moving backward")

	motorCmd.Flags().Int("config", 1, "Motor wiring config: 1 or 2")
	motorCmd.Flags().Float64("speed", 50, "Speed in percent")
	motorCmd.Flags().Duration("duration", 2*time.Second, "Run duration")
	motorCmd.Flags().Bool("reverse", false, "Run in reverse")
	motorCmd.Flags().Bool("test", false, "Light arrows instead of moving motors")

	senseCmd.Flags().Float64("boundary", 10, "Ultrasonic trigger distance in cm")
	senseCmd.Flags().Int("count", 10, "Number of readings")
	senseCmd.Flags().Duration("interval", 500*time.Millisecond, "Interval between readings")

	arrowsCmd.Flags().Int("count", 5, "Number of blinks")
	arrowsCmd.Flags().Duration("period", 200*time.Millisecond, "Blink period of the first arrow")

	rootCmd.AddCommand(stepCmd, partyCmd, easeCmd, runCmd, motorCmd, senseCmd, arrowsCmd)
}
