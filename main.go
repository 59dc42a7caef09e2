package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aliher1911/pimotor/cli"
	"github.com/aliher1911/pimotor/config"

	logger "github.com/d2r2/go-logger"
	"github.com/spf13/cobra"
)

var sigs = make(chan os.Signal, 1)

var rootCmd = &cobra.Command{
	Use:   "pimotor",
	Short: "Drive motors, sensors and arrows of the PiMotor shield",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("log-level")
		lvl, err := config.Config{LogLevel: name}.Level()
		if err != nil {
			return err
		}
		cli.SetLogLevel(lvl)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
}

func main() {
	defer logger.FinalizeLogger()

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("pimotor: %s\n", err)
		logger.FinalizeLogger()
		os.Exit(1)
	}
}
