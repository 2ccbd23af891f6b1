// Package cmd holds the command line interface of vinom-mouse.
package cmd

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-mouse/config"
	logger "github.com/beka-birhanu/vinom-mouse/infrastruture/log"
	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/spf13/cobra"
)

var appLogger i.Logger

var rootCmd = &cobra.Command{
	Use:   "vinom-mouse",
	Short: "Micromouse decision engine, simulator and session API",
	Long: `vinom-mouse drives a micromouse robot through simulated mazes.

The robot explores on its first run and replays what it learned on the
following runs. Sessions can be recorded and browsed over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger creates a component logger, falling back to the app logger.
func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		return appLogger
	}
	return l
}
