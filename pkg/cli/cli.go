// Package cli provides the command-line interface for zylix-runner.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config.yaml (defaults to the working directory)",
		EnvVars: []string{"ZYLIX_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "platform",
		Aliases: []string{"p"},
		Usage:   "Platform to target (web, ios, android, macos, windows, linux)",
		EnvVars: []string{"ZYLIX_PLATFORM"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file",
		Value:   "zylix-runner.log",
		EnvVars: []string{"ZYLIX_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"ZYLIX_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "zylix-runner",
		Usage:   "Cross-platform UI test orchestration",
		Version: Version,
		Description: `Zylix Runner schedules UI tests across web, mobile and desktop
automation backends, arbitrating a shared device pool.

Examples:
  zylix-runner devices
  zylix-runner doctor --platform web
  zylix-runner run --workers 4`,
		Flags: GlobalFlags,
		Before: func(c *cli.Context) error {
			if err := logger.Init(c.String("log-file")); err != nil {
				return err
			}
			logger.SetVerbose(c.Bool("verbose"))
			return nil
		},
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
		Commands: []*cli.Command{
			devicesCommand,
			doctorCommand,
			runCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
