package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fifastats/internal/config"
	"github.com/JonMunkholm/fifastats/internal/logging"
)

var version = "dev"

// app carries state shared by every subcommand once configuration is loaded.
type app struct {
	cfg    *config.Config
	stdout io.Writer
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout}

	cmd := &cobra.Command{
		Use:   "fifastats [dataset.csv ...]",
		Short: "Descriptive statistics over FIFA player datasets",
		Long: `fifastats loads seasonal FIFA player exports and prints position,
age, and overall-rating distributions, the youngest and oldest players,
the lowest and highest rated players, and the most and least represented
nationalities for each dataset.

Without arguments it reads the files named by DATASETS (default: the
FIFA 20, 21 and 22 official data exports in the working directory).
Running fifastats with no subcommand is the same as "fifastats report".`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.Context(), args)
		},
	}

	debug := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	format := cmd.PersistentFlags().String("format", "", "Report format: text, json, yaml, html (default from REPORT_FORMAT)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(*format, *debug)
		if err != nil {
			return err
		}
		a.cfg = cfg
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		slog.Debug("configuration loaded", "config", cfg.String())
		return nil
	}

	cmd.AddCommand(newReportCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(format string, debug bool) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.Report.Format = format
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func execute(ctx context.Context, args []string) error {
	cmd := newRootCommand(os.Stdout)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
