package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/fifastats/internal/core"
	"github.com/JonMunkholm/fifastats/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report [dataset.csv ...]",
		Short: "Print statistics for every dataset",
		Long: `Load every dataset, then print its statistics in configured order.

Positional arguments replace DATASETS; their labels are derived from the
file names (FIFA21_official_data.csv is reported as "FIFA 21").

Exit status is 1 when a player row has a non-integer age or overall, and 2
for any other error. A missing file is reported as an empty dataset unless
LOAD_STRICT is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd.Context(), args)
		},
	}
}

func (a *app) runReport(ctx context.Context, args []string) error {
	cfg := a.cfg
	if len(args) > 0 {
		cfg.Data.Files = args
		cfg.Data.Labels = nil
		cfg.Data.Dir = "."
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return err
	}

	svc, err := core.NewService(cfg)
	if err != nil {
		return err
	}

	run, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	return renderer.Render(a.stdout, run)
}
