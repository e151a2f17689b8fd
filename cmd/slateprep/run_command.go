package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slateprep/internal/bootstrap"
	"slateprep/internal/history"
	"slateprep/internal/hostenv"
	"slateprep/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Install dependencies and verify the resolve-mcp environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			var observer bootstrap.Observer
			if !ctx.jsonMode() {
				observer = newConsoleObserver(cmd.OutOrStdout())
			}

			checker := bootstrap.New(cfg, hostenv.System(), logger, observer)
			report, runErr := checker.Run(cmd.Context())
			if runErr != nil {
				return runErr
			}

			if ctx.jsonMode() {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				renderSummary(cmd.OutOrStdout(), report)
			}

			recordRun(cmd, cfg.History.Enabled, cfg.History.Path, report)
			return nil
		},
	}
}

// recordRun persists the report when history is enabled. Persistence
// problems never fail the bootstrap itself.
func recordRun(cmd *cobra.Command, enabled bool, path string, report *bootstrap.Report) {
	if !enabled {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: open history store: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.Record(cmd.Context(), report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record history: %v\n", err)
	}
}
