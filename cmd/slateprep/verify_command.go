package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slateprep/internal/bootstrap"
	"slateprep/internal/hostenv"
	"slateprep/internal/logging"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the environment without installing anything",
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
			report, runErr := checker.Verify(cmd.Context())
			if runErr != nil {
				return runErr
			}

			if ctx.jsonMode() {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderSummary(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
