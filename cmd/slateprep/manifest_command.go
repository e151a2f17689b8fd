package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slateprep/internal/manifest"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "manifest",
		Short:       "Show the Python dependencies slateprep manages",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			requirements := manifest.Declared()

			if ctx.jsonMode() {
				return writeJSON(cmd.OutOrStdout(), requirements)
			}

			rows := make([][]string, 0, len(requirements))
			for _, req := range requirements {
				minVersion := req.MinVersion
				if minVersion == "" {
					minVersion = "any"
				}
				rows = append(rows, []string{req.Name, minVersion, req.Module, string(req.Group)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Package", "Min Version", "Import", "Group"}, rows))
			return nil
		},
	}
}
