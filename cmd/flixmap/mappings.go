package main

import (
	"flixmap/internal/di"
	"flixmap/internal/report"
	"flixmap/internal/structures"

	"github.com/spf13/cobra"
)

func newMappingsCommand(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect the stored mappings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Print mapping and skip submission totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, err := di.InitInspector(flags)
			if err != nil {
				return err
			}
			defer inspector.Logger.Close()

			if err := inspector.Load(); err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), report.Collect(inspector.Mappings, inspector.Skips))
		},
	})
	return cmd
}
