package main

import (
	"flixmap/internal/structures"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "flixmap",
		Short:         "TMDB to FlixHQ mapping service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/flixmap.yaml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Also log to the console")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newCrawlCommand(flags))
	rootCmd.AddCommand(newMappingsCommand(flags))

	return rootCmd
}
