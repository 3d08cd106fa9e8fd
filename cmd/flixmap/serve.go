package main

import (
	"flixmap/internal/di"
	"flixmap/internal/structures"

	"github.com/spf13/cobra"
)

func newServeCommand(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
}
