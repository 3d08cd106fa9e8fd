package main

import (
	"flixmap/internal/crawler"
	"flixmap/internal/di"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/structures"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newCrawlCommand(flags *structures.CliFlags) *cobra.Command {
	var typeFlag, modeFlag string

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Walk reference ids and store every provider match",
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := di.InitJob(flags)
			if err != nil {
				return err
			}
			defer job.Logger.Close()

			if typeFlag == "" {
				typeFlag = job.Config.Crawler.Type
			}
			if modeFlag == "" {
				modeFlag = job.Config.Crawler.Mode
			}
			t, ok := models.ParseContentType(typeFlag)
			if !ok {
				return fmt.Errorf("--type must be movie or tv, got %q", typeFlag)
			}
			if modeFlag != crawler.ModeFillGaps && modeFlag != crawler.ModeResume {
				return fmt.Errorf("--mode must be %s or %s, got %q", crawler.ModeFillGaps, crawler.ModeResume, modeFlag)
			}

			if err := job.Manager.Restore(); err != nil {
				_ = job.Manager.Persist()
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			job.Logger.Infof(providers.TypeApp, "Standalone crawl of %s in %s mode", t, modeFlag)
			crawlErr := job.Manager.Crawl(ctx, t, modeFlag)
			persistErr := job.Manager.Persist()
			if crawlErr != nil {
				return crawlErr
			}
			return persistErr
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Content type to crawl (movie|tv), defaults to crawler.type")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Start mode (fill-gaps|resume), defaults to crawler.mode")
	return cmd
}
