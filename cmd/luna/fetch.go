package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lunaclock/luna/internal/client/nasa"
	"github.com/lunaclock/luna/internal/config"
	"github.com/lunaclock/luna/internal/library"
	"github.com/lunaclock/luna/internal/paths"
	"github.com/lunaclock/luna/internal/xslog"
)

func fetchCmd() *cobra.Command {
	var (
		year  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Sync the moon image library",
		Long:  "Downloads the hourly moon-info table and missing frame renders from NASA SVS.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			if _, err := paths.EnsureDir(); err != nil {
				return err
			}
			imagesDir, err := paths.EnsureImagesDir()
			if err != nil {
				return err
			}
			dbPath, err := paths.DB()
			if err != nil {
				return err
			}

			repo, err := library.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			client := nasa.New(nasa.WithBaseURL(cfg.SVSBaseURL))
			syncer := library.NewSyncer(client, repo, imagesDir)

			if err := syncer.SyncIndex(ctx, year); err != nil {
				return err
			}

			missing, err := repo.Missing(ctx, year)
			if err != nil {
				return err
			}
			if limit > 0 && len(missing) > limit {
				missing = missing[:limit]
			}
			if len(missing) == 0 {
				xslog.FromContext(ctx).InfoContext(ctx, "library is complete")
				return nil
			}

			xslog.FromContext(ctx).InfoContext(ctx, "downloading frames",
				xslog.Count(len(missing)),
			)
			return syncer.Download(ctx, year, missing)
		},
	}

	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "dataset year to sync")
	cmd.Flags().IntVar(&limit, "limit", 0, "max frames to download this run (0 = all)")

	return cmd
}
