package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/franz/keep-migrator/internal/collect"
	"github.com/franz/keep-migrator/internal/enrich"
	"github.com/franz/keep-migrator/internal/manifest"
	"github.com/franz/keep-migrator/internal/musicbrainz"
	"github.com/franz/keep-migrator/internal/report"
	"github.com/franz/keep-migrator/internal/store"
	"github.com/franz/keep-migrator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Parse note exports, enrich them, and write the metadata file",
	Long: `Parse every Keep export JSON file in the input directory, look up each
titled note against MusicBrainz (1 request/second, cached between runs),
and write the enriched note list to the metadata file.

Run this before 'kmc sql'. Malformed export files are logged and skipped;
failed lookups leave a note without enrichment data but never abort the run.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().Bool("skip-enrich", false, "write the metadata file without catalog lookups")
	fetchCmd.Flags().IntP("concurrency", "c", 4, "parser worker count")
	viper.BindPFlag("skip-enrich", fetchCmd.Flags().Lookup("skip-enrich"))
	viper.BindPFlag("concurrency", fetchCmd.Flags().Lookup("concurrency"))
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg := util.LoadConfig()

	if err := collect.CheckInputDir(cfg.InputDir); err != nil {
		return err
	}

	// Events land next to the metadata file
	logger, err := report.NewEventLogger(filepath.Dir(cfg.MetadataPath), report.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to create event log: %w", err)
	}
	defer logger.Close()

	collector := collect.New(&collect.Config{
		Concurrency: viper.GetInt("concurrency"),
		Logger:      logger,
	})
	result, err := collector.Collect(ctx, cfg.InputDir)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	if !cfg.SkipEnrich {
		db, err := store.Open(cfg.CacheDB)
		if err != nil {
			return fmt.Errorf("failed to open cache database: %w", err)
		}
		defer db.Close()

		client := musicbrainz.NewClient()
		defer client.Close()

		cache := musicbrainz.NewCache(db.DB(), client)
		if err := cache.EnsureSchema(); err != nil {
			return err
		}

		enrich.New(cache, logger).Enrich(ctx, result.Notes)

		if entries, hits, err := cache.GetStats(); err == nil {
			util.DebugLog("Lookup cache: %d entries, %d total hits", entries, hits)
		}
	}

	if err := manifest.Write(cfg.MetadataPath, result.Notes); err != nil {
		return err
	}

	util.SuccessLog("Wrote %d notes to %s (events: %s)",
		len(result.Notes), cfg.MetadataPath, logger.Path())
	return nil
}
