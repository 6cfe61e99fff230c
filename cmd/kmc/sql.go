package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/franz/keep-migrator/internal/manifest"
	"github.com/franz/keep-migrator/internal/report"
	"github.com/franz/keep-migrator/internal/sqlgen"
	"github.com/franz/keep-migrator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Generate the SQL script from the metadata file",
	Long: `Read the enriched metadata file written by 'kmc fetch' and emit a SQL
script: one tags insert per unique label across all notes, one notes insert
per note, and one note_tags insert per (note, label) pair.

Requires --user-id (or KMC_USER_ID): the Supabase auth.users UUID that will
own the inserted rows.`,
	RunE: runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg := util.LoadConfig()

	if cfg.UserID == "" {
		return fmt.Errorf("user id is required (use --user-id or set KMC_USER_ID): %w",
			util.ErrInvalidConfig)
	}

	notes, err := manifest.Read(cfg.MetadataPath)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.ErrorLog("%s not found. Run 'kmc fetch' first.", cfg.MetadataPath)
		}
		return err
	}

	logger, err := report.NewEventLogger(filepath.Dir(cfg.SQLPath), report.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to create event log: %w", err)
	}
	defer logger.Close()

	out, err := util.RetryableCreate(cfg.SQLPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create SQL output: %w", err)
	}
	defer out.Close()

	stats, err := sqlgen.Write(out, notes, cfg.UserID)
	if err != nil {
		return fmt.Errorf("SQL generation failed: %w", err)
	}

	logger.LogSQL(cfg.SQLPath, stats.Notes, stats.Tags, stats.Links)
	util.SuccessLog("Wrote %s: %d notes, %d tags, %d links",
		cfg.SQLPath, stats.Notes, stats.Tags, stats.Links)
	return nil
}
