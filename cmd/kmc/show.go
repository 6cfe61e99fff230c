package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <export.json>",
	Short: "Parse a single export file and print the structured note",
	Long: `Run one Keep export file through the parsing pipeline and print the
resulting structured note as JSON. No enrichment lookup is performed.

Useful for checking how a note's header, tablature, and references will be
split before running a full conversion.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var raw note.RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w: %v", args[0], util.ErrMalformed, err)
	}

	n := note.Parse(&raw, time.Now().UTC())

	out, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
