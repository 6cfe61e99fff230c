package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/franz/keep-migrator/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "kmc",
		Short: "Keep Migration Converter - turn Keep note exports into SQL",
		Long: `kmc (Keep Migration Converter) is a one-shot batch converter for Google
Keep JSON exports. It parses each note into structured fields (title,
metadata header, content with fenced guitar tabs, bare-URL references,
labels), enriches titled notes against the MusicBrainz catalog, and emits
a SQL script that loads notes, tags, and tag links into a Supabase schema.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./kmc.yaml)")
	rootCmd.PersistentFlags().StringP("input", "i", ".", "directory of Keep export JSON files")
	rootCmd.PersistentFlags().String("metadata", "metadata.json", "intermediate enriched-notes file")
	rootCmd.PersistentFlags().String("sql-out", "output.sql", "generated SQL script")
	rootCmd.PersistentFlags().String("db", "kmc-cache.db", "lookup cache database file")
	rootCmd.PersistentFlags().StringP("user-id", "u", "", "Supabase auth.users UUID owning the rows")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("metadata", rootCmd.PersistentFlags().Lookup("metadata"))
	viper.BindPFlag("sql-out", rootCmd.PersistentFlags().Lookup("sql-out"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("user-id", rootCmd.PersistentFlags().Lookup("user-id"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath(".")
		viper.SetConfigName("kmc")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match (e.g. KMC_USER_ID for user-id)
	viper.SetEnvPrefix("KMC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
