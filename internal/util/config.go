package util

import "github.com/spf13/viper"

// Config carries the per-run settings every stage receives at startup.
// All values come from flags, environment, or the optional config file;
// nothing reads ambient state after construction.
type Config struct {
	InputDir     string // directory of Keep export JSON files
	MetadataPath string // intermediate enriched-notes JSON
	SQLPath      string // generated SQL script
	CacheDB      string // sqlite lookup cache
	UserID       string // Supabase auth.users UUID owning the rows
	SkipEnrich   bool   // write the manifest without catalog lookups
}

// LoadConfig builds a Config from the current viper state.
func LoadConfig() *Config {
	return &Config{
		InputDir:     viper.GetString("input"),
		MetadataPath: viper.GetString("metadata"),
		SQLPath:      viper.GetString("sql-out"),
		CacheDB:      viper.GetString("db"),
		UserID:       viper.GetString("user-id"),
		SkipEnrich:   viper.GetBool("skip-enrich"),
	}
}
