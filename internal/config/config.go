// =============================================================================
// Game Ledger - Configuration Module
// =============================================================================
//
// Loads the main application configuration from a YAML file. The four store
// paths default to the historical data/ layout; command-line flags override
// whatever the file says.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// STORE PATHS
	// =========================================================================

	// TransactionsFile is the daily transaction log applied by `process`.
	TransactionsFile string `yaml:"transactions_file"`

	// AccountsFile is the user-accounts store.
	AccountsFile string `yaml:"accounts_file"`

	// GamesFile is the available-games store.
	GamesFile string `yaml:"games_file"`

	// CollectionFile is the games-collection (ownership) store.
	CollectionFile string `yaml:"collection_file"`

	// =========================================================================
	// ARCHIVAL AND REPORTING
	// =========================================================================

	// ArchiveDir receives processed transaction logs when `process --archive`
	// is used.
	ArchiveDir string `yaml:"archive_dir"`

	// ReportDir receives XLSX snapshot reports.
	ReportDir string `yaml:"report_dir"`

	// ReportNameFormat names report files. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYYMMDD)
	//   {time}      - current time (HHMMSS)
	ReportNameFormat string `yaml:"report_name_format"`

	// =========================================================================
	// LOGGING
	// =========================================================================

	// LogLevel controls diagnostic logging verbosity.
	// Valid values: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Load reads the configuration from a YAML file and applies defaults. A
// missing file is not an error; the defaults stand alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.TransactionsFile == "" {
		cfg.TransactionsFile = "data/dailytransactions.txt"
	}
	if cfg.AccountsFile == "" {
		cfg.AccountsFile = "data/currentaccounts.txt"
	}
	if cfg.GamesFile == "" {
		cfg.GamesFile = "data/availablegames.txt"
	}
	if cfg.CollectionFile == "" {
		cfg.CollectionFile = "data/gamescollection.txt"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "archive"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reports"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "ledger_{timestamp}_{uuid}.xlsx"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}
