// =============================================================================
// Game Ledger - Root Command
// =============================================================================
//
// The root command carries the global flags and the slog setup shared by all
// subcommands:
//
//   gameledger
//   ├── process   (apply the daily transaction log)
//   ├── verify    (check store files)
//   ├── report    (XLSX snapshot)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/game-ledger/internal/config"
)

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gameledger",
	Short: "Game Ledger - Apply daily transaction batches to the flat-file stores",
	Long: `Game Ledger is a batch updater for the game store's flat-file ledgers.
It reads a daily transaction log line by line, dispatches each line by its
two-digit transaction code, validates it against the current store contents,
and rewrites the affected fixed-width record files.

The three stores are the user accounts file, the available games file and the
games collection (ownership) file. Each is terminated by a padded "END"
sentinel line which every operation strips on read and re-appends on write.

Example Usage:
  gameledger process                      # Apply the configured transaction log
  gameledger process --transactions t.txt # Override the log path
  gameledger verify                       # Check the stores without mutating them
  gameledger report                       # Render an XLSX snapshot of the stores`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the main configuration and configures the default slog
// logger. Console output of the batch itself never goes through slog; the
// logger carries diagnostics only.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	setupLogging(cfg.LogLevel)
	return cfg, nil
}

// setupLogging sets slog's default logger to JSON output on stderr at the
// configured level. --verbose forces debug.
func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}

	logger := slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}),
	)
	slog.SetDefault(logger)
}
