// =============================================================================
// Game Ledger - Process Command
// =============================================================================
//
// The 'process' command applies the daily transaction log to the three
// stores. Lines are handled strictly top to bottom; each one is fully
// read-validate-written before the next begins, so later transactions see
// the committed results of earlier ones. A failing transaction never aborts
// the batch.
//
// COMMAND USAGE:
//   gameledger process [flags]
//
// FLAGS:
//   --transactions : Path to the transaction log (overrides config)
//   --accounts     : Path to the user-accounts store (overrides config)
//   --games        : Path to the available-games store (overrides config)
//   --collection   : Path to the games-collection store (overrides config)
//   --archive      : Move the processed log into the archive directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/game-ledger/internal/dispatch"
	"github.com/ginjaninja78/game-ledger/pkg/flatfile"
)

var (
	transactionsPath string
	accountsPath     string
	gamesPath        string
	collectionPath   string
	archiveLog       bool
)

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Apply the daily transaction log to the stores",
	Long: `The process command reads the daily transaction log line by line and applies
each transaction to the user accounts, available games and games collection
stores. One status line is printed per transaction, plus any error line the
operation produced; the exact message text is stable and safe to match on.

A validation failure abandons only its own transaction and leaves the target
files unmodified. Only a missing transaction log aborts the whole batch,
before any processing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&transactionsPath, "transactions", "", "Path to the transaction log (overrides config)")
	processCmd.Flags().StringVar(&accountsPath, "accounts", "", "Path to the user-accounts store (overrides config)")
	processCmd.Flags().StringVar(&gamesPath, "games", "", "Path to the available-games store (overrides config)")
	processCmd.Flags().StringVar(&collectionPath, "collection", "", "Path to the games-collection store (overrides config)")
	processCmd.Flags().BoolVar(&archiveLog, "archive", false, "Move the processed log into the archive directory")
}

// runProcess wires the dispatcher and runs the batch.
func runProcess() error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if transactionsPath == "" {
		transactionsPath = cfg.TransactionsFile
	}
	if accountsPath == "" {
		accountsPath = cfg.AccountsFile
	}
	if gamesPath == "" {
		gamesPath = cfg.GamesFile
	}
	if collectionPath == "" {
		collectionPath = cfg.CollectionFile
	}

	slog.Debug("starting batch",
		"transactions", transactionsPath,
		"accounts", accountsPath,
		"games", gamesPath,
		"collection", collectionPath,
	)

	d := dispatch.New(accountsPath, gamesPath, collectionPath, os.Stdout)

	results, err := d.Process(transactionsPath)
	if err != nil {
		// The missing-file message has already been printed verbatim; the
		// batch simply does not run.
		slog.Error("batch aborted", "error", err)
		return nil
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	slog.Info("batch complete",
		"transactions", len(results),
		"failed", failed,
		"elapsed", time.Since(startTime).String(),
	)

	if archiveLog {
		archived, err := flatfile.Archive(transactionsPath, cfg.ArchiveDir)
		if err != nil {
			return fmt.Errorf("failed to archive transaction log: %w", err)
		}
		slog.Info("transaction log archived", "path", archived)
	}

	return nil
}
