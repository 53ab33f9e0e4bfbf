// =============================================================================
// Game Ledger - Report Command
// =============================================================================
//
// The 'report' command renders the current contents of the three stores into
// an XLSX workbook (one sheet per store) in the configured report directory.
// The file name comes from the report_name_format config template.
//
// COMMAND USAGE:
//   gameledger report [flags]
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/game-ledger/internal/accounts"
	"github.com/ginjaninja78/game-ledger/internal/catalog"
	"github.com/ginjaninja78/game-ledger/internal/report"
)

// reportOut overrides the generated output path when set.
var reportOut string

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an XLSX snapshot of the stores",
	Long: `The report command decodes the user accounts, available games and games
collection stores and writes them into an XLSX workbook with one sheet per
store. The stores themselves are not modified.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&accountsPath, "accounts", "", "Path to the user-accounts store (overrides config)")
	reportCmd.Flags().StringVar(&gamesPath, "games", "", "Path to the available-games store (overrides config)")
	reportCmd.Flags().StringVar(&collectionPath, "collection", "", "Path to the games-collection store (overrides config)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output file path (overrides the configured name format)")
}

func runReport() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	acct := accounts.NewLedger(accountsPath)
	cat := catalog.New(gamesPath, collectionPath, acct)

	snap := report.Snapshot{}
	if snap.Accounts, err = acct.Records(); err != nil {
		return fmt.Errorf("failed to read accounts store: %w", err)
	}
	if snap.Listings, err = cat.Listings(); err != nil {
		return fmt.Errorf("failed to read games store: %w", err)
	}
	if snap.Ownerships, err = cat.Ownerships(); err != nil {
		return fmt.Errorf("failed to read collection store: %w", err)
	}

	outPath := reportOut
	if outPath == "" {
		if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		outPath = filepath.Join(cfg.ReportDir, report.FileName(cfg.ReportNameFormat))
	}

	if err := report.Write(outPath, snap); err != nil {
		return err
	}

	slog.Info("report written",
		"path", outPath,
		"accounts", len(snap.Accounts),
		"listings", len(snap.Listings),
		"ownerships", len(snap.Ownerships),
	)
	fmt.Printf("Report written to %s\n", outPath)

	return nil
}
