// =============================================================================
// Game Ledger - Verify Command
// =============================================================================
//
// The 'verify' command checks the three store files without mutating them:
// every record must decode cleanly and every file must end with its sentinel
// line. Problems are listed per file; the command exits non-zero if any store
// fails.
//
// COMMAND USAGE:
//   gameledger verify [flags]
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/game-ledger/internal/fieldfmt"
	"github.com/ginjaninja78/game-ledger/internal/store"
	"github.com/ginjaninja78/game-ledger/pkg/flatfile"
)

// verifyCmd represents the 'verify' command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the store files without mutating them",
	Long: `The verify command reads the user accounts, available games and games
collection stores and reports lines that do not decode as fixed-width
records, plus any file missing its terminating "END" sentinel. Nothing is
written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify()
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&accountsPath, "accounts", "", "Path to the user-accounts store (overrides config)")
	verifyCmd.Flags().StringVar(&gamesPath, "games", "", "Path to the available-games store (overrides config)")
	verifyCmd.Flags().StringVar(&collectionPath, "collection", "", "Path to the games-collection store (overrides config)")
}

// storeCheck binds a store to the decoder for its record layout.
type storeCheck struct {
	name   string
	path   string
	decode func(line string) bool
}

func runVerify() error {
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

	checks := []storeCheck{
		{name: "user accounts", path: accountsPath, decode: decodeAccountLine},
		{name: "available games", path: gamesPath, decode: decodeListingLine},
		{name: "games collection", path: collectionPath, decode: decodeOwnershipLine},
	}

	failures := 0
	for _, check := range checks {
		failures += verifyStore(check)
	}

	if failures > 0 {
		return fmt.Errorf("%d store problem(s) found", failures)
	}

	fmt.Println("All stores verified.")
	return nil
}

// verifyStore checks one store file and prints its findings. Returns the
// number of problems found.
func verifyStore(check storeCheck) int {
	lines, err := flatfile.ReadLines(check.path)
	if err != nil {
		fmt.Printf("%s: cannot read %s: %v\n", check.name, check.path, err)
		return 1
	}

	problems := 0

	if len(lines) == 0 || !store.IsSentinel(lines[len(lines)-1]) {
		fmt.Printf("%s: missing END sentinel\n", check.name)
		problems++
	}

	for i, line := range store.StripSentinel(lines) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if store.IsSentinel(line) {
			fmt.Printf("%s: line %d: sentinel before end of file\n", check.name, i+1)
			problems++
			continue
		}
		if !check.decode(line) {
			fmt.Printf("%s: line %d: malformed record: %s\n", check.name, i+1, strings.TrimSpace(line))
			problems++
		}
	}

	if problems == 0 {
		fmt.Printf("%s: ok (%d record line(s))\n", check.name, len(store.StripSentinel(lines)))
	}
	return problems
}

func decodeAccountLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return false
	}
	_, err := fieldfmt.ParseCredit(fields[2])
	return err == nil
}

func decodeListingLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return false
	}
	_, err := fieldfmt.ParsePrice(fields[len(fields)-1])
	return err == nil
}

func decodeOwnershipLine(line string) bool {
	return len(strings.Fields(line)) >= 2
}
