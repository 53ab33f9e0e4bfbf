// =============================================================================
// Game Ledger - Main Entry Point
// =============================================================================
//
// Entry point for the gameledger CLI. It initializes the Cobra CLI framework
// and delegates command execution to the cmd package.
//
// USAGE:
//   gameledger process       - Apply the daily transaction log to the stores
//   gameledger verify        - Check store files without mutating them
//   gameledger report        - Render an XLSX snapshot of the stores
//   gameledger version       - Display the application version
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/game-ledger/cmd"
)

func main() {
	cmd.Execute()
}
