// =============================================================================
// Game Ledger - Transaction Dispatcher
// =============================================================================
//
// The dispatcher reads the daily transaction log top to bottom and routes
// each line by its two-digit code to the matching ledger operation:
//
//   01 create account     username, user_type, credit
//   02 delete account     username
//   03 sell game          game_name..., seller, price
//   04 buy game           game_name..., seller, buyer, price
//   05 refund             buyer, seller, amount
//   06 add credit         username, (unused), amount
//   00 end of file        stop processing
//
// Multi-token game names are parsed positionally: the trailing tokens are
// fixed (seller/price for 03, seller/buyer/price for 04) and everything
// between the code and those anchors is the name.
//
// One fixed status line is printed after every dispatched operation, success
// or not, plus any error line the operation produced. A failure in one
// transaction never aborts the batch; only a missing log file does, before
// any processing.
//
// =============================================================================

package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/game-ledger/internal/accounts"
	"github.com/ginjaninja78/game-ledger/internal/catalog"
	"github.com/ginjaninja78/game-ledger/internal/fieldfmt"
	"github.com/ginjaninja78/game-ledger/pkg/flatfile"
)

// ErrMissingTransactionsFile aborts the batch before any line is processed.
// The printed message carries the offending path; this value is for
// programmatic callers.
var ErrMissingTransactionsFile = errors.New("transactions file does not exist")

// ErrInvalidTransactionCode marks a line whose two-digit prefix is not a
// known transaction code.
var ErrInvalidTransactionCode = errors.New("Invalid transaction code")

// Status lines printed per transaction code.
const (
	statusCreate  = "Created user account"
	statusDelete  = "Deleted user account"
	statusSell    = "Sell game transaction"
	statusBuy     = "Buy game transaction"
	statusRefund  = "Refund transaction"
	statusCredit  = "Add credit transaction"
	statusEndFile = "End of transactions file"
)

// Result is the outcome of a single transaction line.
type Result struct {
	// LineNumber is the 1-indexed position in the transaction log.
	LineNumber int

	// Line is the raw transaction line.
	Line string

	// Code is the two-digit transaction code, empty when the line is too
	// short to carry one.
	Code string

	// Kind is the fixed status label for the code, empty for invalid codes
	// and malformed lines.
	Kind string

	// Err is the validation failure, nil on success.
	Err error
}

// Dispatcher routes transaction lines to the ledgers.
type Dispatcher struct {
	Accounts *accounts.Ledger
	Catalog  *catalog.Catalog

	// Out receives the console output: status lines, error lines and
	// malformed-record warnings, interleaved in processing order.
	Out io.Writer
}

// New wires a dispatcher over the three stores, sharing one output writer so
// that warnings and status lines interleave correctly.
func New(accountsPath, gamesPath, collectionPath string, out io.Writer) *Dispatcher {
	if out == nil {
		out = os.Stdout
	}
	acct := accounts.NewLedger(accountsPath)
	acct.Warnings = out
	cat := catalog.New(gamesPath, collectionPath, acct)
	cat.Warnings = out

	return &Dispatcher{Accounts: acct, Catalog: cat, Out: out}
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// Process applies every line of the transaction log at path, strictly in
// order, and returns one Result per line handled. A `00` line stops
// processing early; lines after it are not read.
//
// A missing log file prints its error line and returns
// ErrMissingTransactionsFile with no results.
func (d *Dispatcher) Process(path string) ([]Result, error) {
	if !flatfile.Exists(path) {
		fmt.Fprintf(d.Out, "ERROR: The file %s does not exist.\n", path)
		return nil, ErrMissingTransactionsFile
	}

	lines, err := flatfile.ReadLines(path)
	if err != nil {
		return nil, err
	}

	var results []Result
	for i, line := range lines {
		result := d.dispatch(line)
		result.LineNumber = i + 1
		results = append(results, result)

		if result.Kind == statusEndFile {
			break
		}
	}

	return results, nil
}

// dispatch routes one line and prints its console output.
func (d *Dispatcher) dispatch(line string) Result {
	result := Result{Line: line}
	if len(line) >= 2 {
		result.Code = line[:2]
	}

	switch {
	case strings.HasPrefix(line, "01"):
		result.Kind = statusCreate
		result.Err = d.createAccount(line)
	case strings.HasPrefix(line, "02"):
		result.Kind = statusDelete
		result.Err = d.deleteAccount(line)
	case strings.HasPrefix(line, "03"):
		result.Kind = statusSell
		result.Err = d.sellGame(line)
	case strings.HasPrefix(line, "04"):
		result.Kind = statusBuy
		result.Err = d.buyGame(line)
	case strings.HasPrefix(line, "05"):
		result.Kind = statusRefund
		result.Err = d.refund(line)
	case strings.HasPrefix(line, "06"):
		result.Kind = statusCredit
		result.Err = d.addCredit(line)
	case strings.HasPrefix(line, "00"):
		result.Kind = statusEndFile
		fmt.Fprintln(d.Out, statusEndFile)
		return result
	default:
		result.Err = ErrInvalidTransactionCode
		fmt.Fprintln(d.Out, "ERROR: Invalid transaction code")
		return result
	}

	if errors.Is(result.Err, errMalformedLine) {
		// Not dispatched: no status line, warning already printed.
		result.Kind = ""
		return result
	}
	if result.Err != nil {
		fmt.Fprintf(d.Out, "ERROR: %s\n", result.Err.Error())
	}
	fmt.Fprintln(d.Out, result.Kind)

	return result
}

// =============================================================================
// PER-CODE PARSING
// =============================================================================

// errMalformedLine marks a transaction line with too few tokens for its
// code. The line is skipped with a warning and no status line.
var errMalformedLine = errors.New("malformed transaction line")

func (d *Dispatcher) createAccount(line string) error {
	fields, ok := d.tokens(line, 4)
	if !ok {
		return errMalformedLine
	}
	credit, err := fieldfmt.ParseCredit(fields[3])
	if err != nil {
		return accounts.ErrCreditOutOfRange
	}
	return d.Accounts.Create(fields[1], fields[2], credit)
}

func (d *Dispatcher) deleteAccount(line string) error {
	fields, ok := d.tokens(line, 2)
	if !ok {
		return errMalformedLine
	}
	return d.Accounts.Delete(fields[1])
}

func (d *Dispatcher) sellGame(line string) error {
	fields, ok := d.tokens(line, 4)
	if !ok {
		return errMalformedLine
	}
	n := len(fields)
	price, err := fieldfmt.ParsePrice(fields[n-1])
	if err != nil {
		return catalog.ErrPriceTooLarge
	}
	game := strings.Join(fields[1:n-2], " ")
	return d.Catalog.Sell(game, fields[n-2], price)
}

func (d *Dispatcher) buyGame(line string) error {
	fields, ok := d.tokens(line, 5)
	if !ok {
		return errMalformedLine
	}
	n := len(fields)
	price, err := fieldfmt.ParsePrice(fields[n-1])
	if err != nil {
		return catalog.ErrPriceTooLarge
	}
	game := strings.Join(fields[1:n-3], " ")
	return d.Catalog.Buy(game, fields[n-3], fields[n-2], price)
}

func (d *Dispatcher) refund(line string) error {
	fields, ok := d.tokens(line, 4)
	if !ok {
		return errMalformedLine
	}
	amount, err := fieldfmt.ParseCredit(fields[3])
	if err != nil {
		return accounts.ErrInvalidRefundAmount
	}
	return d.Accounts.Refund(fields[1], fields[2], amount)
}

func (d *Dispatcher) addCredit(line string) error {
	// Field 2 is present in the record layout but unused.
	fields, ok := d.tokens(line, 4)
	if !ok {
		return errMalformedLine
	}
	amount, err := fieldfmt.ParseCredit(fields[3])
	if err != nil {
		return accounts.ErrInvalidCreditAmount
	}
	return d.Accounts.AddCredit(fields[1], amount)
}

// tokens splits a transaction line and warns when it carries fewer than min
// tokens.
func (d *Dispatcher) tokens(line string, min int) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) < min {
		fmt.Fprintf(d.Out, "WARNING: Skipping malformed transaction line: %s\n", strings.TrimSpace(line))
		return nil, false
	}
	return fields, true
}
