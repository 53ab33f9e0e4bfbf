// =============================================================================
// Game Ledger - Account Ledger
// =============================================================================
//
// Record-mutation operations on the user-accounts store: create, delete,
// add credit, refund. Every operation re-reads the store, validates against
// the current contents, and rewrites the whole file; nothing is cached
// between transactions, so consecutive transactions in one batch see each
// other's committed results.
//
// A validation failure leaves the store byte-for-byte untouched.
//
// =============================================================================

package accounts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/game-ledger/internal/fieldfmt"
	"github.com/ginjaninja78/game-ledger/internal/store"
	"github.com/ginjaninja78/game-ledger/pkg/flatfile"
)

// UserTypes is the recognized set of two-character account type codes.
var UserTypes = map[string]bool{
	"AA": true,
	"BS": true,
	"SS": true,
	"FS": true,
}

// Record is one decoded account line.
type Record struct {
	Username string
	UserType string
	Credit   float64
}

// Ledger owns all reads and writes of the user-accounts store.
type Ledger struct {
	Store store.Store

	// Warnings receives the skipped-line notices for malformed records.
	Warnings io.Writer
}

// NewLedger returns an account ledger over the store at path.
func NewLedger(path string) *Ledger {
	return &Ledger{
		Store:    store.Accounts(path),
		Warnings: os.Stdout,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Create appends a new account record.
//
// FAILURE MODES (store untouched on all of them):
//   - DuplicateUsernameError if the username is already present
//   - ErrUsernameTooLong if the username is longer than 15 characters
//   - InvalidUserTypeError if the type code is not recognized
//   - ErrCreditOutOfRange if the initial credit exceeds the field budget
func (l *Ledger) Create(username, userType string, credit float64) error {
	records, err := l.Store.Load()
	if err != nil {
		return err
	}

	for _, line := range records {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == username {
			// The original backend quotes the padded form here; kept as-is
			// because the text is matched by downstream consumers.
			return &DuplicateUsernameError{Username: fieldfmt.Username(username)}
		}
	}

	if len(username) > fieldfmt.MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if !UserTypes[userType] {
		return &InvalidUserTypeError{UserType: userType}
	}
	if credit < 0 || credit > fieldfmt.MaxCredit {
		return ErrCreditOutOfRange
	}

	line, err := encodeRecord(Record{Username: username, UserType: userType, Credit: credit})
	if err != nil {
		return err
	}

	return l.Store.Save(append(records, line))
}

// Delete removes every record whose leading token equals username and
// rewrites the remainder as-is. The sentinel survives only if it is among
// the remaining lines; deleting the sole account of a store that never had a
// sentinel leaves the file empty. That literal behavior is intentional.
func (l *Ledger) Delete(username string) error {
	lines, err := flatfile.ReadLines(l.Store.Path)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrNoAccountsFound
	}

	remaining := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == username {
			continue
		}
		remaining = append(remaining, line)
	}

	return flatfile.WriteLines(l.Store.Path, remaining)
}

// AddCredit increases one account's balance by amount and rewrites the store
// with every record reformatted.
//
// The credit-limit check runs per candidate line during the scan, before
// anything is committed, mirroring the reference behavior.
func (l *Ledger) AddCredit(username string, amount float64) error {
	if amount < 0 {
		return ErrInvalidCreditAmount
	}

	records, err := l.records()
	if err != nil {
		return err
	}

	found := false
	for i := range records {
		if records[i].Credit+amount > fieldfmt.MaxCredit {
			return ErrCreditLimitExceeded
		}
		if records[i].Username == username {
			records[i].Credit += amount
			found = true
		}
	}
	if !found {
		return &UserNotFoundError{Username: username}
	}

	return l.saveRecords(records)
}

// Refund moves amount from the seller's balance to the buyer's.
//
// Two passes: the first validates that both parties exist (buyer checked
// first) and that the seller can cover the amount; the second mutates and
// rewrites. No partial writes happen on failure.
func (l *Ledger) Refund(buyer, seller string, amount float64) error {
	if amount < 0 {
		return ErrInvalidRefundAmount
	}

	records, err := l.records()
	if err != nil {
		return err
	}

	buyerFound, sellerFound := false, false
	for _, r := range records {
		switch r.Username {
		case buyer:
			buyerFound = true
		case seller:
			sellerFound = true
		}
	}
	if !buyerFound {
		return &PartyNotFoundError{Username: buyer}
	}
	if !sellerFound {
		return &PartyNotFoundError{Username: seller}
	}

	for _, r := range records {
		if r.Username == seller && r.Credit-amount < 0 {
			return ErrSellerInsufficientFunds
		}
	}

	for i := range records {
		switch records[i].Username {
		case buyer:
			records[i].Credit += amount
		case seller:
			records[i].Credit -= amount
		}
	}

	return l.saveRecords(records)
}

// Exists reports whether an account with the given username is on file.
func (l *Ledger) Exists(username string) (bool, error) {
	records, err := l.records()
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// =============================================================================
// RECORD ACCESS
// =============================================================================

// Records returns every decoded account record. Blank lines are skipped;
// malformed lines are skipped with a warning.
func (l *Ledger) Records() ([]Record, error) {
	return l.records()
}

// SaveRecords rewrites the store from decoded records, reformatting every
// line and re-appending the sentinel.
func (l *Ledger) SaveRecords(records []Record) error {
	return l.saveRecords(records)
}

func (l *Ledger) records() ([]Record, error) {
	lines, err := l.Store.Load()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, ok := decodeRecord(line)
		if !ok {
			fmt.Fprintf(l.Warnings, "WARNING: Skipping malformed account line: %s\n", strings.TrimSpace(line))
			continue
		}
		records = append(records, r)
	}

	return records, nil
}

func (l *Ledger) saveRecords(records []Record) error {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		line, err := encodeRecord(r)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}
	return l.Store.Save(lines)
}

func decodeRecord(line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Record{}, false
	}
	credit, err := fieldfmt.ParseCredit(fields[2])
	if err != nil {
		return Record{}, false
	}
	return Record{Username: fields[0], UserType: fields[1], Credit: credit}, true
}

func encodeRecord(r Record) (string, error) {
	credit, err := fieldfmt.Credit(r.Credit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", fieldfmt.Username(r.Username), fieldfmt.UserType(r.UserType), credit), nil
}
