// =============================================================================
// Game Ledger - Fixed-Width Field Formatter
// =============================================================================
//
// Pure encode/decode helpers for the fixed-width record fields shared by the
// three stores. Text fields are left-justified and space-padded; money fields
// are two-decimal magnitudes zero-padded on the left.
//
// Two username widths exist on purpose: account records carry the username in
// a 16-cell field, ownership records carry the owner in a 15-cell field. The
// widths are not interchangeable.
//
// =============================================================================

package fieldfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Field widths, in character cells.
const (
	UsernameWidth = 16 // username field of an account record
	OwnerWidth    = 15 // owner field of an ownership record
	GameNameWidth = 25
	UserTypeWidth = 2
	CreditWidth   = 9
	PriceWidth    = 6
)

// Numeric budgets implied by the money field widths.
const (
	MaxCredit = 999999.99
	MaxPrice  = 999.99
)

// MaxUsernameLen is the longest username accepted at account creation.
const MaxUsernameLen = 15

// FormatError reports a value that cannot be encoded into, or decoded from,
// its fixed-width field. The caller decides whether it is fatal to the
// transaction.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s value '%s'", e.Field, e.Value)
}

// Username pads a username to the account-record field width.
func Username(s string) string {
	return pad(s, UsernameWidth)
}

// Owner pads a username to the ownership-record field width.
func Owner(s string) string {
	return pad(s, OwnerWidth)
}

// GameName pads a game name to its field width.
func GameName(s string) string {
	return pad(s, GameNameWidth)
}

// UserType pads a user type code to its field width.
func UserType(s string) string {
	return pad(s, UserTypeWidth)
}

// Credit encodes a credit balance as a zero-left-padded two-decimal field,
// e.g. 123.45 -> "000123.45". Values outside [0, MaxCredit] do not fit the
// digit budget and yield a FormatError.
func Credit(v float64) (string, error) {
	if v < 0 || v > MaxCredit {
		return "", &FormatError{Field: "credit", Value: strconv.FormatFloat(v, 'f', 2, 64)}
	}
	return fmt.Sprintf("%09.2f", v), nil
}

// Price encodes a listing price, e.g. 12.34 -> "012.34". Values outside
// [0, MaxPrice] yield a FormatError.
func Price(v float64) (string, error) {
	if v < 0 || v > MaxPrice {
		return "", &FormatError{Field: "price", Value: strconv.FormatFloat(v, 'f', 2, 64)}
	}
	return fmt.Sprintf("%06.2f", v), nil
}

// ParseCredit decodes a credit field. Negative or unparseable input yields a
// FormatError; range checks above the parse are the ledger's concern.
func ParseCredit(s string) (float64, error) {
	return parseMoney("credit", s)
}

// ParsePrice decodes a price field.
func ParsePrice(s string) (float64, error) {
	return parseMoney("price", s)
}

func parseMoney(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, &FormatError{Field: field, Value: s}
	}
	return v, nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
