// =============================================================================
// Game Ledger - Sentinel-Aware Store Access
// =============================================================================
//
// Each flat-file store is terminated by a sentinel "END" line padded with
// trailing spaces to a store-specific total width. A Store pairs a file path
// with its sentinel padding so that every read strips the sentinel and every
// write re-appends it at the correct width.
//
// The padding widths are fixed per store (see the constants below); historical
// variants padded differently per operation, which this implementation
// deliberately does not reproduce.
//
// =============================================================================

package store

import (
	"strings"

	"github.com/ginjaninja78/game-ledger/pkg/flatfile"
)

// Sentinel is the terminator token of every store file.
const Sentinel = "END"

// Trailing spaces after the sentinel token, per store.
const (
	AccountsPadding   = 25 // total sentinel line width 28
	GamesPadding      = 46 // total sentinel line width 49
	CollectionPadding = 39 // total sentinel line width 42
)

// Store is a flat-file record store with a fixed sentinel padding width.
type Store struct {
	Path    string
	Padding int
}

// Accounts returns the user-accounts store at path.
func Accounts(path string) Store {
	return Store{Path: path, Padding: AccountsPadding}
}

// Games returns the available-games store at path.
func Games(path string) Store {
	return Store{Path: path, Padding: GamesPadding}
}

// Collection returns the games-collection (ownership) store at path.
func Collection(path string) Store {
	return Store{Path: path, Padding: CollectionPadding}
}

// Load reads every record line of the store, with the trailing sentinel
// stripped. Blank lines are preserved; skipping them is the caller's call.
func (s Store) Load() ([]string, error) {
	lines, err := flatfile.ReadLines(s.Path)
	if err != nil {
		return nil, err
	}
	return StripSentinel(lines), nil
}

// Save rewrites the store with the given record lines followed by the
// sentinel at this store's padding width.
func (s Store) Save(records []string) error {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, records...)
	lines = append(lines, s.SentinelLine())
	return flatfile.WriteLines(s.Path, lines)
}

// SentinelLine returns the sentinel line at this store's width.
func (s Store) SentinelLine() string {
	return Sentinel + strings.Repeat(" ", s.Padding)
}

// StripSentinel removes a trailing sentinel line, if present.
func StripSentinel(lines []string) []string {
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == Sentinel {
		return lines[:n-1]
	}
	return lines
}

// IsSentinel reports whether line is a sentinel line, at any padding.
func IsSentinel(line string) bool {
	return strings.TrimSpace(line) == Sentinel
}
