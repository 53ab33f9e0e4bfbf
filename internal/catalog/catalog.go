// =============================================================================
// Game Ledger - Catalog & Ownership Ledger
// =============================================================================
//
// The sell and buy operations span two stores: the available-games catalog
// (listings for sale) and the games collection (per-user ownership). Buys
// additionally read and rewrite the account ledger to settle funds.
//
// Game names may contain spaces. Transaction lines are parsed positionally
// from both ends upstream, so this package always receives the reassembled
// name; store lines reconstruct it the same way (all tokens between the
// fixed-width head and the trailing fields).
//
// Buy validation order is fixed: game exists, then duplicate ownership, then
// seller exists, then buyer exists, then sufficient funds. Any other order is
// a regression.
//
// =============================================================================

package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/game-ledger/internal/accounts"
	"github.com/ginjaninja78/game-ledger/internal/fieldfmt"
	"github.com/ginjaninja78/game-ledger/internal/store"
)

// Listing is one decoded available-games line.
type Listing struct {
	Game   string
	Seller string
	Price  float64
}

// Ownership is one decoded games-collection line.
type Ownership struct {
	Game  string
	Owner string
}

// Catalog owns the available-games and games-collection stores, settling
// purchases against the account ledger.
type Catalog struct {
	Games      store.Store
	Collection store.Store
	Accounts   *accounts.Ledger

	// Warnings receives the skipped-line notices for malformed records.
	Warnings io.Writer
}

// New returns a catalog over the two stores, settling against acct.
func New(gamesPath, collectionPath string, acct *accounts.Ledger) *Catalog {
	return &Catalog{
		Games:      store.Games(gamesPath),
		Collection: store.Collection(collectionPath),
		Accounts:   acct,
		Warnings:   os.Stdout,
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Sell appends a new listing to the available-games store.
//
// FAILURE MODES (store untouched on all of them):
//   - ErrGameNameTooLong if the name exceeds its field width
//   - ErrPriceTooLarge if the price exceeds its field budget
//   - SellerNotFoundError if the seller has no account
//   - DuplicateListingError if a listing with the same name exists
func (c *Catalog) Sell(game, seller string, price float64) error {
	if len(game) > fieldfmt.GameNameWidth {
		return ErrGameNameTooLong
	}
	if price < 0 || price > fieldfmt.MaxPrice {
		return ErrPriceTooLarge
	}

	exists, err := c.Accounts.Exists(seller)
	if err != nil {
		return err
	}
	if !exists {
		return &SellerNotFoundError{Seller: seller}
	}

	lines, err := c.Games.Load()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if l, ok := decodeListing(line); ok && l.Game == game {
			return &DuplicateListingError{Game: game}
		}
	}

	priceField, err := fieldfmt.Price(price)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%s %s %s", fieldfmt.GameName(game), fieldfmt.Username(seller), priceField)

	return c.Games.Save(append(lines, line))
}

// Buy settles a purchase: the buyer is debited and the seller credited in a
// single rewrite of the account store, then an ownership record is appended
// to the games collection. The catalog listing is not removed; a game stays
// purchasable by other users after any number of sales.
func (c *Catalog) Buy(game, seller, buyer string, price float64) error {
	listed, err := c.gameListed(game)
	if err != nil {
		return err
	}
	if !listed {
		return &GameNotListedError{Game: game}
	}

	owned, err := c.owned(game, buyer)
	if err != nil {
		return err
	}
	if owned {
		return &AlreadyOwnedError{Buyer: buyer, Game: game}
	}

	records, err := c.Accounts.Records()
	if err != nil {
		return err
	}

	buyerIdx, sellerIdx := -1, -1
	for i, r := range records {
		switch r.Username {
		case buyer:
			buyerIdx = i
		case seller:
			sellerIdx = i
		}
	}
	if sellerIdx < 0 {
		return &SellerNotFoundError{Seller: seller}
	}
	if buyerIdx < 0 {
		return &BuyerNotFoundError{Buyer: buyer}
	}
	if records[buyerIdx].Credit < price {
		return &InsufficientFundsError{Buyer: buyer}
	}

	records[buyerIdx].Credit -= price
	records[sellerIdx].Credit += price
	if err := c.Accounts.SaveRecords(records); err != nil {
		return err
	}

	collection, err := c.Collection.Load()
	if err != nil {
		return err
	}
	line := fmt.Sprintf("%s %s", fieldfmt.GameName(game), fieldfmt.Owner(buyer))

	return c.Collection.Save(append(collection, line))
}

// =============================================================================
// RECORD ACCESS
// =============================================================================

// Listings returns every decoded catalog entry, skipping blank lines and
// warning on malformed ones.
func (c *Catalog) Listings() ([]Listing, error) {
	lines, err := c.Games.Load()
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l, ok := decodeListing(line)
		if !ok {
			fmt.Fprintf(c.Warnings, "WARNING: Skipping malformed game line: %s\n", strings.TrimSpace(line))
			continue
		}
		listings = append(listings, l)
	}

	return listings, nil
}

// Ownerships returns every decoded games-collection entry.
func (c *Catalog) Ownerships() ([]Ownership, error) {
	lines, err := c.Collection.Load()
	if err != nil {
		return nil, err
	}

	owned := make([]Ownership, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		o, ok := decodeOwnership(line)
		if !ok {
			fmt.Fprintf(c.Warnings, "WARNING: Skipping malformed collection line: %s\n", strings.TrimSpace(line))
			continue
		}
		owned = append(owned, o)
	}

	return owned, nil
}

func (c *Catalog) gameListed(game string) (bool, error) {
	lines, err := c.Games.Load()
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if l, ok := decodeListing(line); ok && l.Game == game {
			return true, nil
		}
	}
	return false, nil
}

func (c *Catalog) owned(game, buyer string) (bool, error) {
	lines, err := c.Collection.Load()
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if o, ok := decodeOwnership(line); ok && o.Game == game && o.Owner == buyer {
			return true, nil
		}
	}
	return false, nil
}

// decodeListing splits a catalog line positionally: the last two tokens are
// the seller and price, everything before them is the game name.
func decodeListing(line string) (Listing, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Listing{}, false
	}
	price, err := fieldfmt.ParsePrice(fields[len(fields)-1])
	if err != nil {
		return Listing{}, false
	}
	return Listing{
		Game:   strings.Join(fields[:len(fields)-2], " "),
		Seller: fields[len(fields)-2],
		Price:  price,
	}, true
}

// decodeOwnership splits a collection line: the last token is the owner,
// everything before it is the game name.
func decodeOwnership(line string) (Ownership, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Ownership{}, false
	}
	return Ownership{
		Game:  strings.Join(fields[:len(fields)-1], " "),
		Owner: fields[len(fields)-1],
	}, true
}
