package catalog

import (
	"errors"
	"fmt"
)

// As in the accounts package, error text here is printed verbatim by the
// dispatcher and matched by downstream consumers.
var (
	ErrGameNameTooLong = errors.New("Game name exceeds maximum length of 25 characters.")
	ErrPriceTooLarge   = errors.New("Price exceeds maximum allowed value.")
)

// DuplicateListingError reports a sell against a game name that is already
// listed.
type DuplicateListingError struct {
	Game string
}

func (e *DuplicateListingError) Error() string {
	return fmt.Sprintf("Game '%s' is already listed for sale.", e.Game)
}

// SellerNotFoundError reports a seller with no account, at sell or buy time.
type SellerNotFoundError struct {
	Seller string
}

func (e *SellerNotFoundError) Error() string {
	return fmt.Sprintf("Seller '%s' is not found.", e.Seller)
}

// BuyerNotFoundError reports a buyer with no account at buy time.
type BuyerNotFoundError struct {
	Buyer string
}

func (e *BuyerNotFoundError) Error() string {
	return fmt.Sprintf("Buyer '%s' is not found.", e.Buyer)
}

// GameNotListedError reports a buy of a game with no catalog entry.
type GameNotListedError struct {
	Game string
}

func (e *GameNotListedError) Error() string {
	return fmt.Sprintf("The game '%s' does not exist in the available games collection.", e.Game)
}

// AlreadyOwnedError reports a buy of a game the buyer already owns.
type AlreadyOwnedError struct {
	Buyer string
	Game  string
}

func (e *AlreadyOwnedError) Error() string {
	return fmt.Sprintf("Buyer '%s' already owns the game '%s'.", e.Buyer, e.Game)
}

// InsufficientFundsError reports a buyer whose balance cannot cover the
// listed price.
type InsufficientFundsError struct {
	Buyer string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("User '%s' does not have enough credit to buy the game.", e.Buyer)
}
