package accounts

import (
	"errors"
	"fmt"
)

// Error text in this package is a compatibility surface: the dispatcher
// prints it verbatim (prefixed with "ERROR: ") and downstream consumers match
// on the exact wording, so the strings are full sentences.
var (
	ErrUsernameTooLong         = errors.New("Username exceeds maximum length of 15 characters.")
	ErrCreditOutOfRange        = errors.New("Initial credit exceeds maximum allowed value.")
	ErrNoAccountsFound         = errors.New("No accounts found.")
	ErrInvalidCreditAmount     = errors.New("Credit amount must be a positive number.")
	ErrCreditLimitExceeded     = errors.New("Credit limit exceeded.")
	ErrInvalidRefundAmount     = errors.New("Invalid refund amount.")
	ErrSellerInsufficientFunds = errors.New("Seller has insufficient funds for the refund.")
)

// DuplicateUsernameError reports an account creation against a username that
// is already present. Username carries the field-padded form, which is what
// the message quotes.
type DuplicateUsernameError struct {
	Username string
}

func (e *DuplicateUsernameError) Error() string {
	return fmt.Sprintf("Username '%s' already exists.", e.Username)
}

// InvalidUserTypeError reports a user type outside the recognized set.
type InvalidUserTypeError struct {
	UserType string
}

func (e *InvalidUserTypeError) Error() string {
	return fmt.Sprintf("Invalid user type '%s'.", e.UserType)
}

// UserNotFoundError reports an add-credit target with no account.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User '%s' not found.", e.Username)
}

// PartyNotFoundError reports a refund party with no account. The buyer is
// checked before the seller, so when both are missing it names the buyer.
type PartyNotFoundError struct {
	Username string
}

func (e *PartyNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in user accounts.", e.Username)
}
