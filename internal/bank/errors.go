// Package bank holds the core services: authentication, the account ledger,
// and account management. Domain failures are typed so the HTTP layer can map
// them to statuses with errors.Is/As.
package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials means the email/password pair did not match.
	ErrInvalidCredentials = errors.New("wrong email or password")

	// ErrAccountNotFound means the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means a withdrawal or transfer exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccount means a transfer names the same account on both sides.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrPasswordMismatch means a password confirmation did not match.
	ErrPasswordMismatch = errors.New("password confirmation mismatched")

	// ErrMinimumDeposit means the opening balance is below the required minimum.
	ErrMinimumDeposit = errors.New("opening balance below the minimum deposit")

	// ErrStoreUnavailable wraps unexpected credential-store failures.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// CredentialsError reports a failed login attempt. It carries the running
// attempt count and whether this attempt tripped the lockout so the client
// can tell "still guessing" apart from "blocked".
type CredentialsError struct {
	Identifier   string
	Attempts     int
	LimitReached bool
}

func (e *CredentialsError) Error() string {
	if e.LimitReached {
		return fmt.Sprintf("user %s failed to login, attempt = %d, limit reached", e.Identifier, e.Attempts)
	}
	return fmt.Sprintf("user %s failed to login, attempt = %d", e.Identifier, e.Attempts)
}

// Unwrap lets errors.Is(err, ErrInvalidCredentials) match login failures.
func (e *CredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
