package storage

import (
	"context"
	"errors"

	"github.com/nandaputra/banking-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInsufficientBalance indicates a conditional balance update found less
// money than the operation required.
var ErrInsufficientBalance = errors.New("insufficient balance")

// AccountStore captures the persistence operations the services need.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	FindByID(ctx context.Context, id int64) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (models.Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	DeleteAccount(ctx context.Context, id int64) error

	// Deposit and Withdraw apply the delta and return the updated account.
	// Withdraw fails with ErrInsufficientBalance instead of letting the
	// balance go negative.
	Deposit(ctx context.Context, id int64, amount int64) (models.Account, error)
	Withdraw(ctx context.Context, id int64, amount int64) (models.Account, error)

	// Transfer debits fromID and credits toID as one atomic unit and
	// returns both updated accounts.
	Transfer(ctx context.Context, fromID, toID int64, amount int64) (from, to models.Account, err error)
}
