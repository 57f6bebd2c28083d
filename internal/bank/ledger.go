package bank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nandaputra/banking-be/internal/models"
	"github.com/nandaputra/banking-be/internal/storage"
)

// Ledger performs balance mutations. Amount validation (positive integer) is
// a precondition enforced at the HTTP boundary; the ledger only enforces
// existence and the non-negative balance invariant.
type Ledger struct {
	store storage.AccountStore

	now func() time.Time
}

// NewLedger creates a ledger over the given store.
func NewLedger(store storage.AccountStore) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Withdraw debits the account and returns the new balance. The stored
// balance is untouched when funds are insufficient.
func (l *Ledger) Withdraw(ctx context.Context, id int64, amount int64) (models.BalanceUpdate, error) {
	account, err := l.store.Withdraw(ctx, id, amount)
	if err != nil {
		return models.BalanceUpdate{}, mapStoreErr(err)
	}
	return balanceUpdate(account), nil
}

// Deposit credits the account and returns the new balance.
func (l *Ledger) Deposit(ctx context.Context, id int64, amount int64) (models.BalanceUpdate, error) {
	account, err := l.store.Deposit(ctx, id, amount)
	if err != nil {
		return models.BalanceUpdate{}, mapStoreErr(err)
	}
	return balanceUpdate(account), nil
}

// Transfer moves amount from one account to another and returns a record of
// the completed transfer. Debit and credit are applied atomically by the
// store, so a failure on either side leaves both balances untouched.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID int64, amount int64, description string) (models.TransferRecord, error) {
	if fromID == toID {
		return models.TransferRecord{}, ErrSameAccount
	}
	from, to, err := l.store.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		return models.TransferRecord{}, mapStoreErr(err)
	}
	return models.TransferRecord{
		TransactionID: uuid.NewString(),
		From:          describeParty(from),
		To:            describeParty(to),
		Amount:        fmt.Sprintf("%d", amount),
		Date:          timestamp(l.now()),
		Description:   description,
	}, nil
}

// Balance returns the identifying fields and current balance of an account.
func (l *Ledger) Balance(ctx context.Context, id int64) (models.BalanceDetail, error) {
	account, err := l.store.FindByID(ctx, id)
	if err != nil {
		return models.BalanceDetail{}, mapStoreErr(err)
	}
	return models.BalanceDetail{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Email:         account.Email,
		Balance:       account.Balance,
		Time:          timestamp(l.now()),
	}, nil
}

func balanceUpdate(account models.Account) models.BalanceUpdate {
	return models.BalanceUpdate{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Email:         account.Email,
		NewBalance:    account.Balance,
	}
}

func describeParty(account models.Account) string {
	return fmt.Sprintf("ID : [%s], Name : %s", account.AccountNumber, account.Name)
}

func timestamp(t time.Time) string {
	return t.UTC().Format("[2006-01-02 15:04:05]")
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrAccountNotFound
	case errors.Is(err, storage.ErrInsufficientBalance):
		return ErrInsufficientFunds
	default:
		return storeErr(err)
	}
}
