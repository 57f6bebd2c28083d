package bank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandaputra/banking-be/internal/storage/memory"
)

func newLedgerFixture(t *testing.T) (*memory.Store, *Ledger) {
	t.Helper()
	store := memory.NewAccountStore()
	return store, NewLedger(store)
}

func TestWithdrawThenInsufficient(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	id := seedAccount(t, store, "a@example.com", "pw", 50000)
	ctx := context.Background()

	updated, err := ledger.Withdraw(ctx, id, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), updated.NewBalance)

	_, err = ledger.Withdraw(ctx, id, 40000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// the failed withdrawal must not have touched the balance
	detail, err := ledger.Balance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), detail.Balance)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	id := seedAccount(t, store, "a@example.com", "pw", 50000)
	ctx := context.Background()

	updated, err := ledger.Deposit(ctx, id, 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(62345), updated.NewBalance)

	updated, err = ledger.Withdraw(ctx, id, 12345)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), updated.NewBalance)
}

func TestTransferMovesAndConservesBalance(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	fromID := seedAccount(t, store, "a@example.com", "pw", 30000)
	toID := seedAccount(t, store, "b@example.com", "pw", 5000)
	ctx := context.Background()

	record, err := ledger.Transfer(ctx, fromID, toID, 10000, "rent")
	require.NoError(t, err)
	assert.Equal(t, "10000", record.Amount)
	assert.Equal(t, "rent", record.Description)
	assert.NotEmpty(t, record.TransactionID)
	assert.Regexp(t, `^ID : \[\d+\], Name : `, record.From)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]$`, record.Date)

	fromDetail, err := ledger.Balance(ctx, fromID)
	require.NoError(t, err)
	toDetail, err := ledger.Balance(ctx, toID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), fromDetail.Balance)
	assert.Equal(t, int64(15000), toDetail.Balance)
	assert.Equal(t, int64(35000), fromDetail.Balance+toDetail.Balance)
}

func TestTransferInsufficientLeavesBothUntouched(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	fromID := seedAccount(t, store, "a@example.com", "pw", 5000)
	toID := seedAccount(t, store, "b@example.com", "pw", 1000)
	ctx := context.Background()

	_, err := ledger.Transfer(ctx, fromID, toID, 10000, "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	fromDetail, _ := ledger.Balance(ctx, fromID)
	toDetail, _ := ledger.Balance(ctx, toID)
	assert.Equal(t, int64(5000), fromDetail.Balance)
	assert.Equal(t, int64(1000), toDetail.Balance)
}

func TestTransferToSameAccountRejected(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	id := seedAccount(t, store, "a@example.com", "pw", 30000)
	ctx := context.Background()

	_, err := ledger.Transfer(ctx, id, id, 10000, "")
	assert.ErrorIs(t, err, ErrSameAccount)

	// the account must not mint money from a rejected self-transfer
	detail, err := ledger.Balance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), detail.Balance)
}

func TestTransferUnknownDestination(t *testing.T) {
	store, ledger := newLedgerFixture(t)
	fromID := seedAccount(t, store, "a@example.com", "pw", 50000)

	_, err := ledger.Transfer(context.Background(), fromID, 999, 1000, "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	fromDetail, _ := ledger.Balance(context.Background(), fromID)
	assert.Equal(t, int64(50000), fromDetail.Balance)
}

func TestLedgerUnknownAccount(t *testing.T) {
	_, ledger := newLedgerFixture(t)
	ctx := context.Background()

	_, err := ledger.Withdraw(ctx, 1, 100)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = ledger.Deposit(ctx, 1, 100)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = ledger.Balance(ctx, 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
