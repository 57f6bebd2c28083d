package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nandaputra/banking-be/internal/models"
	"github.com/nandaputra/banking-be/internal/storage"
)

// Ensure Store satisfies the storage.AccountStore interface at compile time.
var _ storage.AccountStore = (*Store)(nil)

// Store provides Postgres-backed persistence for accounts.
type Store struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a new Store and runs migrations.
func NewAccountStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			account_number TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_unique_idx ON accounts (email);`,
		`CREATE INDEX IF NOT EXISTS accounts_account_number_idx ON accounts (account_number);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const accountColumns = `id, account_number, name, email, password_hash, balance, created_at`

// CreateAccount inserts a new account row.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	query := `
		INSERT INTO accounts (account_number, name, email, password_hash, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query,
		account.AccountNumber, account.Name, account.Email, account.PasswordHash, account.Balance)
	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, err
	}
	return created, nil
}

// ListAccounts returns every account ordered by creation.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// FindByID fetches an account by its internal id.
func (s *Store) FindByID(ctx context.Context, id int64) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(s.pool.QueryRow(ctx, query, id))
}

// FindByEmail fetches an account by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(s.pool.QueryRow(ctx, query, email))
}

// UpdateProfile changes an account's name and email.
func (s *Store) UpdateProfile(ctx context.Context, id int64, name, email string) (models.Account, error) {
	query := `
		UPDATE accounts SET name = $2, email = $3
		WHERE id = $1
		RETURNING ` + accountColumns
	updated, err := scanAccount(s.pool.QueryRow(ctx, query, id, name, email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Account{}, storage.ErrAlreadyExists
		}
		return models.Account{}, err
	}
	return updated, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Deposit adds amount to the account's balance.
func (s *Store) Deposit(ctx context.Context, id int64, amount int64) (models.Account, error) {
	query := `
		UPDATE accounts SET balance = balance + $2
		WHERE id = $1
		RETURNING ` + accountColumns
	return scanAccount(s.pool.QueryRow(ctx, query, id, amount))
}

// Withdraw subtracts amount from the account's balance. The conditional
// WHERE keeps the balance non-negative even under concurrent withdrawals, so
// a miss has to be disambiguated into not-found vs insufficient funds.
func (s *Store) Withdraw(ctx context.Context, id int64, amount int64) (models.Account, error) {
	query := `
		UPDATE accounts SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING ` + accountColumns
	account, err := scanAccount(s.pool.QueryRow(ctx, query, id, amount))
	if errors.Is(err, storage.ErrNotFound) {
		if _, findErr := s.FindByID(ctx, id); findErr == nil {
			return models.Account{}, storage.ErrInsufficientBalance
		}
		return models.Account{}, storage.ErrNotFound
	}
	return account, err
}

// Transfer moves amount between two accounts inside a single transaction.
// The debit uses the same conditional update as Withdraw, so a concurrent
// transfer cannot interleave between read and write and double-spend.
func (s *Store) Transfer(ctx context.Context, fromID, toID int64, amount int64) (models.Account, models.Account, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Account{}, models.Account{}, err
	}
	defer tx.Rollback(ctx)

	debitQuery := `
		UPDATE accounts SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING ` + accountColumns
	from, err := scanAccount(tx.QueryRow(ctx, debitQuery, fromID, amount))
	if errors.Is(err, storage.ErrNotFound) {
		if _, findErr := s.FindByID(ctx, fromID); findErr == nil {
			return models.Account{}, models.Account{}, storage.ErrInsufficientBalance
		}
		return models.Account{}, models.Account{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Account{}, models.Account{}, err
	}

	creditQuery := `
		UPDATE accounts SET balance = balance + $2
		WHERE id = $1
		RETURNING ` + accountColumns
	to, err := scanAccount(tx.QueryRow(ctx, creditQuery, toID, amount))
	if err != nil {
		return models.Account{}, models.Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Account{}, models.Account{}, err
	}
	return from, to, nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.AccountNumber, &account.Name, &account.Email,
		&account.PasswordHash, &account.Balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	return account, nil
}
