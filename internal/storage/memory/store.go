// Package memory implements storage.AccountStore with an in-process map. It
// backs the unit tests and the database-less development mode; semantics
// mirror the postgres backend, including the conditional balance updates.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nandaputra/banking-be/internal/models"
	"github.com/nandaputra/banking-be/internal/storage"
)

var _ storage.AccountStore = (*Store)(nil)

// Store keeps accounts in a mutex-guarded map.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]models.Account
}

// NewAccountStore creates an empty in-memory store.
func NewAccountStore() *Store {
	return &Store{accounts: make(map[int64]models.Account)}
}

func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	account.ID = s.nextID
	account.CreatedAt = time.Now()
	s.accounts[account.ID] = account
	return account, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Account, 0, len(s.accounts))
	for id := int64(1); id <= s.nextID; id++ {
		if account, ok := s.accounts[id]; ok {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (s *Store) UpdateProfile(ctx context.Context, id int64, name, email string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findLocked(id)
	if err != nil {
		return models.Account{}, err
	}
	for otherID, other := range s.accounts {
		if otherID != id && other.Email == email {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}
	account.Name = name
	account.Email = email
	s.accounts[id] = account
	return account, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findLocked(id)
	if err != nil {
		return err
	}
	account.PasswordHash = passwordHash
	s.accounts[id] = account
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *Store) Deposit(ctx context.Context, id int64, amount int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findLocked(id)
	if err != nil {
		return models.Account{}, err
	}
	account.Balance += amount
	s.accounts[id] = account
	return account, nil
}

func (s *Store) Withdraw(ctx context.Context, id int64, amount int64) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findLocked(id)
	if err != nil {
		return models.Account{}, err
	}
	if account.Balance < amount {
		return models.Account{}, storage.ErrInsufficientBalance
	}
	account.Balance -= amount
	s.accounts[id] = account
	return account, nil
}

// Transfer debits and credits under one lock, so partial application is
// never observable. A self-transfer debits and credits the same account and
// nets to zero, as the sequential postgres updates do.
func (s *Store) Transfer(ctx context.Context, fromID, toID int64, amount int64) (models.Account, models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		account, err := s.findLocked(fromID)
		if err != nil {
			return models.Account{}, models.Account{}, err
		}
		if account.Balance < amount {
			return models.Account{}, models.Account{}, storage.ErrInsufficientBalance
		}
		return account, account, nil
	}

	from, err := s.findLocked(fromID)
	if err != nil {
		return models.Account{}, models.Account{}, err
	}
	to, err := s.findLocked(toID)
	if err != nil {
		return models.Account{}, models.Account{}, err
	}
	if from.Balance < amount {
		return models.Account{}, models.Account{}, storage.ErrInsufficientBalance
	}
	from.Balance -= amount
	to.Balance += amount
	s.accounts[fromID] = from
	s.accounts[toID] = to
	return from, to, nil
}

func (s *Store) findLocked(id int64) (models.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return account, nil
}
