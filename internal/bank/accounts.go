package bank

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/models"
	"github.com/nandaputra/banking-be/internal/storage"
)

// Accounts manages account records: creation, listing, profile updates,
// password changes, and deletion.
type Accounts struct {
	store      storage.AccountStore
	hasher     *auth.Hasher
	minOpening int64
}

// NewAccounts creates the account-management service. minOpening is the
// smallest balance an account may be opened with.
func NewAccounts(store storage.AccountStore, hasher *auth.Hasher, minOpening int64) *Accounts {
	return &Accounts{store: store, hasher: hasher, minOpening: minOpening}
}

// Create registers a new account with the given opening balance. The public
// account number is generated here; it is not guaranteed globally unique.
func (a *Accounts) Create(ctx context.Context, name, email, password string, nominal int64) (models.Account, error) {
	if nominal < a.minOpening {
		return models.Account{}, fmt.Errorf("%w: minimum is %d", ErrMinimumDeposit, a.minOpening)
	}
	passwordHash, err := a.hasher.Hash(password)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		AccountNumber: newAccountNumber(),
		Name:          strings.TrimSpace(name),
		Email:         strings.TrimSpace(email),
		PasswordHash:  passwordHash,
		Balance:       nominal,
	}
	created, err := a.store.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.Account{}, ErrEmailTaken
		}
		return models.Account{}, storeErr(err)
	}
	return created, nil
}

// List returns the public projection of every account.
func (a *Accounts) List(ctx context.Context) ([]models.AccountSummary, error) {
	accounts, err := a.store.ListAccounts(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]models.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, summary(account))
	}
	return out, nil
}

// PageQuery selects a slice of the account listing. Search takes the form
// "field:value" over email, name, or id; Sort accepts "email:desc".
type PageQuery struct {
	PageNumber int
	PageSize   int
	Search     string
	Sort       string
}

// Page returns a filtered, sorted, paginated account listing.
func (a *Accounts) Page(ctx context.Context, q PageQuery) (models.Page, error) {
	accounts, err := a.store.ListAccounts(ctx)
	if err != nil {
		return models.Page{}, storeErr(err)
	}

	accounts = filterAccounts(accounts, q.Search)
	sortAccounts(accounts, q.Sort)

	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = len(accounts)
		if q.PageSize == 0 {
			q.PageSize = 1
		}
	}

	count := len(accounts)
	totalPages := (count + q.PageSize - 1) / q.PageSize
	start := (q.PageNumber - 1) * q.PageSize
	end := min(start+q.PageSize, count)

	data := make([]models.AccountSummary, 0, q.PageSize)
	for i := start; i < end; i++ {
		data = append(data, summary(accounts[i]))
	}

	return models.Page{
		PageNumber:      q.PageNumber,
		PageSize:        q.PageSize,
		Count:           count,
		TotalPages:      totalPages,
		HasPreviousPage: q.PageNumber > 1,
		HasNextPage:     q.PageNumber < totalPages,
		Data:            data,
	}, nil
}

// Detail returns an account's public fields plus the banking menu string.
func (a *Accounts) Detail(ctx context.Context, id int64) (models.AccountDetail, error) {
	account, err := a.store.FindByID(ctx, id)
	if err != nil {
		return models.AccountDetail{}, mapStoreErr(err)
	}
	return models.AccountDetail{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Email:         account.Email,
		Menu:          "/info , /changePassword, /withdraw, /deposit, /transfer ",
	}, nil
}

// UpdateProfile changes an account's name and email.
func (a *Accounts) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	_, err := a.store.UpdateProfile(ctx, id, strings.TrimSpace(name), strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return ErrEmailTaken
		}
		return mapStoreErr(err)
	}
	return nil
}

// ChangePassword verifies the old password before storing the new hash.
func (a *Accounts) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	account, err := a.store.FindByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if !a.hasher.Compare(account.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := a.store.UpdatePassword(ctx, id, passwordHash); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// Delete removes an account.
func (a *Accounts) Delete(ctx context.Context, id int64) error {
	if err := a.store.DeleteAccount(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

func summary(account models.Account) models.AccountSummary {
	return models.AccountSummary{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Email:         account.Email,
	}
}

func filterAccounts(accounts []models.Account, search string) []models.Account {
	field, value, ok := strings.Cut(search, ":")
	if !ok || value == "" {
		return accounts
	}
	out := accounts[:0]
	for _, account := range accounts {
		switch field {
		case "email":
			if strings.Contains(account.Email, value) {
				out = append(out, account)
			}
		case "name":
			if strings.Contains(account.Name, value) {
				out = append(out, account)
			}
		case "id":
			if strings.Contains(fmt.Sprintf("%d", account.ID), value) {
				out = append(out, account)
			}
		default:
			out = append(out, account)
		}
	}
	return out
}

func sortAccounts(accounts []models.Account, sortSpec string) {
	field, direction, _ := strings.Cut(sortSpec, ":")
	if field != "email" {
		return
	}
	sort.Slice(accounts, func(i, j int) bool {
		if direction == "desc" {
			return accounts[i].Email > accounts[j].Email
		}
		return accounts[i].Email < accounts[j].Email
	})
}

// newAccountNumber concatenates two random numeric chunks, matching the
// format customers already have on record.
func newAccountNumber() string {
	first := 1 + rand.IntN(900000)
	second := 1000 + rand.IntN(9000)
	return fmt.Sprintf("%d%d", first, second)
}
