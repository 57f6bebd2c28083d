package models

import "time"

// Account is the persisted identity-plus-balance record. Balance is stored in
// currency minor units and never goes negative after a completed mutation.
type Account struct {
	ID            int64     `json:"id"`
	AccountNumber string    `json:"accNum"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Balance       int64     `json:"nominal"`
	CreatedAt     time.Time `json:"created_at"`
}

// AccountSummary is the public projection used by listings.
type AccountSummary struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accNum"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// AccountDetail is returned by the account-detail endpoint.
type AccountDetail struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accNum"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Menu          string `json:"menu"`
}

// BalanceDetail is the read-only balance projection.
type BalanceDetail struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accNum"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Balance       int64  `json:"nominal"`
	Time          string `json:"time"`
}

// BalanceUpdate describes the outcome of a deposit or withdrawal.
type BalanceUpdate struct {
	ID            int64  `json:"id"`
	AccountNumber string `json:"accNum"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	NewBalance    int64  `json:"nominalAkhir"`
}

// SessionInfo is returned on a successful login.
type SessionInfo struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	UserID        int64  `json:"user_id"`
	AccountNumber string `json:"accNum"`
	Token         string `json:"token"`
}

// TransferRecord describes a completed transfer. It is generated per request
// and never persisted.
type TransferRecord struct {
	TransactionID string `json:"transaction_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"nominal"`
	Date          string `json:"date"`
	Description   string `json:"description"`
}

// Page wraps a paginated account listing.
type Page struct {
	PageNumber      int              `json:"page_number"`
	PageSize        int              `json:"page_size"`
	Count           int              `json:"count"`
	TotalPages      int              `json:"total_pages"`
	HasPreviousPage bool             `json:"has_previous_page"`
	HasNextPage     bool             `json:"has_next_page"`
	Data            []AccountSummary `json:"data"`
}
