package bank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/ratelimit"
	"github.com/nandaputra/banking-be/internal/storage/memory"
)

func testHasher() *auth.Hasher {
	return auth.NewHasher(bcrypt.MinCost)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "test", time.Hour)
}

func seedAccount(t *testing.T, store *memory.Store, email, password string, balance int64) int64 {
	t.Helper()
	accounts := NewAccounts(store, testHasher(), 0)
	created, err := accounts.Create(context.Background(), "Test User", email, password, balance)
	require.NoError(t, err)
	return created.ID
}

func TestAuthenticateSuccess(t *testing.T) {
	store := memory.NewAccountStore()
	id := seedAccount(t, store, "admins@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	session, err := svc.Authenticate(context.Background(), "admins@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "admins@example.com", session.Email)
	assert.Equal(t, "Test User", session.Name)
	assert.Equal(t, id, session.UserID)
	assert.NotEmpty(t, session.AccountNumber)
	assert.NotEmpty(t, session.Token)
}

func TestAuthenticateWrongPasswordCountsAttempts(t *testing.T) {
	store := memory.NewAccountStore()
	seedAccount(t, store, "admins@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	for i := 1; i <= 2; i++ {
		_, err := svc.Authenticate(context.Background(), "admins@example.com", "wrong")
		var credErr *CredentialsError
		require.ErrorAs(t, err, &credErr)
		assert.Equal(t, i, credErr.Attempts)
		assert.False(t, credErr.LimitReached)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthenticateUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	store := memory.NewAccountStore()

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	var credErr *CredentialsError
	require.ErrorAs(t, err, &credErr)
	assert.NotContains(t, credErr.Error(), "not found")
	assert.Equal(t, 1, credErr.Attempts)
}

func TestAuthenticateLockoutBlocksCorrectPassword(t *testing.T) {
	store := memory.NewAccountStore()
	seedAccount(t, store, "admins@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	for i := 1; i <= 5; i++ {
		_, err := svc.Authenticate(context.Background(), "admins@example.com", "wrong")
		var credErr *CredentialsError
		require.ErrorAs(t, err, &credErr)
		assert.Equal(t, i == 5, credErr.LimitReached)
	}

	_, err := svc.Authenticate(context.Background(), "admins@example.com", "123456")
	var lockedErr *ratelimit.LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, "admins@example.com", lockedErr.Identifier)
}

func TestAuthenticateLockoutExpiresWithWindow(t *testing.T) {
	store := memory.NewAccountStore()
	seedAccount(t, store, "admins@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 50 * time.Millisecond})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	for i := 0; i < 5; i++ {
		_, err := svc.Authenticate(context.Background(), "admins@example.com", "wrong")
		require.Error(t, err)
	}
	_, err := svc.Authenticate(context.Background(), "admins@example.com", "123456")
	var lockedErr *ratelimit.LockedError
	require.ErrorAs(t, err, &lockedErr)

	time.Sleep(60 * time.Millisecond)

	session, err := svc.Authenticate(context.Background(), "admins@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "admins@example.com", session.Email)
}

func TestBankPolicyBlockIsPermanent(t *testing.T) {
	store := memory.NewAccountStore()
	seedAccount(t, store, "teller@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 3})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(context.Background(), "teller@example.com", "wrong")
		require.Error(t, err)
	}

	_, err := svc.Authenticate(context.Background(), "teller@example.com", "123456")
	var lockedErr *ratelimit.LockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Contains(t, lockedErr.Error(), "blocked")
}

func TestAuthenticateSuccessResetsAttempts(t *testing.T) {
	store := memory.NewAccountStore()
	seedAccount(t, store, "admins@example.com", "123456", 50000)

	limiter := ratelimit.New(ratelimit.Policy{MaxAttempts: 5, LockoutWindow: 30 * time.Minute})
	svc := NewAuthService(store, testHasher(), limiter, testTokens())

	for i := 0; i < 4; i++ {
		_, err := svc.Authenticate(context.Background(), "admins@example.com", "wrong")
		require.Error(t, err)
	}
	_, err := svc.Authenticate(context.Background(), "admins@example.com", "123456")
	require.NoError(t, err)

	// the next failure counts from one again
	_, err = svc.Authenticate(context.Background(), "admins@example.com", "wrong")
	var credErr *CredentialsError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, 1, credErr.Attempts)
}
