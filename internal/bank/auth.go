package bank

import (
	"context"
	"errors"

	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/models"
	"github.com/nandaputra/banking-be/internal/ratelimit"
	"github.com/nandaputra/banking-be/internal/storage"
)

// AuthService validates credentials against the store, gated by a rate
// limiter. Each login surface owns its own AuthService instance so the user
// and banking endpoints can run distinct lockout policies.
type AuthService struct {
	store   storage.AccountStore
	hasher  *auth.Hasher
	limiter *ratelimit.Limiter
	tokens  *auth.TokenManager
}

// NewAuthService wires an authentication service with its own limiter policy.
func NewAuthService(store storage.AccountStore, hasher *auth.Hasher, limiter *ratelimit.Limiter, tokens *auth.TokenManager) *AuthService {
	return &AuthService{store: store, hasher: hasher, limiter: limiter, tokens: tokens}
}

// Authenticate checks the email/password pair and returns session info on
// success. Lockout is consulted before the store is touched; a missing
// account still costs one hash comparison so response timing does not reveal
// whether the email is registered.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.SessionInfo, error) {
	if err := s.limiter.CheckAllowed(email); err != nil {
		return models.SessionInfo{}, err
	}

	account, err := s.store.FindByEmail(ctx, email)
	var matched bool
	switch {
	case err == nil:
		matched = s.hasher.Compare(account.PasswordHash, password)
	case errors.Is(err, storage.ErrNotFound):
		matched = s.hasher.CompareDecoy(password)
	default:
		return models.SessionInfo{}, storeErr(err)
	}

	if !matched {
		attempts, locked := s.limiter.RecordFailure(email)
		return models.SessionInfo{}, &CredentialsError{Identifier: email, Attempts: attempts, LimitReached: locked}
	}

	s.limiter.RecordSuccess(email)

	token, err := s.tokens.Generate(account)
	if err != nil {
		return models.SessionInfo{}, err
	}
	return models.SessionInfo{
		Email:         account.Email,
		Name:          account.Name,
		UserID:        account.ID,
		AccountNumber: account.AccountNumber,
		Token:         token,
	}, nil
}
