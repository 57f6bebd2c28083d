package server

import (
	"context"
	"net/http"
	"time"

	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/config"
	"github.com/nandaputra/banking-be/internal/http/handlers"
	"github.com/nandaputra/banking-be/internal/middleware"
	"github.com/nandaputra/banking-be/internal/ratelimit"
	"github.com/nandaputra/banking-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires services, middleware, and routes, and returns a ready server.
func New(cfg config.Config, store storage.AccountStore) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Router(cfg, store),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Router builds the full HTTP handler stack over the given store. The user
// and banking login endpoints get separate limiter instances: five attempts
// with a 30-minute window for users, three attempts with a permanent block
// for banking.
func Router(cfg config.Config, store storage.AccountStore) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)

	userLimiter := ratelimit.New(ratelimit.Policy{
		MaxAttempts:   cfg.UserLoginMaxAttempts,
		LockoutWindow: cfg.UserLoginLockout,
	})
	bankLimiter := ratelimit.New(ratelimit.Policy{
		MaxAttempts: cfg.BankLoginMaxAttempts,
	})

	userAuth := bank.NewAuthService(store, hasher, userLimiter, tokens)
	bankAuth := bank.NewAuthService(store, hasher, bankLimiter, tokens)
	accounts := bank.NewAccounts(store, hasher, cfg.MinOpeningBalance)
	ledger := bank.NewLedger(store)

	protect := middleware.RequireAuth(tokens)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(userAuth).Register(mux)
	handlers.NewBankHandler(accounts, ledger, bankAuth).Register(mux, protect)
	handlers.NewUsersHandler(accounts).Register(mux, protect)

	return middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
