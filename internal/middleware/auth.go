package middleware

import (
	"net/http"
	"strings"

	"github.com/nandaputra/banking-be/internal/auth"
	"github.com/nandaputra/banking-be/internal/http/respond"
)

// RequireAuth rejects requests that do not carry a valid bearer token. Any
// authenticated account may reach any banking route; tokens are not scoped
// to the account id in the path.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(tokenString) == "" {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if _, err := tokens.Parse(strings.TrimSpace(tokenString)); err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
