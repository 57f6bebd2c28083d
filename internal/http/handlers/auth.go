package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/http/respond"
	"github.com/nandaputra/banking-be/internal/models/dto"
)

// AuthHandler owns the general user login endpoint.
type AuthHandler struct {
	authService *bank.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *bank.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register attaches the login route to the mux. Login is deliberately left
// outside the bearer middleware.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /authentication/login/users", h.handleLogin)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authService.Authenticate(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", session)
}
