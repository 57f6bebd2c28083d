package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/http/respond"
	"github.com/nandaputra/banking-be/internal/ratelimit"
)

// writeDomainError maps service failures to HTTP statuses. Lockout and
// credential failures keep their human-readable messages; everything
// unexpected is logged and hidden behind a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var lockedErr *ratelimit.LockedError
	switch {
	case errors.As(err, &lockedErr):
		respond.Error(w, http.StatusForbidden, lockedErr.Error())
	case errors.Is(err, bank.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, bank.ErrAccountNotFound):
		respond.Error(w, http.StatusNotFound, bank.ErrAccountNotFound.Error())
	case errors.Is(err, bank.ErrInsufficientFunds):
		respond.Error(w, http.StatusConflict, bank.ErrInsufficientFunds.Error())
	case errors.Is(err, bank.ErrSameAccount):
		respond.Error(w, http.StatusBadRequest, bank.ErrSameAccount.Error())
	case errors.Is(err, bank.ErrEmailTaken):
		respond.Error(w, http.StatusConflict, bank.ErrEmailTaken.Error())
	case errors.Is(err, bank.ErrPasswordMismatch):
		respond.Error(w, http.StatusBadRequest, bank.ErrPasswordMismatch.Error())
	case errors.Is(err, bank.ErrMinimumDeposit):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, bank.ErrStoreUnavailable):
		log.Printf("store unavailable: %v", err)
		respond.Error(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		log.Printf("unexpected error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
