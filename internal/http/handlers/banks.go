package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/http/respond"
	"github.com/nandaputra/banking-be/internal/models/dto"
)

// BankHandler owns the banking routes: account creation, bank login, balance
// lookups, and the deposit/withdraw/transfer operations.
type BankHandler struct {
	accounts    *bank.Accounts
	ledger      *bank.Ledger
	authService *bank.AuthService
}

// NewBankHandler constructs the handler. authService must carry the banking
// lockout policy, which is stricter than the general user one.
func NewBankHandler(accounts *bank.Accounts, ledger *bank.Ledger, authService *bank.AuthService) *BankHandler {
	return &BankHandler{accounts: accounts, ledger: ledger, authService: authService}
}

// Register attaches the banking routes. Every route except login goes
// through the bearer middleware.
func (h *BankHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /banks/login", h.handleLogin)

	guarded := func(fn http.HandlerFunc) http.Handler { return protect(fn) }
	mux.Handle("GET /banks/check", guarded(h.handleList))
	mux.Handle("POST /banks/createAcc", guarded(h.handleCreate))
	mux.Handle("GET /banks/login/{id}", guarded(h.handleDetail))
	mux.Handle("GET /banks/login/{id}/info", guarded(h.handleInfo))
	mux.Handle("PUT /banks/login/{id}/withdraw", guarded(h.handleWithdraw))
	mux.Handle("PUT /banks/login/{id}/deposit", guarded(h.handleDeposit))
	mux.Handle("POST /banks/login/{id}/transfer", guarded(h.handleTransfer))
	mux.Handle("POST /banks/login/{id}/changePassword", guarded(h.handleChangePassword))
	mux.Handle("DELETE /banks/login/{id}/delete", guarded(h.handleDelete))
	mux.Handle("PUT /banks/{id}", guarded(h.handleUpdate))
}

func (h *BankHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
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

func (h *BankHandler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", accounts)
}

func (h *BankHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password != req.PasswordConfirm {
		writeDomainError(w, bank.ErrPasswordMismatch)
		return
	}

	created, err := h.accounts.Create(r.Context(), req.Name, req.Email, req.Password, req.Nominal)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "account created", map[string]string{
		"name":  created.Name,
		"email": created.Email,
	})
}

func (h *BankHandler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.accounts.Detail(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", detail)
}

func (h *BankHandler) handleInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	info, err := h.ledger.Balance(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", info)
}

func (h *BankHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.ledger.Withdraw(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "withdraw successful", updated)
}

func (h *BankHandler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.ledger.Deposit(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "deposit successful", updated)
}

func (h *BankHandler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := h.ledger.Transfer(r.Context(), id, req.ToID, req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "transfer successful", record)
}

func (h *BankHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		writeDomainError(w, bank.ErrPasswordMismatch)
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "password changed", map[string]int64{"id": id})
}

func (h *BankHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.accounts.UpdateProfile(r.Context(), id, req.Name, req.Email); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "account updated", map[string]int64{"id": id})
}

func (h *BankHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.accounts.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "account deleted", map[string]int64{"id": id})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid account id")
		return 0, false
	}
	return id, true
}
