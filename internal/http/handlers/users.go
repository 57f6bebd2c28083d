package handlers

import (
	"net/http"
	"strconv"

	"github.com/nandaputra/banking-be/internal/bank"
	"github.com/nandaputra/banking-be/internal/http/respond"
)

// UsersHandler serves the paginated user listing.
type UsersHandler struct {
	accounts *bank.Accounts
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(accounts *bank.Accounts) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Register attaches the listing route behind the bearer middleware.
func (h *UsersHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("GET /users", protect(http.HandlerFunc(h.handleList)))
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, err := h.accounts.Page(r.Context(), bank.PageQuery{
		PageNumber: intQuery(query.Get("page_number")),
		PageSize:   intQuery(query.Get("page_size")),
		Search:     query.Get("search"),
		Sort:       query.Get("sort"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", page)
}

func intQuery(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
