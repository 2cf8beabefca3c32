package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mxb-1/transactions/internal/adapter/http/dto"
	"github.com/mxb-1/transactions/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	ListAccounts(ctx context.Context) []domain.AccountSnapshot
	GetAccount(ctx context.Context, clientID uint16) (domain.AccountSnapshot, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	ledgerUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC AccountService) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC}
}

// List returns the full account snapshot.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots := h.ledgerUC.ListAccounts(r.Context())

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromSnapshots(snapshots),
		Total:    int64(len(snapshots)),
	})
}

// Get retrieves a single account by client ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	clientID, err := strconv.ParseUint(id, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", id)
		return
	}

	snapshot, err := h.ledgerUC.GetAccount(r.Context(), uint16(clientID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(snapshot))
}
