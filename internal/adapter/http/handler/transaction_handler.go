package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mxb-1/transactions/internal/adapter/http/dto"
	"github.com/mxb-1/transactions/internal/domain"
	"github.com/mxb-1/transactions/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	SubmitTransaction(ctx context.Context, input usecase.SubmitTransactionInput) (domain.Outcome, error)
}

// TransactionHandler handles transaction-submission HTTP requests.
type TransactionHandler struct {
	ledgerUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC TransactionService) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC}
}

// Submit applies a single transaction record. A rejected outcome is still a
// 202: the record was accepted and deliberately dropped by the state
// machine.
func (h *TransactionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outcome, err := h.ledgerUC.SubmitTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusAccepted, dto.OutcomeFromDomain(outcome))
}
