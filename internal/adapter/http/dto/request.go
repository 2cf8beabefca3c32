package dto

import (
	"github.com/mxb-1/transactions/internal/usecase"
)

// SubmitTransactionRequest represents a request to apply one transaction
// record. Amount stays a string on the wire so the engine controls decimal
// parsing.
type SubmitTransactionRequest struct {
	Type     string `json:"type"`
	ClientID uint16 `json:"client"`
	TxID     uint32 `json:"tx"`
	Amount   string `json:"amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SubmitTransactionRequest) ToUseCaseInput() usecase.SubmitTransactionInput {
	return usecase.SubmitTransactionInput{
		Kind:     r.Type,
		ClientID: r.ClientID,
		TxID:     r.TxID,
		Amount:   r.Amount,
	}
}
