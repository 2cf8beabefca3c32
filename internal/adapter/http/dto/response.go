package dto

import (
	"github.com/mxb-1/transactions/internal/domain"
)

// AccountResponse represents an account in API responses. Balances are
// rendered as fixed four-decimal strings, matching the CSV report.
type AccountResponse struct {
	ClientID  uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromSnapshot converts an account snapshot to a response.
func AccountFromSnapshot(s domain.AccountSnapshot) *AccountResponse {
	return &AccountResponse{
		ClientID:  s.ClientID,
		Available: s.Available.StringFixed(4),
		Held:      s.Held.StringFixed(4),
		Total:     s.Total.StringFixed(4),
		Locked:    s.Locked,
	}
}

// AccountsFromSnapshots converts account snapshots to responses.
func AccountsFromSnapshots(snapshots []domain.AccountSnapshot) []*AccountResponse {
	result := make([]*AccountResponse, len(snapshots))
	for i, s := range snapshots {
		result[i] = AccountFromSnapshot(s)
	}
	return result
}

// ListAccountsResponse wraps the account snapshot.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// OutcomeResponse reports what the engine did with a submitted transaction.
type OutcomeResponse struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

// OutcomeFromDomain converts a domain outcome to a response.
func OutcomeFromDomain(o domain.Outcome) *OutcomeResponse {
	return &OutcomeResponse{
		Applied: o.Applied,
		Reason:  string(o.Reason),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
