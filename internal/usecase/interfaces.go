package usecase

import (
	"fmt"

	"github.com/mxb-1/transactions/internal/domain"
)

// Ledger is the engine surface the use cases drive.
type Ledger interface {
	Apply(tx *domain.Transaction) (domain.Outcome, error)
	Snapshot() []domain.AccountSnapshot
	Account(clientID uint16) (domain.Account, bool)
}

// RecordSource yields transaction records in input order. Next returns
// io.EOF once the source is drained, a *RecordError for a single malformed
// record that the source can read past, and any other error when the source
// itself failed.
type RecordSource interface {
	Next() (*domain.Transaction, error)
}

// Reporter renders an account snapshot.
type Reporter interface {
	Report(accounts []domain.AccountSnapshot) error
}

// RecordError marks a single malformed input record. The record is
// unusable, but the source is still positioned to produce the next one.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record at line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
