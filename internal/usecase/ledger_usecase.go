package usecase

import (
	"context"
	"sync"

	"github.com/mxb-1/transactions/internal/domain"
	"github.com/mxb-1/transactions/internal/infrastructure/metrics"
)

// LedgerUseCase exposes the engine to the HTTP adapter. The engine itself is
// single-threaded, so every call is serialized behind a mutex.
type LedgerUseCase struct {
	mu      sync.Mutex
	ledger  Ledger
	metrics *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. Metrics may be nil.
func NewLedgerUseCase(ledger Ledger, m *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{
		ledger:  ledger,
		metrics: m,
	}
}

// SubmitTransactionInput represents one transaction record as submitted
// over the API, amount still in wire form.
type SubmitTransactionInput struct {
	Kind     string
	ClientID uint16
	TxID     uint32
	Amount   string
}

// SubmitTransaction validates and applies a single transaction.
func (uc *LedgerUseCase) SubmitTransaction(ctx context.Context, input SubmitTransactionInput) (domain.Outcome, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return domain.Outcome{}, err
	}

	tx, err := domain.NewTransaction(kind, input.ClientID, input.TxID, input.Amount)
	if err != nil {
		return domain.Outcome{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	outcome, err := uc.ledger.Apply(tx)
	if err != nil {
		return domain.Outcome{}, err
	}

	if uc.metrics != nil {
		if outcome.Applied {
			uc.metrics.TransactionsApplied.WithLabelValues(string(tx.Kind)).Inc()
		} else {
			uc.metrics.TransactionsRejected.WithLabelValues(string(tx.Kind), string(outcome.Reason)).Inc()
		}
	}

	return outcome, nil
}

// ListAccounts returns a point-in-time snapshot of every known account.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context) []domain.AccountSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.Snapshot()
}

// GetAccount returns the account for a single client.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, clientID uint16) (domain.AccountSnapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.ledger.Account(clientID)
	if !ok {
		return domain.AccountSnapshot{}, domain.ErrAccountNotFound
	}

	return domain.AccountSnapshot{ClientID: clientID, Account: account}, nil
}
