// Package engine implements the transaction-replay state machine. It applies
// deposit, withdrawal, dispute, resolve and chargeback records in input order
// and maintains per-client account balances.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mxb-1/transactions/internal/domain"
)

// Engine replays a sequential transaction stream into account state. It is
// not safe for concurrent use; callers that share an Engine across
// goroutines must serialize access themselves.
type Engine struct {
	// accounts indexes every account seen so far by client ID.
	accounts map[uint16]*domain.Account
	// retained holds every applied deposit and withdrawal by transaction
	// ID, so later disputes can reference them. Referencing kinds are
	// never stored.
	retained map[uint32]*domain.Transaction
	// disputed is the set of transaction IDs currently under dispute.
	disputed map[uint32]struct{}
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{
		accounts: make(map[uint16]*domain.Account),
		retained: make(map[uint32]*domain.Transaction),
		disputed: make(map[uint32]struct{}),
	}
}

// Apply processes a single transaction, creating the client's account on
// first sight. It returns an error only for malformed amounts and for the
// invariant violation of a retained transaction that is neither a deposit
// nor a withdrawal; every other inapplicable input is reported as a
// rejected outcome with no state change. An Apply either fully commits or
// changes nothing.
func (e *Engine) Apply(tx *domain.Transaction) (domain.Outcome, error) {
	account := e.accounts[tx.ClientID]
	if account == nil {
		account = &domain.Account{}
		e.accounts[tx.ClientID] = account
	}

	// Locked accounts silently reject everything, including disputes
	// against their earlier transactions.
	if account.Locked {
		return domain.Rejected(domain.ReasonAccountLocked), nil
	}

	switch tx.Kind {
	case domain.KindDeposit:
		return e.applyDeposit(account, tx)
	case domain.KindWithdrawal:
		return e.applyWithdrawal(account, tx)
	case domain.KindDispute:
		return e.applyDispute(account, tx.TxID)
	case domain.KindResolve:
		return e.applyResolve(account, tx.TxID)
	case domain.KindChargeback:
		return e.applyChargeback(account, tx.TxID)
	default:
		return domain.Outcome{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, tx.Kind)
	}
}

func (e *Engine) applyDeposit(account *domain.Account, tx *domain.Transaction) (domain.Outcome, error) {
	amount, err := tx.Amount()
	if err != nil {
		return domain.Outcome{}, err
	}

	account.Credit(amount)
	e.retained[tx.TxID] = tx

	return domain.Accepted(), nil
}

func (e *Engine) applyWithdrawal(account *domain.Account, tx *domain.Transaction) (domain.Outcome, error) {
	amount, err := tx.Amount()
	if err != nil {
		return domain.Outcome{}, err
	}

	// Insufficient funds drops the withdrawal without retaining it, so it
	// can never be disputed later.
	if !account.CanDebit(amount) {
		return domain.Rejected(domain.ReasonInsufficientFunds), nil
	}

	account.Debit(amount)
	e.retained[tx.TxID] = tx

	return domain.Accepted(), nil
}

func (e *Engine) applyDispute(account *domain.Account, txID uint32) (domain.Outcome, error) {
	disputed, ok := e.retained[txID]
	if !ok {
		return domain.Rejected(domain.ReasonUnknownTransaction), nil
	}

	// Re-disputing would double-apply the available/held shift, so an
	// already-disputed transaction is dropped.
	if _, open := e.disputed[txID]; open {
		return domain.Rejected(domain.ReasonAlreadyDisputed), nil
	}

	amount, err := e.retainedAmount(disputed)
	if err != nil {
		return domain.Outcome{}, err
	}

	switch disputed.Kind {
	case domain.KindDeposit:
		account.Freeze(amount)
	case domain.KindWithdrawal:
		account.CreditHeld(amount)
	default:
		return domain.Outcome{}, fmt.Errorf("dispute of tx %d: %w", txID, domain.ErrInvalidReference)
	}

	e.disputed[txID] = struct{}{}

	return domain.Accepted(), nil
}

func (e *Engine) applyResolve(account *domain.Account, txID uint32) (domain.Outcome, error) {
	disputed, ok := e.retained[txID]
	if !ok {
		return domain.Rejected(domain.ReasonUnknownTransaction), nil
	}

	if _, open := e.disputed[txID]; !open {
		return domain.Rejected(domain.ReasonNotDisputed), nil
	}

	amount, err := e.retainedAmount(disputed)
	if err != nil {
		return domain.Outcome{}, err
	}

	switch disputed.Kind {
	case domain.KindDeposit:
		account.Unfreeze(amount)
	case domain.KindWithdrawal:
		account.DebitHeld(amount)
	default:
		return domain.Outcome{}, fmt.Errorf("resolve of tx %d: %w", txID, domain.ErrInvalidReference)
	}

	delete(e.disputed, txID)

	return domain.Accepted(), nil
}

func (e *Engine) applyChargeback(account *domain.Account, txID uint32) (domain.Outcome, error) {
	disputed, ok := e.retained[txID]
	if !ok {
		return domain.Rejected(domain.ReasonUnknownTransaction), nil
	}

	if _, open := e.disputed[txID]; !open {
		return domain.Rejected(domain.ReasonNotDisputed), nil
	}

	amount, err := e.retainedAmount(disputed)
	if err != nil {
		return domain.Outcome{}, err
	}

	switch disputed.Kind {
	case domain.KindDeposit:
		account.DebitHeld(amount)
	case domain.KindWithdrawal:
		account.Unfreeze(amount)
	default:
		return domain.Outcome{}, fmt.Errorf("chargeback of tx %d: %w", txID, domain.ErrInvalidReference)
	}

	delete(e.disputed, txID)

	// A chargeback is the only transition that freezes an account, and it
	// always does, whichever kind it reversed.
	account.Locked = true

	return domain.Accepted(), nil
}

// retainedAmount reads the amount of a retained transaction. Retained
// transactions are always constructed with an amount, so a failure here is
// an internal invariant violation.
func (e *Engine) retainedAmount(tx *domain.Transaction) (decimal.Decimal, error) {
	amount, err := tx.Amount()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("retained transaction: %w", err)
	}
	return amount, nil
}

// Account returns a copy of the account for clientID, if one exists.
func (e *Engine) Account(clientID uint16) (domain.Account, bool) {
	account, ok := e.accounts[clientID]
	if !ok {
		return domain.Account{}, false
	}
	return *account, true
}

// Snapshot returns a point-in-time copy of every account currently known,
// in no particular order.
func (e *Engine) Snapshot() []domain.AccountSnapshot {
	snapshots := make([]domain.AccountSnapshot, 0, len(e.accounts))
	for clientID, account := range e.accounts {
		snapshots = append(snapshots, domain.AccountSnapshot{
			ClientID: clientID,
			Account:  *account,
		})
	}
	return snapshots
}
