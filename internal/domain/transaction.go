package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a transaction record.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// ParseKind parses a transaction kind from its wire tag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// HasAmount reports whether records of this kind carry an amount of their own.
// Dispute, resolve and chargeback reference a prior transaction's amount
// instead.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is a single input event. Deposits and withdrawals carry their
// own transaction ID and amount; the other three kinds reference a prior
// deposit or withdrawal by TxID and never carry an amount.
type Transaction struct {
	Kind     Kind
	ClientID uint16
	TxID     uint32
	amount   decimal.Decimal
	hasAmt   bool
}

// NewTransaction builds a validated transaction. The amount string is
// required and must parse as a decimal for deposits and withdrawals; it is
// ignored for the referencing kinds.
func NewTransaction(kind Kind, clientID uint16, txID uint32, amount string) (*Transaction, error) {
	tx := &Transaction{
		Kind:     kind,
		ClientID: clientID,
		TxID:     txID,
	}

	if !kind.HasAmount() {
		return tx, nil
	}

	if amount == "" {
		return nil, fmt.Errorf("%s tx %d: %w", kind, txID, ErrMissingAmount)
	}

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%s tx %d: %w: %q", kind, txID, ErrInvalidAmount, amount)
	}

	tx.amount = amt
	tx.hasAmt = true

	return tx, nil
}

// Amount returns the transaction amount, or ErrMissingAmount when the
// transaction does not carry one.
func (t *Transaction) Amount() (decimal.Decimal, error) {
	if !t.hasAmt {
		return decimal.Decimal{}, fmt.Errorf("%s tx %d: %w", t.Kind, t.TxID, ErrMissingAmount)
	}
	return t.amount, nil
}
