package domain

// RejectReason explains why a transaction was accepted but had no effect.
// These are normal outcomes of the state machine, not errors.
type RejectReason string

const (
	ReasonAccountLocked      RejectReason = "account_locked"
	ReasonInsufficientFunds  RejectReason = "insufficient_funds"
	ReasonUnknownTransaction RejectReason = "unknown_transaction"
	ReasonAlreadyDisputed    RejectReason = "already_disputed"
	ReasonNotDisputed        RejectReason = "not_disputed"
)

// Outcome reports what applying a transaction did. A rejected outcome is
// still a successful apply; it records that the input was inapplicable
// rather than malformed.
type Outcome struct {
	Applied bool
	Reason  RejectReason
}

// Accepted is the outcome of a transaction that mutated account state.
func Accepted() Outcome {
	return Outcome{Applied: true}
}

// Rejected is the outcome of a transaction that was silently dropped.
func Rejected(reason RejectReason) Outcome {
	return Outcome{Reason: reason}
}
