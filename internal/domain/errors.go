package domain

import "errors"

var (
	// Transaction errors
	ErrUnknownKind   = errors.New("unknown transaction type")
	ErrMissingAmount = errors.New("transaction amount is required")
	ErrInvalidAmount = errors.New("transaction amount is not a valid decimal")

	// Engine errors
	ErrInvalidReference = errors.New("referenced transaction is not a deposit or withdrawal")
	ErrAccountNotFound  = errors.New("account not found")
)
