package domain

import "github.com/shopspring/decimal"

// Account holds the balance state for a single client. Total must always
// equal Available plus Held; every mutation below preserves that.
type Account struct {
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Credit adds funds to the account.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
}

// CanDebit reports whether available funds cover amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Available.GreaterThanOrEqual(amount)
}

// Debit removes funds from the account. Callers check CanDebit first.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
}

// Freeze moves funds from available to held. Used when a deposit comes under
// dispute.
func (a *Account) Freeze(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Unfreeze moves funds from held back to available. Used when a disputed
// deposit is resolved, and when a disputed withdrawal is charged back.
func (a *Account) Unfreeze(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// CreditHeld adds funds directly to held. Used when a withdrawal comes under
// dispute: the withdrawn funds are provisionally reinstated, but frozen.
func (a *Account) CreditHeld(amount decimal.Decimal) {
	a.Held = a.Held.Add(amount)
	a.Total = a.Total.Add(amount)
}

// DebitHeld removes funds from held. Used when a disputed withdrawal is
// resolved, and when a disputed deposit is charged back.
func (a *Account) DebitHeld(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Total = a.Total.Sub(amount)
}

// AccountSnapshot is an immutable copy of an account together with its
// client ID.
type AccountSnapshot struct {
	ClientID uint16
	Account
}
