package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents the balance state of a single client.
type Account struct {
	ID        uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// NewAccount returns a zeroed, unlocked account for the client.
func NewAccount(id uint16) Account {
	return Account{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}

// Balanced reports whether total equals available plus held.
func (a Account) Balanced() bool {
	return a.Total.Equal(a.Available.Add(a.Held))
}

// Deposit returns the account credited by amount.
func (a Account) Deposit(amount decimal.Decimal) Account {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
	return a
}

// Withdraw returns the account debited by amount.
func (a Account) Withdraw(amount decimal.Decimal) (Account, error) {
	if a.Available.LessThan(amount) {
		return a, ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
	return a, nil
}

// Hold returns the account with amount moved from available to held.
// It fails when the funds have already left the account.
func (a Account) Hold(amount decimal.Decimal) (Account, error) {
	if a.Available.LessThan(amount) {
		return a, ErrDisputeAfterWithdrawal
	}
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
	return a, nil
}

// Release returns the account with amount moved from held back to available.
func (a Account) Release(amount decimal.Decimal) Account {
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Sub(amount)
	return a
}

// Chargeback returns the account with amount removed from held and total.
// The result is always locked.
func (a Account) Chargeback(amount decimal.Decimal) Account {
	a.Held = a.Held.Sub(amount)
	a.Total = a.Total.Sub(amount)
	a.Locked = true
	return a
}
