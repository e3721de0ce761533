package memory

import (
	"slices"

	"github.com/iho/ledgerbatch/internal/domain"
)

// AccountLedger keeps the current state of every client account seen in a run.
type AccountLedger struct {
	accounts map[uint16]domain.Account
}

// NewAccountLedger creates an empty AccountLedger.
func NewAccountLedger() *AccountLedger {
	return &AccountLedger{
		accounts: make(map[uint16]domain.Account),
	}
}

// GetOrCreate returns the stored account, or a zeroed one that is not stored yet.
func (l *AccountLedger) GetOrCreate(id uint16) domain.Account {
	if acc, ok := l.accounts[id]; ok {
		return acc
	}
	return domain.NewAccount(id)
}

// Apply stores the account, replacing any previous state for its client.
func (l *AccountLedger) Apply(acc domain.Account) {
	l.accounts[acc.ID] = acc
}

// Len returns the number of stored accounts.
func (l *AccountLedger) Len() int {
	return len(l.accounts)
}

// List returns all accounts ordered by client id.
func (l *AccountLedger) List() []domain.Account {
	out := make([]domain.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, acc)
	}
	slices.SortFunc(out, func(a, b domain.Account) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}
