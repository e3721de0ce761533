package usecase

import (
	"github.com/iho/ledgerbatch/internal/domain"
)

// AccountLedger stores client accounts for the duration of a run.
type AccountLedger interface {
	// GetOrCreate returns the stored account or a zeroed one that is not stored yet.
	GetOrCreate(id uint16) domain.Account
	// Apply stores the account, replacing any previous state for its client.
	Apply(acc domain.Account)
	// List returns all accounts ordered by client id.
	List() []domain.Account
}

// TransactionLog holds the ordered records of a run.
type TransactionLog interface {
	Len() int
	At(pos int) domain.Transaction
	IndexDeposit(txID uint32, pos int)
	FindDeposit(txID uint32) (*domain.Transaction, bool)
}

// Recorder observes the outcome of each processed record.
type Recorder interface {
	RecordApplied(txType domain.TxType)
	RecordFailed(txType domain.TxType, err error)
	RecordLocked()
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
