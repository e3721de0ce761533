package memory

import (
	"github.com/iho/ledgerbatch/internal/domain"
)

// TransactionLog owns the ordered transaction records of a run and an index
// from deposit id to record position.
type TransactionLog struct {
	records  []domain.Transaction
	deposits map[uint32]int
}

// NewTransactionLog creates an empty TransactionLog.
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{
		deposits: make(map[uint32]int),
	}
}

// AppendInOrder adds records after the existing ones, keeping their order.
func (l *TransactionLog) AppendInOrder(records ...domain.Transaction) {
	l.records = append(l.records, records...)
}

// Len returns the number of records.
func (l *TransactionLog) Len() int {
	return len(l.records)
}

// At returns a copy of the record at pos.
func (l *TransactionLog) At(pos int) domain.Transaction {
	return l.records[pos]
}

// IndexDeposit makes the deposit at pos reachable by its transaction id.
// A later deposit with the same id replaces the earlier entry.
func (l *TransactionLog) IndexDeposit(txID uint32, pos int) {
	l.deposits[txID] = pos
}

// FindDeposit returns the indexed deposit for txID. The pointer refers to the
// record owned by the log and stays valid until the next AppendInOrder.
func (l *TransactionLog) FindDeposit(txID uint32) (*domain.Transaction, bool) {
	pos, ok := l.deposits[txID]
	if !ok {
		return nil, false
	}
	return &l.records[pos], true
}
