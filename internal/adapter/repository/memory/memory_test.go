package memory

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerbatch/internal/domain"
)

func TestAccountLedger_GetOrCreateDoesNotInsert(t *testing.T) {
	ledger := NewAccountLedger()

	acc := ledger.GetOrCreate(9)

	assert.Equal(t, uint16(9), acc.ID)
	assert.True(t, acc.Available.IsZero())
	assert.False(t, acc.Locked)
	assert.Equal(t, 0, ledger.Len())
}

func TestAccountLedger_ApplyReplaces(t *testing.T) {
	ledger := NewAccountLedger()

	ledger.Apply(ledger.GetOrCreate(1).Deposit(decimal.NewFromInt(5)))
	ledger.Apply(ledger.GetOrCreate(1).Deposit(decimal.NewFromInt(2)))

	require.Equal(t, 1, ledger.Len())
	assert.True(t, ledger.GetOrCreate(1).Total.Equal(decimal.NewFromInt(7)))
}

func TestAccountLedger_ListSortedByClient(t *testing.T) {
	ledger := NewAccountLedger()
	for _, id := range []uint16{65535, 3, 0, 200, 1} {
		ledger.Apply(domain.NewAccount(id))
	}

	accounts := ledger.List()

	ids := make([]uint16, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID)
	}
	assert.Equal(t, []uint16{0, 1, 3, 200, 65535}, ids)
}

func TestTransactionLog_PreservesOrder(t *testing.T) {
	log := NewTransactionLog()
	log.AppendInOrder(
		domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 5},
		domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 5},
	)
	log.AppendInOrder(domain.Transaction{Type: domain.TxTypeWithdrawal, Client: 2, ID: 1})

	require.Equal(t, 3, log.Len())
	assert.Equal(t, uint32(5), log.At(0).ID)
	assert.Equal(t, uint32(5), log.At(1).ID)
	assert.Equal(t, domain.TxTypeWithdrawal, log.At(2).Type)
}

func TestTransactionLog_FindDeposit(t *testing.T) {
	log := NewTransactionLog()
	log.AppendInOrder(
		domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 10},
		domain.Transaction{Type: domain.TxTypeWithdrawal, Client: 1, ID: 11},
	)

	_, ok := log.FindDeposit(10)
	assert.False(t, ok, "deposit must not be found before it is indexed")

	log.IndexDeposit(10, 0)

	dep, ok := log.FindDeposit(10)
	require.True(t, ok)
	assert.Equal(t, uint32(10), dep.ID)

	_, ok = log.FindDeposit(11)
	assert.False(t, ok, "withdrawals are never indexed")
}

func TestTransactionLog_FindDepositMutatesOwnedRecord(t *testing.T) {
	log := NewTransactionLog()
	log.AppendInOrder(domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 1})
	log.IndexDeposit(1, 0)

	dep, ok := log.FindDeposit(1)
	require.True(t, ok)
	dep.Status = domain.TxStatusDisputed

	assert.Equal(t, domain.TxStatusDisputed, log.At(0).Status)
}

func TestTransactionLog_ReindexPointsToLaterDeposit(t *testing.T) {
	log := NewTransactionLog()
	log.AppendInOrder(
		domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 1, Amount: decimal.NewNullDecimal(decimal.NewFromInt(1))},
		domain.Transaction{Type: domain.TxTypeDeposit, Client: 1, ID: 1, Amount: decimal.NewNullDecimal(decimal.NewFromInt(2))},
	)
	log.IndexDeposit(1, 0)
	log.IndexDeposit(1, 1)

	dep, ok := log.FindDeposit(1)
	require.True(t, ok)
	assert.True(t, dep.AmountOrZero().Equal(decimal.NewFromInt(2)))
}

func TestULIDGenerator_Generate(t *testing.T) {
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	gen := &ULIDGenerator{now: func() time.Time { return stamp }}

	first := gen.Generate()
	second := gen.Generate()

	assert.NotEqual(t, first, second)

	id, err := ulid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(stamp), id.Time())
}
