package csvio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerbatch/internal/domain"
)

func TestReadTransactions(t *testing.T) {
	input := "type, client, tx, amount\n" +
		"deposit, 1, 1, 1.0\n" +
		"withdrawal, 1, 2, 0.5\n" +
		"dispute, 1, 1,\n" +
		"resolve, 1, 1\n" +
		"chargeback,2,3,\n"

	records, err := ReadTransactions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, domain.TxTypeDeposit, records[0].Type)
	assert.Equal(t, uint16(1), records[0].Client)
	assert.Equal(t, uint32(1), records[0].ID)
	require.True(t, records[0].Amount.Valid)
	assert.True(t, records[0].Amount.Decimal.Equal(decimal.RequireFromString("1.0")))

	assert.Equal(t, domain.TxTypeWithdrawal, records[1].Type)
	assert.True(t, records[1].AmountOrZero().Equal(decimal.RequireFromString("0.5")))

	assert.Equal(t, domain.TxTypeDispute, records[2].Type)
	assert.False(t, records[2].Amount.Valid)

	assert.Equal(t, domain.TxTypeResolve, records[3].Type)
	assert.False(t, records[3].Amount.Valid)

	assert.Equal(t, domain.TxTypeChargeback, records[4].Type)
	assert.Equal(t, uint16(2), records[4].Client)
	assert.Equal(t, uint32(3), records[4].ID)

	for _, rec := range records {
		assert.Equal(t, domain.TxStatusNominal, rec.Status)
	}
}

func TestReadTransactions_HeaderIsCaseInsensitive(t *testing.T) {
	records, err := ReadTransactions(strings.NewReader("  TYPE ,Client,  Tx,AMOUNT  \ndeposit,1,1,2\n"))

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReadTransactions_HeaderOnly(t *testing.T) {
	records, err := ReadTransactions(strings.NewReader("type,client,tx,amount\n"))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadTransactions_HeaderMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"wrong names", "kind,client,tx,amount\ndeposit,1,1,1\n"},
		{"wrong order", "client,type,tx,amount\n"},
		{"missing column", "type,client,tx\n"},
		{"extra column", "type,client,tx,amount,note\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTransactions(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrHeaderMismatch)
		})
	}
}

func TestReadTransactions_MalformedRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"unknown type", "transfer,1,1,1.0"},
		{"client not a number", "deposit,abc,1,1.0"},
		{"client out of range", "deposit,65536,1,1.0"},
		{"negative client", "deposit,-1,1,1.0"},
		{"tx out of range", "deposit,1,4294967296,1.0"},
		{"bad amount", "deposit,1,1,one"},
		{"too few fields", "deposit,1"},
		{"too many fields", "deposit,1,1,1.0,extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "type,client,tx,amount\ndeposit,1,1,1.0\n" + tt.row + "\n"

			records, err := ReadTransactions(strings.NewReader(input))

			assert.Nil(t, records)
			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			assert.Contains(t, err.Error(), "line 3")
		})
	}
}

func TestReadTransactions_BoundaryIDs(t *testing.T) {
	records, err := ReadTransactions(strings.NewReader("type,client,tx,amount\ndeposit,65535,4294967295,0.0001\n"))

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uint16(65535), records[0].Client)
	assert.Equal(t, uint32(4294967295), records[0].ID)
}

func TestReadTransactionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte("type,client,tx,amount\ndeposit,1,1,1.5\n"), 0o600))

	records, err := ReadTransactionsFile(path)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReadTransactionsFile_Missing(t *testing.T) {
	_, err := ReadTransactionsFile(filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteAccounts(t *testing.T) {
	accounts := []domain.Account{
		{
			ID:        1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.5"),
		},
		{
			ID:        2,
			Available: decimal.RequireFromString("0.00005"),
			Held:      decimal.RequireFromString("2.12344"),
			Total:     decimal.RequireFromString("-0.00005"),
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))

	want := "client,available,held,total,locked\n" +
		"1,1.5000,0.0000,1.5000,false\n" +
		"2,0.0001,2.1234,-0.0001,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteAccounts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, nil))

	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
