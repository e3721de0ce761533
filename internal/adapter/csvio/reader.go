package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbatch/internal/domain"
)

var transactionHeader = []string{"type", "client", "tx", "amount"}

// ReadTransactionsFile reads transaction records from the CSV file at path.
func ReadTransactionsFile(path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening transactions file: %w", err)
	}
	defer file.Close()

	return ReadTransactions(file)
}

// ReadTransactions parses every record of r in input order. Any malformed
// row fails the whole read.
func ReadTransactions(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrHeaderMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []domain.Transaction
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func validateHeader(header []string) error {
	if len(header) != len(transactionHeader) {
		return domain.ErrHeaderMismatch
	}
	for i, name := range header {
		if strings.ToLower(strings.TrimSpace(name)) != transactionHeader[i] {
			return domain.ErrHeaderMismatch
		}
	}
	return nil
}

// parseTransaction maps one row to a record. Rows without an amount column
// or with a blank amount produce a record whose amount is absent.
func parseTransaction(row []string) (domain.Transaction, error) {
	if len(row) < 3 || len(row) > 4 {
		return domain.Transaction{}, fmt.Errorf("%w: expected 3 or 4 fields, got %d", domain.ErrMalformedRecord, len(row))
	}

	txType, err := domain.ParseTxType(row[0])
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid client %q", domain.ErrMalformedRecord, row[1])
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid tx %q", domain.ErrMalformedRecord, row[2])
	}

	rec := domain.Transaction{
		Type:   txType,
		Client: uint16(client),
		ID:     uint32(txID),
	}

	if len(row) == 4 {
		if raw := strings.TrimSpace(row[3]); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return domain.Transaction{}, fmt.Errorf("%w: invalid amount %q", domain.ErrMalformedRecord, row[3])
			}
			rec.Amount = decimal.NewNullDecimal(amount)
		}
	}

	return rec, nil
}
