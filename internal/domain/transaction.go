package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TxType is the kind of a transaction record.
type TxType int

const (
	TxTypeDeposit TxType = iota
	TxTypeWithdrawal
	TxTypeDispute
	TxTypeResolve
	TxTypeChargeback
)

var txTypeNames = [...]string{
	TxTypeDeposit:    "deposit",
	TxTypeWithdrawal: "withdrawal",
	TxTypeDispute:    "dispute",
	TxTypeResolve:    "resolve",
	TxTypeChargeback: "chargeback",
}

// String returns the name used in input files.
func (t TxType) String() string {
	if t < 0 || int(t) >= len(txTypeNames) {
		return fmt.Sprintf("TxType(%d)", int(t))
	}
	return txTypeNames[t]
}

// ParseTxType parses an input type name. Surrounding whitespace and case are ignored.
func ParseTxType(s string) (TxType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range txTypeNames {
		if n == name {
			return TxType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown transaction type %q", ErrMalformedRecord, s)
}

// TxStatus tracks where a deposit is in the dispute lifecycle.
type TxStatus int

const (
	TxStatusNominal TxStatus = iota
	TxStatusDisputed
	TxStatusChargedBack
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusNominal:
		return "nominal"
	case TxStatusDisputed:
		return "disputed"
	case TxStatusChargedBack:
		return "charged_back"
	default:
		return fmt.Sprintf("TxStatus(%d)", int(s))
	}
}

// Transaction is one input record plus its dispute status.
//
// Dispute, resolve and chargeback records carry the ID of the deposit they
// target and no amount.
type Transaction struct {
	Type   TxType
	Client uint16
	ID     uint32
	Amount decimal.NullDecimal
	Status TxStatus
}

// AmountOrZero returns the record amount, or zero when the record has none.
// A deposit or withdrawal without an amount is applied as a zero-value move.
func (t Transaction) AmountOrZero() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	return t.Amount.Decimal
}
