package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/ledgerbatch/internal/domain"
)

// AmountPlaces is the number of fractional digits written for every amount.
const AmountPlaces = 4

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts writes the accounts as CSV in the order given.
// Amounts are rounded half away from zero to AmountPlaces digits.
func WriteAccounts(w io.Writer, accounts []domain.Account) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(accountHeader); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.ID), 10),
			acc.Available.StringFixed(AmountPlaces),
			acc.Held.StringFixed(AmountPlaces),
			acc.Total.StringFixed(AmountPlaces),
			strconv.FormatBool(acc.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing account %d: %w", acc.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
