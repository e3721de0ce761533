package domain

import "errors"

var (
	// Parse errors abort a run before any record is applied.
	ErrHeaderMismatch  = errors.New("header must be [type, client, tx, amount]")
	ErrMalformedRecord = errors.New("malformed transaction record")

	// Process errors reject a single record; the batch continues.
	ErrInsufficientFunds      = errors.New("insufficient funds for withdrawal")
	ErrTransactionNotFound    = errors.New("transaction not found for dispute/resolve/chargeback")
	ErrInvalidDispute         = errors.New("dispute must target an undisputed deposit")
	ErrInvalidResolve         = errors.New("resolve must target a deposit that has been disputed")
	ErrInvalidChargeback      = errors.New("chargeback must target a deposit that has been disputed")
	ErrDisputeAfterWithdrawal = errors.New("funds already withdrawn cannot be disputed")
)

var failureReasons = []struct {
	err    error
	reason string
}{
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrTransactionNotFound, "transaction_not_found"},
	{ErrInvalidDispute, "invalid_dispute"},
	{ErrInvalidResolve, "invalid_resolve"},
	{ErrInvalidChargeback, "invalid_chargeback"},
	{ErrDisputeAfterWithdrawal, "dispute_after_withdrawal"},
}

// FailureReason returns a stable code for a process error, or "unknown".
func FailureReason(err error) string {
	for _, fr := range failureReasons {
		if errors.Is(err, fr.err) {
			return fr.reason
		}
	}
	return "unknown"
}
