package usecase

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbatch/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when an account's total differs from available plus held.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: total does not equal available plus held")
)

// ReconciliationUseCase checks the balance identity of every account after a run.
type ReconciliationUseCase struct {
	accounts AccountLedger
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(accounts AccountLedger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accounts: accounts,
	}
}

// ReconciliationReport summarizes the ledger at the end of a run.
type ReconciliationReport struct {
	TotalAccounts  int
	LockedAccounts int
	Available      decimal.Decimal
	Held           decimal.Decimal
	Total          decimal.Decimal
	Discrepancies  []domain.Account
}

// Consistent reports whether no account broke the balance identity.
func (r ReconciliationReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// GenerateReport sums all accounts and collects the unbalanced ones.
func (uc *ReconciliationUseCase) GenerateReport() ReconciliationReport {
	report := ReconciliationReport{
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}

	for _, acc := range uc.accounts.List() {
		report.TotalAccounts++
		if acc.Locked {
			report.LockedAccounts++
		}
		report.Available = report.Available.Add(acc.Available)
		report.Held = report.Held.Add(acc.Held)
		report.Total = report.Total.Add(acc.Total)

		if !acc.Balanced() {
			report.Discrepancies = append(report.Discrepancies, acc)
		}
	}

	return report
}

// CheckConsistency returns ErrInconsistentLedger naming the first unbalanced account.
func (uc *ReconciliationUseCase) CheckConsistency() error {
	report := uc.GenerateReport()
	if report.Consistent() {
		return nil
	}

	acc := report.Discrepancies[0]
	return fmt.Errorf(
		"%w: client=%d available=%s held=%s total=%s (%d accounts affected)",
		ErrInconsistentLedger,
		acc.ID,
		acc.Available.String(),
		acc.Held.String(),
		acc.Total.String(),
		len(report.Discrepancies),
	)
}
