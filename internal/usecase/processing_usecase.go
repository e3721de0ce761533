package usecase

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerbatch/internal/domain"
)

// ProcessingUseCase applies the transaction log to the account ledger in order.
type ProcessingUseCase struct {
	accounts AccountLedger
	txLog    TransactionLog
	recorder Recorder
	idGen    IDGenerator
	logger   zerolog.Logger
	cursor   int
}

// NewProcessingUseCase creates a new ProcessingUseCase. recorder may be nil.
func NewProcessingUseCase(
	accounts AccountLedger,
	txLog TransactionLog,
	recorder Recorder,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ProcessingUseCase {
	return &ProcessingUseCase{
		accounts: accounts,
		txLog:    txLog,
		recorder: recorder,
		idGen:    idGen,
		logger:   logger,
	}
}

// RunBatch processes every record from the current cursor to the end of the
// log and returns how many were applied and how many were rejected.
// Records appended later are picked up by the next call.
func (uc *ProcessingUseCase) RunBatch() (succeeded, failed int) {
	logger := uc.logger.With().Str("batch_id", uc.idGen.Generate()).Logger()
	start := uc.cursor

	for ; uc.cursor < uc.txLog.Len(); uc.cursor++ {
		rec := uc.txLog.At(uc.cursor)

		if err := uc.process(uc.cursor, rec); err != nil {
			failed++
			logger.Warn().
				Int("record", uc.cursor).
				Stringer("type", rec.Type).
				Uint16("client", rec.Client).
				Uint32("tx", rec.ID).
				Str("reason", domain.FailureReason(err)).
				Err(err).
				Msg("transaction rejected")
			if uc.recorder != nil {
				uc.recorder.RecordFailed(rec.Type, err)
			}
			continue
		}

		succeeded++
		if uc.recorder != nil {
			uc.recorder.RecordApplied(rec.Type)
		}
	}

	logger.Debug().
		Int("from", start).
		Int("to", uc.cursor).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch processed")

	return succeeded, failed
}

// Accounts returns the current account states ordered by client id.
func (uc *ProcessingUseCase) Accounts() []domain.Account {
	return uc.accounts.List()
}

// process applies the record at pos. A rejected record leaves balances and
// dispute statuses untouched.
func (uc *ProcessingUseCase) process(pos int, rec domain.Transaction) error {
	acc := uc.accounts.GetOrCreate(rec.Client)

	next, err := uc.transition(pos, acc, rec)
	if err != nil {
		// The client is known from here on even though nothing was applied.
		uc.accounts.Apply(acc)
		return err
	}

	uc.accounts.Apply(next)
	return nil
}

func (uc *ProcessingUseCase) transition(pos int, acc domain.Account, rec domain.Transaction) (domain.Account, error) {
	switch rec.Type {
	case domain.TxTypeDeposit:
		uc.txLog.IndexDeposit(rec.ID, pos)
		return acc.Deposit(rec.AmountOrZero()), nil

	case domain.TxTypeWithdrawal:
		return acc.Withdraw(rec.AmountOrZero())

	case domain.TxTypeDispute:
		dep, ok := uc.txLog.FindDeposit(rec.ID)
		if !ok {
			return acc, domain.ErrTransactionNotFound
		}
		if dep.Status != domain.TxStatusNominal {
			return acc, domain.ErrInvalidDispute
		}
		next, err := acc.Hold(dep.AmountOrZero())
		if err != nil {
			return acc, err
		}
		dep.Status = domain.TxStatusDisputed
		return next, nil

	case domain.TxTypeResolve:
		dep, ok := uc.txLog.FindDeposit(rec.ID)
		if !ok {
			return acc, domain.ErrTransactionNotFound
		}
		if dep.Status != domain.TxStatusDisputed {
			return acc, domain.ErrInvalidResolve
		}
		dep.Status = domain.TxStatusNominal
		return acc.Release(dep.AmountOrZero()), nil

	case domain.TxTypeChargeback:
		dep, ok := uc.txLog.FindDeposit(rec.ID)
		if !ok {
			return acc, domain.ErrTransactionNotFound
		}
		if dep.Status != domain.TxStatusDisputed {
			return acc, domain.ErrInvalidChargeback
		}
		dep.Status = domain.TxStatusChargedBack
		if uc.recorder != nil && !acc.Locked {
			uc.recorder.RecordLocked()
		}
		return acc.Chargeback(dep.AmountOrZero()), nil

	default:
		return acc, fmt.Errorf("%w: unsupported transaction type %v", domain.ErrMalformedRecord, rec.Type)
	}
}
