// Package transaction implements the balance transaction engine: it validates,
// applies and records every debit ("use") and reversal ("cancel") attempt.
// All balance mutations run inside the per-account lock scope and inside one
// database transaction, so for a fixed account the ledger observes a total
// order and the balance can never be corrupted by a race.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/amirasaad/balancebook/pkg/domain/transaction"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/lock"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
)

// UseBalanceRequest asks the engine to debit an account.
type UseBalanceRequest struct {
	UserID        uuid.UUID
	AccountNumber string
	Amount        int64
}

// LockKey implements lock.Lockable; debits are serialized per account number.
func (r UseBalanceRequest) LockKey() string { return r.AccountNumber }

// CancelBalanceRequest asks the engine to reverse an earlier debit in full.
type CancelBalanceRequest struct {
	TransactionID string
	AccountNumber string
	Amount        int64
}

// LockKey implements lock.Lockable.
func (r CancelBalanceRequest) LockKey() string { return r.AccountNumber }

// recordFailedRequest is the internal lockable for the failure-recording paths.
type recordFailedRequest struct {
	accountNumber string
}

func (r recordFailedRequest) LockKey() string { return r.accountNumber }

// Service orchestrates validation, lock acquisition, account mutation and
// ledger recording.
type Service struct {
	guard  *lock.Guard
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a transaction Service.
func New(guard *lock.Guard, uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		guard:  guard,
		uow:    uow,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the engine clock. Used by tests to age transactions.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// UseBalance debits req.Amount from the account identified by
// req.AccountNumber on behalf of req.UserID and appends a successful USE entry
// to the ledger. On a validation failure nothing is written; the caller audits
// such attempts via RecordFailedUse.
func (s *Service) UseBalance(ctx context.Context, req UseBalanceRequest) (*dto.TransactionRead, error) {
	log := s.logger.With("context", "UseBalance", "accountNumber", req.AccountNumber)
	var read *dto.TransactionRead
	err := s.guard.Around(ctx, req, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			users, err := uow.UserRepository()
			if err != nil {
				return err
			}
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			entries, err := uow.TransactionRepository()
			if err != nil {
				return err
			}

			u, err := users.Get(ctx, req.UserID)
			if err != nil {
				return err
			}
			acct, err := accounts.GetByNumber(ctx, req.AccountNumber)
			if err != nil {
				return err
			}
			if err := validateUseBalance(u.ID, acct, req.Amount); err != nil {
				return err
			}

			if err := acct.Use(req.Amount); err != nil {
				return err
			}
			if err := accounts.Update(ctx, acct); err != nil {
				return err
			}

			entry := transaction.NewEntry(
				acct.ID,
				transaction.TypeUse,
				transaction.ResultSuccess,
				req.Amount,
				acct.Balance,
				s.now(),
			)
			if err := entries.Create(ctx, entry); err != nil {
				return err
			}
			read = mapEntry(entry, acct.Number)
			return nil
		})
	})
	if err != nil {
		log.Error("use balance failed", "error", err)
		return nil, err
	}
	log.Info("use balance succeeded", "transactionId", read.TransactionID, "amount", req.Amount)
	return read, nil
}

func validateUseBalance(userID uuid.UUID, acct *account.Account, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidRequest
	}
	if acct.UserID != userID {
		return domain.ErrUserAccountMismatch
	}
	if acct.Status != account.StatusActive {
		return domain.ErrAccountAlreadyUnregistered
	}
	if amount > acct.Balance {
		return domain.ErrAmountExceedsBalance
	}
	return nil
}

// CancelBalance reverses the transaction identified by req.TransactionID. The
// reversal must match the original amount exactly, target the same account,
// happen within the cancellation window and be the first reversal of that
// transaction.
func (s *Service) CancelBalance(ctx context.Context, req CancelBalanceRequest) (*dto.TransactionRead, error) {
	log := s.logger.With("context", "CancelBalance", "transactionId", req.TransactionID)
	var read *dto.TransactionRead
	err := s.guard.Around(ctx, req, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			entries, err := uow.TransactionRepository()
			if err != nil {
				return err
			}

			original, err := entries.GetByTransactionID(ctx, req.TransactionID)
			if err != nil {
				return err
			}
			acct, err := accounts.GetByNumber(ctx, req.AccountNumber)
			if err != nil {
				return err
			}
			if err := s.validateCancelBalance(original, acct, req.Amount); err != nil {
				return err
			}

			if err := acct.Cancel(req.Amount); err != nil {
				return err
			}
			if err := accounts.Update(ctx, acct); err != nil {
				return err
			}
			if err := entries.MarkCanceled(ctx, original.TransactionID); err != nil {
				return err
			}

			entry := transaction.NewEntry(
				acct.ID,
				transaction.TypeCancel,
				transaction.ResultSuccess,
				req.Amount,
				acct.Balance,
				s.now(),
			)
			if err := entries.Create(ctx, entry); err != nil {
				return err
			}
			read = mapEntry(entry, acct.Number)
			return nil
		})
	})
	if err != nil {
		log.Error("cancel balance failed", "error", err)
		return nil, err
	}
	log.Info("cancel balance succeeded", "transactionId", read.TransactionID, "amount", req.Amount)
	return read, nil
}

func (s *Service) validateCancelBalance(original *transaction.Entry, acct *account.Account, amount int64) error {
	if original.AccountID != acct.ID {
		return domain.ErrTransactionAccountMismatch
	}
	if original.Amount != amount {
		return domain.ErrCancelMustBeFull
	}
	// The window is one calendar year, so a reversal stays valid across a
	// leap day.
	if original.TransactedAt.Before(s.now().AddDate(-1, 0, 0)) {
		return domain.ErrTransactionTooOldToCancel
	}
	if original.Canceled {
		return domain.ErrTransactionAlreadyCanceled
	}
	if original.Type != transaction.TypeUse || original.Result != transaction.ResultSuccess {
		return domain.ErrInvalidRequest
	}
	return nil
}

// QueryTransaction returns the ledger entry for the given transaction id.
// Read-only; it does not take the account lock.
func (s *Service) QueryTransaction(ctx context.Context, transactionID string) (*dto.TransactionRead, error) {
	var read *dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		entries, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entry, err := entries.GetByTransactionID(ctx, transactionID)
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, entry.AccountID)
		if err != nil {
			return err
		}
		read = mapEntry(entry, acct.Number)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// RecordFailedUse audits a USE attempt that failed after authorization, e.g. a
// downstream confirmation step. The balance is not mutated; the snapshot holds
// the balance at attempt time.
func (s *Service) RecordFailedUse(ctx context.Context, accountNumber string, amount int64) error {
	return s.recordFailed(ctx, transaction.TypeUse, accountNumber, amount)
}

// RecordFailedCancel mirrors RecordFailedUse for CANCEL attempts.
func (s *Service) RecordFailedCancel(ctx context.Context, accountNumber string, amount int64) error {
	return s.recordFailed(ctx, transaction.TypeCancel, accountNumber, amount)
}

func (s *Service) recordFailed(ctx context.Context, entryType transaction.Type, accountNumber string, amount int64) error {
	// Ledger amounts are strictly positive, failed attempts included.
	if amount <= 0 {
		return domain.ErrInvalidRequest
	}
	err := s.guard.Around(ctx, recordFailedRequest{accountNumber: accountNumber}, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			entries, err := uow.TransactionRepository()
			if err != nil {
				return err
			}
			acct, err := accounts.GetByNumber(ctx, accountNumber)
			if err != nil {
				return err
			}
			entry := transaction.NewEntry(
				acct.ID,
				entryType,
				transaction.ResultFailed,
				amount,
				acct.Balance,
				s.now(),
			)
			return entries.Create(ctx, entry)
		})
	})
	if err != nil {
		s.logger.Error("recording failed attempt",
			"type", entryType, "accountNumber", accountNumber, "error", err)
	}
	return err
}

func mapEntry(e *transaction.Entry, accountNumber string) *dto.TransactionRead {
	return &dto.TransactionRead{
		TransactionID:   e.TransactionID,
		AccountNumber:   accountNumber,
		Type:            e.Type,
		Result:          e.Result,
		Amount:          e.Amount,
		BalanceSnapshot: e.BalanceSnapshot,
		TransactedAt:    e.TransactedAt,
	}
}
