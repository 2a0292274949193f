// Package account provides account provisioning: creating accounts with issued
// account numbers, closing them, and read-side queries. Balance mutations are
// the transaction engine's job, not this package's.
package account

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/lock"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
)

// MaxAccountsPerUser caps how many accounts one user may hold.
const MaxAccountsPerUser = 10

// firstAccountNumber is issued when no account exists yet.
const firstAccountNumber = "1000000000"

// closeRequest serializes account closure against in-flight balance mutations
// on the same account.
type closeRequest struct {
	accountNumber string
}

func (r closeRequest) LockKey() string { return r.accountNumber }

// Service provides account provisioning and queries.
type Service struct {
	guard  *lock.Guard
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an account Service.
func New(guard *lock.Guard, uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{guard: guard, uow: uow, logger: logger}
}

// CreateAccount provisions a new ACTIVE account for the user, issuing the next
// free 10-digit account number.
func (s *Service) CreateAccount(ctx context.Context, create dto.AccountCreate) (*dto.AccountRead, error) {
	log := s.logger.With("context", "CreateAccount", "userID", create.UserID)
	var read *dto.AccountRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		u, err := users.Get(ctx, create.UserID)
		if err != nil {
			return err
		}
		count, err := accounts.CountByUser(ctx, u.ID)
		if err != nil {
			return err
		}
		if count >= MaxAccountsPerUser {
			return domain.ErrMaxAccountPerUser
		}
		number, err := s.nextAccountNumber(ctx, accounts)
		if err != nil {
			return err
		}

		a, err := account.New().
			WithUserID(u.ID).
			WithNumber(number).
			WithBalance(create.InitialBalance).
			Build()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, a); err != nil {
			return err
		}
		read = mapAccount(a)
		return nil
	})
	if err != nil {
		log.Error("create account failed", "error", err)
		return nil, err
	}
	log.Info("account created", "accountNumber", read.Number)
	return read, nil
}

// nextAccountNumber issues the number after the latest one, starting at
// firstAccountNumber. Runs inside the caller's transaction.
func (s *Service) nextAccountNumber(ctx context.Context, accounts repository.AccountRepository) (string, error) {
	latest, err := accounts.LatestNumber(ctx)
	if err != nil {
		return "", err
	}
	if latest == "" {
		return firstAccountNumber, nil
	}
	n, err := strconv.ParseInt(latest, 10, 64)
	if err != nil {
		return "", domain.ErrInvalidRequest
	}
	return strconv.FormatInt(n+1, 10), nil
}

// CloseAccount transitions an account to CLOSED. The requesting user must own
// the account, the account must be ACTIVE and the balance must be zero. The
// operation takes the account lock so it cannot interleave with an in-flight
// use or cancel.
func (s *Service) CloseAccount(ctx context.Context, userID uuid.UUID, accountNumber string) (*dto.AccountRead, error) {
	log := s.logger.With("context", "CloseAccount", "accountNumber", accountNumber)
	var read *dto.AccountRead
	err := s.guard.Around(ctx, closeRequest{accountNumber: accountNumber}, func() error {
		return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			users, err := uow.UserRepository()
			if err != nil {
				return err
			}
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}

			u, err := users.Get(ctx, userID)
			if err != nil {
				return err
			}
			a, err := accounts.GetByNumber(ctx, accountNumber)
			if err != nil {
				return err
			}
			if a.UserID != u.ID {
				return domain.ErrUserAccountMismatch
			}
			if err := a.Close(time.Now()); err != nil {
				return err
			}
			if err := accounts.Update(ctx, a); err != nil {
				return err
			}
			read = mapAccount(a)
			return nil
		})
	})
	if err != nil {
		log.Error("close account failed", "error", err)
		return nil, err
	}
	log.Info("account closed")
	return read, nil
}

// ListAccounts returns all accounts owned by the user.
func (s *Service) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var reads []*dto.AccountRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err := accounts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		reads = make([]*dto.AccountRead, 0, len(list))
		for _, a := range list {
			reads = append(reads, mapAccount(a))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reads, nil
}

// GetBalance returns the current balance of the account, enforcing ownership.
func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID, accountNumber string) (int64, error) {
	var balance int64
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrUserAccountMismatch
		}
		balance = a.Balance
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// ListTransactions returns the ledger entries recorded against the account.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, accountNumber string) ([]*dto.TransactionRead, error) {
	var reads []*dto.TransactionRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		entries, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		a, err := accounts.GetByNumber(ctx, accountNumber)
		if err != nil {
			return err
		}
		if a.UserID != userID {
			return domain.ErrUserAccountMismatch
		}
		list, err := entries.ListByAccount(ctx, a.ID)
		if err != nil {
			return err
		}
		reads = make([]*dto.TransactionRead, 0, len(list))
		for _, e := range list {
			reads = append(reads, &dto.TransactionRead{
				TransactionID:   e.TransactionID,
				AccountNumber:   a.Number,
				Type:            e.Type,
				Result:          e.Result,
				Amount:          e.Amount,
				BalanceSnapshot: e.BalanceSnapshot,
				TransactedAt:    e.TransactedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reads, nil
}

func mapAccount(a *account.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:           a.ID,
		UserID:       a.UserID,
		Number:       a.Number,
		Status:       a.Status,
		Balance:      a.Balance,
		RegisteredAt: a.RegisteredAt,
		ClosedAt:     a.ClosedAt,
	}
}
