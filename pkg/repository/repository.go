// Package repository defines the data-access contracts consumed by the
// services. Implementations live in infra/repository.
package repository

import (
	"context"

	"github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/amirasaad/balancebook/pkg/domain/transaction"
	"github.com/amirasaad/balancebook/pkg/domain/user"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access operations.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	// GetByNumber returns the account carrying the external account number.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)
	// LatestNumber returns the highest account number issued so far, or ""
	// when no account exists yet.
	LatestNumber(ctx context.Context) (string, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Create(ctx context.Context, a *account.Account) error
	Update(ctx context.Context, a *account.Account) error
}

// TransactionRepository is the append-only ledger store. Recorded attempts are
// never updated or deleted; MarkCanceled only flips the bookkeeping flag that
// guards against double reversal.
type TransactionRepository interface {
	Create(ctx context.Context, e *transaction.Entry) error
	GetByTransactionID(ctx context.Context, transactionID string) (*transaction.Entry, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Entry, error)
	MarkCanceled(ctx context.Context, transactionID string) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
}
