// Package account contains the Account aggregate. An account holds a
// non-negative balance in the smallest currency unit and belongs to exactly one
// user. Balance transitions here are pure arithmetic; ownership and status
// authorization happen in the transaction service before these methods run.
package account

import (
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/google/uuid"
)

// Status enumerates the account lifecycle states.
type Status string

const (
	// StatusActive marks an account that accepts debits and credits.
	StatusActive Status = "ACTIVE"
	// StatusClosed is terminal; no further balance mutations are permitted.
	StatusClosed Status = "CLOSED"
)

// NumberLength is the fixed length of external account numbers.
const NumberLength = 10

// Account represents a user's balance account, acting as the aggregate root for
// all balance mutations.
//
// Invariants:
// - An account always has a valid owner (UserID).
// - Number is stable once issued and identifies the account externally.
// - Balance never goes below zero after a committed mutation.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Number       string
	Status       Status
	Balance      int64
	RegisteredAt time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Use debits amount from the balance. It fails with ErrAmountExceedsBalance when
// the balance cannot cover the amount, leaving the account untouched.
func (a *Account) Use(amount int64) error {
	if amount > a.Balance {
		return domain.ErrAmountExceedsBalance
	}
	a.Balance -= amount
	return nil
}

// Cancel credits amount back to the balance, reversing an earlier Use.
// Negative amounts fail with ErrInvalidRequest.
func (a *Account) Cancel(amount int64) error {
	if amount < 0 {
		return domain.ErrInvalidRequest
	}
	a.Balance += amount
	return nil
}

// Close transitions the account to its terminal state. The balance must already
// be zero; the caller validates ownership.
func (a *Account) Close(now time.Time) error {
	if a.Status != StatusActive {
		return domain.ErrAccountAlreadyUnregistered
	}
	if a.Balance != 0 {
		return domain.ErrBalanceNotEmpty
	}
	a.Status = StatusClosed
	a.ClosedAt = &now
	return nil
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id           uuid.UUID
	userID       uuid.UUID
	number       string
	status       Status
	balance      int64
	registeredAt time.Time
}

// New creates a Builder with sensible defaults: a fresh UUID, ACTIVE status and
// the current time as registration time.
func New() *Builder {
	return &Builder{
		id:           uuid.New(),
		status:       StatusActive,
		registeredAt: time.Now(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithNumber sets the external account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithBalance sets the initial balance in the smallest currency unit.
func (b *Builder) WithBalance(balance int64) *Builder {
	b.balance = balance
	return b
}

// WithStatus sets the lifecycle status.
func (b *Builder) WithStatus(status Status) *Builder {
	b.status = status
	return b
}

// WithRegisteredAt sets the registration time.
func (b *Builder) WithRegisteredAt(t time.Time) *Builder {
	b.registeredAt = t
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, domain.ErrInvalidRequest
	}
	if len(b.number) != NumberLength {
		return nil, domain.ErrInvalidRequest
	}
	if b.balance < 0 {
		return nil, domain.ErrInvalidRequest
	}
	return &Account{
		ID:           b.id,
		UserID:       b.userID,
		Number:       b.number,
		Status:       b.status,
		Balance:      b.balance,
		RegisteredAt: b.registeredAt,
	}, nil
}
