// Package transaction defines the immutable ledger entry recorded for every
// balance mutation attempt. The ledger is append-only: corrections are new
// CANCEL entries, never edits of history.
package transaction

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type enumerates the kinds of ledger entries.
type Type string

const (
	// TypeUse records a debit attempt.
	TypeUse Type = "USE"
	// TypeCancel records a reversal attempt.
	TypeCancel Type = "CANCEL"
)

// Result enumerates the outcome of an attempt.
type Result string

const (
	// ResultSuccess marks an applied mutation.
	ResultSuccess Result = "S"
	// ResultFailed marks an attempt that did not mutate the balance.
	ResultFailed Result = "F"
)

// Entry is one ledger record. BalanceSnapshot holds the account balance right
// after the entry was applied; for failed attempts it holds the unchanged
// balance at attempt time.
type Entry struct {
	ID              uuid.UUID
	TransactionID   string
	AccountID       uuid.UUID
	Type            Type
	Result          Result
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
	// Canceled is set on a successful USE entry once a CANCEL entry has
	// reversed it, so the same transaction cannot be reversed twice.
	Canceled bool
}

// NewTransactionID issues an externally visible transaction identifier:
// a UUID with the dashes stripped.
func NewTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewEntry records one attempt against an account.
func NewEntry(
	accountID uuid.UUID,
	entryType Type,
	result Result,
	amount int64,
	balanceSnapshot int64,
	transactedAt time.Time,
) *Entry {
	return &Entry{
		ID:              uuid.New(),
		TransactionID:   NewTransactionID(),
		AccountID:       accountID,
		Type:            entryType,
		Result:          result,
		Amount:          amount,
		BalanceSnapshot: balanceSnapshot,
		TransactedAt:    transactedAt,
	}
}
