// Package domain defines the error taxonomy shared by all balancebook services.
// Every error here is terminal for the request that raised it; nothing is retried
// internally. The webapi layer maps each sentinel to a stable HTTP status.
package domain

import "errors"

var (
	// ErrUserNotFound is returned when the requesting user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound is returned when no account matches the given account number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when no ledger entry matches the given transaction id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserAccountMismatch is returned when the requesting user does not own the account.
	ErrUserAccountMismatch = errors.New("user and account owner do not match")

	// ErrTransactionAccountMismatch is returned when a cancellation references a
	// transaction that belongs to a different account.
	ErrTransactionAccountMismatch = errors.New("transaction does not belong to this account")

	// ErrAccountAlreadyUnregistered is returned when the account has been closed.
	ErrAccountAlreadyUnregistered = errors.New("account is already unregistered")

	// ErrAmountExceedsBalance is returned when a debit is larger than the current balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds account balance")

	// ErrCancelMustBeFull is returned when a cancellation amount differs from the
	// original transaction amount. Partial reversal is not permitted.
	ErrCancelMustBeFull = errors.New("cancel amount must equal the original transaction amount")

	// ErrTransactionTooOldToCancel is returned when the referenced transaction is
	// outside the one-year cancellation window.
	ErrTransactionTooOldToCancel = errors.New("transaction is too old to cancel")

	// ErrTransactionAlreadyCanceled is returned when the referenced transaction has
	// already been reversed.
	ErrTransactionAlreadyCanceled = errors.New("transaction has already been canceled")

	// ErrInvalidRequest is returned for requests that fail basic validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrLockTimeout is returned when the per-account lock could not be acquired
	// within the configured wait bound. No state has been touched.
	ErrLockTimeout = errors.New("timed out acquiring account lock")

	// ErrMaxAccountPerUser is returned when a user already holds the maximum number of accounts.
	ErrMaxAccountPerUser = errors.New("user already has the maximum number of accounts")

	// ErrBalanceNotEmpty is returned when closing an account that still holds a balance.
	ErrBalanceNotEmpty = errors.New("account balance must be zero to close the account")

	// ErrUserUnauthorized is returned when credentials are missing or wrong.
	ErrUserUnauthorized = errors.New("unauthorized")
)
