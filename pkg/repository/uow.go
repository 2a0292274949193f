package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Do runs the given function inside one database transaction; the UnitOfWork
// passed to the function hands out repositories bound to that transaction, so
// an account save and its ledger append either both commit or both roll back.
// If the function returns an error, the transaction is rolled back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Repository access bound to the current transaction/session.
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
