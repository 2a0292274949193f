// Package repository provides the GORM-backed UnitOfWork binding all
// repositories to one database transaction.
package repository

import (
	"context"

	infraaccount "github.com/amirasaad/balancebook/infra/repository/account"
	infratransaction "github.com/amirasaad/balancebook/infra/repository/transaction"
	infrauser "github.com/amirasaad/balancebook/infra/repository/user"
	"github.com/amirasaad/balancebook/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction session, so an
// account save and its ledger append either both commit or both roll back.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW whose
// repositories are bound to that transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction session when inside Do, the root DB
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return infraaccount.New(u.session()), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return infratransaction.New(u.session()), nil
}

// UserRepository implements repository.UnitOfWork.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return infrauser.New(u.session()), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
