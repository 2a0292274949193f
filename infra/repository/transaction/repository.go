// Package transaction implements the append-only ledger repository over GORM.
package transaction

import (
	"context"
	"errors"

	"github.com/amirasaad/balancebook/pkg/domain"
	domaintx "github.com/amirasaad/balancebook/pkg/domain/transaction"
	repo "github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.TransactionRepository {
	return &repository{db: db}
}

// Create appends one ledger entry.
func (r *repository) Create(ctx context.Context, e *domaintx.Entry) error {
	m := mapDomainToModel(e)
	return r.db.WithContext(ctx).Create(&m).Error
}

// GetByTransactionID returns the entry carrying the external transaction id.
func (r *repository) GetByTransactionID(ctx context.Context, transactionID string) (*domaintx.Entry, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// ListByAccount returns the entries recorded against the account, newest first.
func (r *repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domaintx.Entry, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("transacted_at desc").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	result := make([]*domaintx.Entry, 0, len(ms))
	for i := range ms {
		result = append(result, mapModelToDomain(&ms[i]))
	}
	return result, nil
}

// MarkCanceled flips the double-reversal guard on the referenced USE row.
func (r *repository) MarkCanceled(ctx context.Context, transactionID string) error {
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("transaction_id = ?", transactionID).
		Update("canceled", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// mapDomainToModel maps the entry to the GORM model.
func mapDomainToModel(e *domaintx.Entry) Transaction {
	return Transaction{
		ID:              e.ID,
		TransactionID:   e.TransactionID,
		AccountID:       e.AccountID,
		Type:            string(e.Type),
		Result:          string(e.Result),
		Amount:          e.Amount,
		BalanceSnapshot: e.BalanceSnapshot,
		TransactedAt:    e.TransactedAt,
		Canceled:        e.Canceled,
	}
}

// mapModelToDomain maps a GORM model back to the entry.
func mapModelToDomain(m *Transaction) *domaintx.Entry {
	return &domaintx.Entry{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Type:            domaintx.Type(m.Type),
		Result:          domaintx.Result(m.Result),
		Amount:          m.Amount,
		BalanceSnapshot: m.BalanceSnapshot,
		TransactedAt:    m.TransactedAt,
		Canceled:        m.Canceled,
	}
}
