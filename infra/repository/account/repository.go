// Package account implements the account repository over GORM.
package account

import (
	"context"
	"errors"

	"github.com/amirasaad/balancebook/pkg/domain"
	domainaccount "github.com/amirasaad/balancebook/pkg/domain/account"
	repo "github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.AccountRepository {
	return &repository{db: db}
}

// Get returns the account with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*domainaccount.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// GetByNumber returns the account carrying the external account number.
func (r *repository) GetByNumber(ctx context.Context, number string) (*domainaccount.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// LatestNumber returns the highest account number issued so far.
func (r *repository) LatestNumber(ctx context.Context) (string, error) {
	var m Account
	err := r.db.WithContext(ctx).Order("number desc").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Number, nil
}

// ListByUser returns all accounts owned by the user.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domainaccount.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ms).Error; err != nil {
		return nil, err
	}
	result := make([]*domainaccount.Account, 0, len(ms))
	for i := range ms {
		result = append(result, mapModelToDomain(&ms[i]))
	}
	return result, nil
}

// CountByUser returns how many accounts the user holds.
func (r *repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Create persists a new account.
func (r *repository) Create(ctx context.Context, a *domainaccount.Account) error {
	m := mapDomainToModel(a)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Update persists the mutable fields of an account.
func (r *repository) Update(ctx context.Context, a *domainaccount.Account) error {
	updates := map[string]any{
		"balance":   a.Balance,
		"status":    string(a.Status),
		"closed_at": a.ClosedAt,
	}
	return r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Updates(updates).Error
}

// mapDomainToModel maps the aggregate to the GORM model.
func mapDomainToModel(a *domainaccount.Account) Account {
	return Account{
		ID:           a.ID,
		UserID:       a.UserID,
		Number:       a.Number,
		Status:       string(a.Status),
		Balance:      a.Balance,
		RegisteredAt: a.RegisteredAt,
		ClosedAt:     a.ClosedAt,
	}
}

// mapModelToDomain maps a GORM model back to the aggregate.
func mapModelToDomain(m *Account) *domainaccount.Account {
	return &domainaccount.Account{
		ID:           m.ID,
		UserID:       m.UserID,
		Number:       m.Number,
		Status:       domainaccount.Status(m.Status),
		Balance:      m.Balance,
		RegisteredAt: m.RegisteredAt,
		ClosedAt:     m.ClosedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
