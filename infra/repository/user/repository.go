// Package user implements the user repository over GORM.
package user

import (
	"context"
	"errors"

	"github.com/amirasaad/balancebook/pkg/domain"
	domainuser "github.com/amirasaad/balancebook/pkg/domain/user"
	repo "github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.UserRepository {
	return &repository{db: db}
}

// Get returns the user with the given id.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*domainuser.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// GetByEmail returns the user with the given email.
func (r *repository) GetByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

// Create persists a new user.
func (r *repository) Create(ctx context.Context, u *domainuser.User) error {
	m := User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func mapModelToDomain(m *User) *domainuser.User {
	return domainuser.NewUserFromData(
		m.ID,
		m.Username,
		m.Email,
		m.Password,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
