// Package user provides user registration and lookup.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/balancebook/pkg/domain/user"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
)

// Service provides user registration and queries.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, create dto.UserCreate) (*dto.UserRead, error) {
	log := s.logger.With("context", "Register", "username", create.Username)
	var read *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := user.NewUser(create.Username, create.Email, create.Password)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		read = mapUser(u)
		return nil
	})
	if err != nil {
		log.Error("register failed", "error", err)
		return nil, err
	}
	log.Info("user registered", "userID", read.ID)
	return read, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var read *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		read = mapUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

func mapUser(u *user.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
