// Package auth provides JWT-based authentication for the HTTP surface.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/amirasaad/balancebook/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Service checks credentials and issues/inspects JWT tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the email/password pair and returns the matching user.
// Wrong credentials and unknown users both map to ErrUserUnauthorized so the
// response does not leak which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")
	var read *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err := users.GetByEmail(ctx, email)
		if err != nil {
			return domain.ErrUserUnauthorized
		}
		if !utils.CheckPasswordHash(password, u.Password) {
			return domain.ErrUserUnauthorized
		}
		read = &dto.UserRead{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		}
		return nil
	})
	if err != nil {
		log.Warn("login rejected", "error", err)
		return nil, err
	}
	log.Info("login succeeded", "userID", read.ID)
	return read, nil
}

// GenerateToken issues a signed JWT carrying the user id.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"email":   u.Email,
		"exp":     time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// GetCurrentUserID extracts the user id from a verified token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return id, nil
}
