package dto

import (
	"time"

	"github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/google/uuid"
)

// AccountCreate carries the fields needed to provision a new account.
type AccountCreate struct {
	UserID         uuid.UUID
	InitialBalance int64
}

// AccountRead is the read-optimized view of an account.
type AccountRead struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	Number       string         `json:"accountNumber"`
	Status       account.Status `json:"status"`
	Balance      int64          `json:"balance"`
	RegisteredAt time.Time      `json:"registeredAt"`
	ClosedAt     *time.Time     `json:"unregisteredAt,omitempty"`
}
