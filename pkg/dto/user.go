package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate carries the fields needed to register a user.
type UserCreate struct {
	Username string
	Email    string
	Password string
}

// UserRead is the read-optimized view of a user.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
