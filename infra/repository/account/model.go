package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account represents an account record in the database.
type Account struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	Number       string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Status       string    `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	Balance      int64
	RegisteredAt time.Time
	ClosedAt     *time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
