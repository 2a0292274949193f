package transaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a persisted ledger entry. Rows are append-only; only
// the canceled flag is ever flipped, when a CANCEL entry reverses a USE row.
type Transaction struct {
	gorm.Model
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	TransactionID   string    `gorm:"type:varchar(32);uniqueIndex;not null;column:transaction_id"`
	AccountID       uuid.UUID `gorm:"type:uuid;index"`
	Type            string    `gorm:"type:varchar(8);not null"`
	Result          string    `gorm:"type:varchar(1);not null"`
	Amount          int64
	BalanceSnapshot int64
	TransactedAt    time.Time
	Canceled        bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
