package dto

import (
	"time"

	"github.com/amirasaad/balancebook/pkg/domain/transaction"
)

// TransactionRead is the read-optimized view of one ledger entry returned by
// the transaction service.
type TransactionRead struct {
	TransactionID   string             `json:"transactionId"`
	AccountNumber   string             `json:"accountNumber"`
	Type            transaction.Type   `json:"transactionType"`
	Result          transaction.Result `json:"transactionResult"`
	Amount          int64              `json:"amount"`
	BalanceSnapshot int64              `json:"balanceSnapshot"`
	TransactedAt    time.Time          `json:"transactedAt"`
}
