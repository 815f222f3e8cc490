package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row (one journal entry).
// Amount is stored as a positive magnitude; the sign of the balance effect
// follows from the type column.
type Transaction struct {
	TransactionID         string          `db:"transaction_id"`
	AccountID             string          `db:"account_id"`
	Type                  string          `db:"type"`
	Amount                decimal.Decimal `db:"amount"`
	Status                string          `db:"status"`
	Timestamp             time.Time       `db:"timestamp"`
	WithdrawalID          *string         `db:"withdrawal_id"`
	OriginalTransactionID *string         `db:"original_transaction_id"`
	Details               string          `db:"details"`
	BalanceAfter          decimal.Decimal `db:"balance_after"`
	AuditFields
}
