package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Balance        decimal.Decimal `db:"balance"`
	PendingBalance decimal.Decimal `db:"pending_balance"`
	CurrencyCode   string          `db:"currency_code"`
	AllowNegative  bool            `db:"allow_negative"`
	AuditFields
}

// BalanceHistoryEntry is the balance_history table row.
type BalanceHistoryEntry struct {
	EntryID    string          `db:"entry_id"`
	AccountID  string          `db:"account_id"`
	Delta      decimal.Decimal `db:"delta"`
	OldBalance decimal.Decimal `db:"old_balance"`
	NewBalance decimal.Decimal `db:"new_balance"`
	Type       string          `db:"type"`
	Timestamp  time.Time       `db:"timestamp"`
}

// WalletProjection is the wallet_projections table row: the externally
// mirrored read model kept in sync inside every atomic apply.
type WalletProjection struct {
	AccountID    string          `db:"account_id"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	LastSyncedAt time.Time       `db:"last_synced_at"`
}
