package domain

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// Account represents a user's wallet within the ledger. The account ID is
// the owning user's ID: one spendable balance per user per currency.
type Account struct {
	AccountID      string            `json:"accountID"` // == owning user ID
	Balance        fixedpoint.Amount `json:"balance"`
	PendingBalance fixedpoint.Amount `json:"pendingBalance"` // earned but not yet spendable
	CurrencyCode   string            `json:"currencyCode"`
	// AllowNegative permits the balance to go below zero. Only internal
	// correction paths set this; normal accounts never do.
	AllowNegative bool `json:"-"`
	AuditFields
}

// BalanceHistoryEntry records one balance change applied to an account.
// Entries are written in the same atomic unit as the account mutation and
// the journal append.
type BalanceHistoryEntry struct {
	EntryID    string            `json:"entryID"`
	AccountID  string            `json:"accountID"`
	Delta      fixedpoint.Amount `json:"delta"` // signed
	OldBalance fixedpoint.Amount `json:"oldBalance"`
	NewBalance fixedpoint.Amount `json:"newBalance"`
	Type       TransactionType   `json:"type"`
	Timestamp  time.Time         `json:"timestamp"`
}
