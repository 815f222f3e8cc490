package dto

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// AccountResponse is the caller-facing view of a wallet account.
type AccountResponse struct {
	AccountID      string    `json:"accountID"`
	Balance        string    `json:"balance"`
	PendingBalance string    `json:"pendingBalance"`
	CurrencyCode   string    `json:"currencyCode"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain account for API output.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Balance:        a.Balance.String(),
		PendingBalance: a.PendingBalance.String(),
		CurrencyCode:   a.CurrencyCode,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ReconciliationResult reports a journal replay against the stored balance.
// A mismatch is a corruption signal; it is reported, never auto-corrected.
type ReconciliationResult struct {
	AccountID       string `json:"accountID"`
	Consistent      bool   `json:"consistent"`
	StoredBalance   string `json:"storedBalance"`
	ComputedBalance string `json:"computedBalance"`
	EntriesReplayed int    `json:"entriesReplayed"`
}
