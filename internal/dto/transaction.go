package dto

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// CreateTransactionRequest is the payload for a direct ledger mutation
// (deposit, reward, penalty, balance sync). Amount is a plain decimal
// string; malformed values are rejected, never coerced.
type CreateTransactionRequest struct {
	AccountID string `json:"accountID" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Details   string `json:"details"`
}

// TransactionResponse is the caller-facing view of a journal entry.
type TransactionResponse struct {
	TransactionID         string    `json:"transactionID"`
	AccountID             string    `json:"accountID"`
	Type                  string    `json:"type"`
	Amount                string    `json:"amount"`
	Status                string    `json:"status"`
	Timestamp             time.Time `json:"timestamp"`
	WithdrawalID          string    `json:"withdrawalID,omitempty"`
	OriginalTransactionID string    `json:"originalTransactionID,omitempty"`
	Details               string    `json:"details,omitempty"`
	BalanceAfter          string    `json:"balanceAfter"`
}

// ToTransactionResponse converts a domain journal record for API output.
func ToTransactionResponse(r *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID:         r.TransactionID,
		AccountID:             r.AccountID,
		Type:                  string(r.Type),
		Amount:                r.Amount.String(),
		Status:                string(r.Status),
		Timestamp:             r.Timestamp,
		WithdrawalID:          r.WithdrawalID,
		OriginalTransactionID: r.OriginalTransactionID,
		Details:               r.Details,
		BalanceAfter:          r.BalanceAfter.String(),
	}
}

// ListTransactionsResponse is a page of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
