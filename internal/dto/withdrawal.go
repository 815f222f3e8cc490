package dto

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// CreateWithdrawalRequest is the payload for creating a withdrawal.
type CreateWithdrawalRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Method      string `json:"method" binding:"required,oneof=BANK_TRANSFER CRYPTO PAYPAL"`
}

// RejectWithdrawalRequest carries the admin's rejection reason.
type RejectWithdrawalRequest struct {
	Reason string `json:"reason"`
}

// WithdrawalResponse is the caller-facing view of a withdrawal.
type WithdrawalResponse struct {
	WithdrawalID         string    `json:"withdrawalID"`
	AccountID            string    `json:"accountID"`
	GrossAmount          string    `json:"grossAmount"`
	Fee                  string    `json:"fee"`
	NetAmount            string    `json:"netAmount"`
	Destination          string    `json:"destination"`
	Method               string    `json:"method"`
	LocalAmount          string    `json:"localAmount"`
	ExchangeRateSnapshot string    `json:"exchangeRateSnapshot"`
	LocalCurrencyCode    string    `json:"localCurrencyCode"`
	Status               string    `json:"status"`
	RejectionReason      string    `json:"rejectionReason,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ToWithdrawalResponse converts a domain withdrawal for API output.
func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:         w.WithdrawalID,
		AccountID:            w.AccountID,
		GrossAmount:          w.GrossAmount.String(),
		Fee:                  w.Fee.String(),
		NetAmount:            w.NetAmount.String(),
		Destination:          w.Destination,
		Method:               string(w.Method),
		LocalAmount:          w.LocalAmount.String(),
		ExchangeRateSnapshot: w.ExchangeRateSnapshot.String(),
		LocalCurrencyCode:    w.LocalCurrencyCode,
		Status:               string(w.Status),
		RejectionReason:      w.RejectionReason,
		CreatedAt:            w.CreatedAt,
	}
}

// ListWithdrawalsResponse is a page of withdrawals.
type ListWithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
	NextToken   *string              `json:"nextToken,omitempty"`
}
