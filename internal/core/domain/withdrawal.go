package domain

import (
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// WithdrawalStatus is the lifecycle state of a withdrawal request.
//
// PENDING -> PROCESSING -> COMPLETED
// PENDING -> REJECTED -> CLAIMED
// PENDING -> CANCELLED
//
// COMPLETED, CANCELLED and CLAIMED are terminal.
type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalRejected   WithdrawalStatus = "REJECTED"
	WithdrawalCancelled  WithdrawalStatus = "CANCELLED"
	WithdrawalClaimed    WithdrawalStatus = "CLAIMED"
)

// WithdrawalMethod selects the payout rail, which determines the fee rate.
type WithdrawalMethod string

const (
	MethodBankTransfer WithdrawalMethod = "BANK_TRANSFER"
	MethodCrypto       WithdrawalMethod = "CRYPTO"
	MethodPaypal       WithdrawalMethod = "PAYPAL"
)

// Withdrawal is a payout request. The gross amount is debited from the
// account at creation time; approve only finalizes status, reject/cancel
// refund the gross amount.
type Withdrawal struct {
	WithdrawalID string            `json:"withdrawalID"`
	AccountID    string            `json:"accountID"`
	GrossAmount  fixedpoint.Amount `json:"grossAmount"`
	Fee          fixedpoint.Amount `json:"fee"`
	NetAmount    fixedpoint.Amount `json:"netAmount"` // gross - fee
	Destination  string            `json:"destination"`
	Method       WithdrawalMethod  `json:"method"`
	// LocalAmount and ExchangeRateSnapshot are informational, captured once
	// at creation and never recomputed.
	LocalAmount          fixedpoint.Amount `json:"localAmount"`
	ExchangeRateSnapshot fixedpoint.Amount `json:"exchangeRateSnapshot"`
	LocalCurrencyCode    string            `json:"localCurrencyCode"`
	Status               WithdrawalStatus  `json:"status"`
	// DebitTransactionID links the journal entry that debited the gross
	// amount when this withdrawal was created.
	DebitTransactionID string `json:"debitTransactionID"`
	RejectionReason    string `json:"rejectionReason,omitempty"`
	AuditFields
}
