package domain

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// TransactionType classifies a journal entry. The sign of its balance
// effect is derived from the type, never stored.
type TransactionType string

const (
	TypeDeposit         TransactionType = "DEPOSIT"
	TypeWithdrawal      TransactionType = "WITHDRAWAL"
	TypeRefund          TransactionType = "REFUND"
	TypeReward          TransactionType = "REWARD"
	TypeMining          TransactionType = "MINING"
	TypeReferralAccrual TransactionType = "REFERRAL_ACCRUAL"
	TypeReferralClaim   TransactionType = "REFERRAL_CLAIM"
	TypeClaim           TransactionType = "CLAIM"
	TypeBalanceSync     TransactionType = "BALANCE_SYNC"
	TypePenalty         TransactionType = "PENALTY"
)

// IsCredit reports whether the type increases the spendable balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TypeDeposit, TypeReward, TypeMining, TypeReferralClaim, TypeClaim, TypeRefund, TypeBalanceSync:
		return true
	}
	return false
}

// IsDebit reports whether the type decreases the spendable balance.
func (t TransactionType) IsDebit() bool {
	switch t {
	case TypeWithdrawal, TypePenalty:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a journal entry.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
	TxnCancelled TransactionStatus = "CANCELLED"
	TxnRejected  TransactionStatus = "REJECTED"
	TxnClaimed   TransactionStatus = "CLAIMED"
	TxnRefunded  TransactionStatus = "REFUNDED"
)

// TransactionRecord is one immutable journal entry. Amount is always the
// positive magnitude; the effect's sign follows from Type. A COMPLETED
// record never changes except along the claim path
// (REJECTED/FAILED -> CLAIMED) or the refund path (-> REFUNDED).
type TransactionRecord struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Type          TransactionType   `json:"type"`
	Amount        fixedpoint.Amount `json:"amount"` // positive magnitude
	Status        TransactionStatus `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
	// Correlation fields, empty when not applicable.
	WithdrawalID          string `json:"withdrawalID,omitempty"`
	OriginalTransactionID string `json:"originalTransactionID,omitempty"`
	Details               string `json:"details,omitempty"`
	// BalanceAfter is the account balance immediately after this entry was
	// applied, set by the repository inside the atomic apply.
	BalanceAfter fixedpoint.Amount `json:"balanceAfter"`
	AuditFields
}

// Correlation carries the optional linkage of a journal entry to the
// operation that produced it.
type Correlation struct {
	WithdrawalID          string
	OriginalTransactionID string
	Details               string
}

// SignedEffect returns the record's effect on the spendable balance:
// +Amount for credit types, -Amount for debit types.
func (r TransactionRecord) SignedEffect() fixedpoint.Amount {
	if r.Type.IsDebit() {
		return r.Amount.Neg()
	}
	return r.Amount
}
