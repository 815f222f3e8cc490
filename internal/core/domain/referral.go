package domain

import (
	"time"

	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ReferralStatus is the state of a referral edge.
type ReferralStatus string

const (
	ReferralActive    ReferralStatus = "ACTIVE"
	ReferralCancelled ReferralStatus = "CANCELLED"
)

// ReferralEdge links a referrer to a user who signed up with their code.
// PendingEarnings accrue daily from the referred account's balance and
// become spendable only through an explicit claim, gated by a cooldown
// measured from LastClaimDate.
type ReferralEdge struct {
	EdgeID          string            `json:"edgeID"`
	ReferrerID      string            `json:"referrerID"`
	ReferredID      string            `json:"referredID"` // unique: one referrer per user
	PendingEarnings fixedpoint.Amount `json:"pendingEarnings"`
	LastClaimDate   time.Time         `json:"lastClaimDate"`
	Status          ReferralStatus    `json:"status"`
	AuditFields
}
