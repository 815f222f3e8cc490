package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralEdge is the referral_edges table row.
type ReferralEdge struct {
	EdgeID          string          `db:"edge_id"`
	ReferrerID      string          `db:"referrer_id"`
	ReferredID      string          `db:"referred_id"`
	PendingEarnings decimal.Decimal `db:"pending_earnings"`
	LastClaimDate   time.Time       `db:"last_claim_date"`
	Status          string          `db:"status"`
	AuditFields
}
