package dto

import "github.com/finwallet/wallet_ledger/internal/core/domain"

// RegisterReferralRequest links a new user to their referrer.
type RegisterReferralRequest struct {
	ReferrerID string `json:"referrerID" binding:"required"`
	ReferredID string `json:"referredID" binding:"required"`
}

// ReferralEdgeResponse is the caller-facing view of a referral edge.
type ReferralEdgeResponse struct {
	EdgeID          string `json:"edgeID"`
	ReferrerID      string `json:"referrerID"`
	ReferredID      string `json:"referredID"`
	PendingEarnings string `json:"pendingEarnings"`
	Status          string `json:"status"`
}

// ToReferralEdgeResponse converts a domain referral edge for API output.
func ToReferralEdgeResponse(e *domain.ReferralEdge) ReferralEdgeResponse {
	return ReferralEdgeResponse{
		EdgeID:          e.EdgeID,
		ReferrerID:      e.ReferrerID,
		ReferredID:      e.ReferredID,
		PendingEarnings: e.PendingEarnings.String(),
		Status:          string(e.Status),
	}
}

// ClaimEarningsResponse reports the outcome of a referral earnings claim.
// Claimed is zero when every edge was still inside its cooldown.
type ClaimEarningsResponse struct {
	Claimed string `json:"claimed"`
}

// AccrualBatchResult summarizes one accrual batch run. Failed edges are
// skipped, not retried; partial progress is the expected outcome.
type AccrualBatchResult struct {
	Processed    int    `json:"processed"`
	Failed       int    `json:"failed"`
	TotalAccrued string `json:"totalAccrued"`
	Aborted      bool   `json:"aborted"` // store connectivity lost mid-run
}
