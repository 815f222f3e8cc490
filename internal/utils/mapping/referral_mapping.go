package mapping

import (
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ToModelReferralEdge converts a domain referral edge to its db representation.
func ToModelReferralEdge(d domain.ReferralEdge) models.ReferralEdge {
	return models.ReferralEdge{
		EdgeID:          d.EdgeID,
		ReferrerID:      d.ReferrerID,
		ReferredID:      d.ReferredID,
		PendingEarnings: d.PendingEarnings.Decimal(),
		LastClaimDate:   d.LastClaimDate,
		Status:          string(d.Status),
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainReferralEdge converts a db referral edge row to the domain representation.
func ToDomainReferralEdge(m models.ReferralEdge) domain.ReferralEdge {
	return domain.ReferralEdge{
		EdgeID:          m.EdgeID,
		ReferrerID:      m.ReferrerID,
		ReferredID:      m.ReferredID,
		PendingEarnings: fixedpoint.FromDecimal(m.PendingEarnings),
		LastClaimDate:   m.LastClaimDate,
		Status:          domain.ReferralStatus(m.Status),
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToDomainClaim converts a db claim row to the domain representation.
func ToDomainClaim(m models.Claim) domain.ClaimRecord {
	d := domain.ClaimRecord{
		ClaimID:               m.ClaimID,
		UserID:                m.UserID,
		OriginalTransactionID: m.OriginalTransactionID,
		Status:                domain.ClaimStatus(m.Status),
		CreatedAt:             m.CreatedAt,
	}
	if m.ClaimTransactionID != nil {
		d.ClaimTransactionID = *m.ClaimTransactionID
	}
	return d
}
