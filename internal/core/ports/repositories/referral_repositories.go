package repositories

import (
	"context"
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ReferralRepository persists referral edges.
type ReferralRepository interface {
	SaveEdge(ctx context.Context, edge domain.ReferralEdge) error
	FindEdgeByReferred(ctx context.Context, referredID string) (*domain.ReferralEdge, error)
	ListActiveEdges(ctx context.Context) ([]domain.ReferralEdge, error)
	ListEdgesByReferrer(ctx context.Context, referrerID string) ([]domain.ReferralEdge, error)

	// AddPendingEarnings accumulates an accrual onto an edge.
	AddPendingEarnings(ctx context.Context, edgeID string, delta fixedpoint.Amount, at time.Time) error

	// CaptureEarningsForClaim atomically zeroes an edge's pending earnings
	// and stamps LastClaimDate, returning the captured amount. Only edges
	// that are ACTIVE, have positive earnings and whose last claim is at or
	// before cutoff match; otherwise zero is returned with no change.
	CaptureEarningsForClaim(ctx context.Context, edgeID string, cutoff time.Time, at time.Time) (fixedpoint.Amount, error)

	// RestorePendingEarnings puts captured earnings back on an edge when
	// crediting them failed.
	RestorePendingEarnings(ctx context.Context, edgeID string, amount fixedpoint.Amount, at time.Time) error
}
