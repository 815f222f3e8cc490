package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ReferralSvcFacade owns referral edges: accrual of pending earnings and
// the cooldown-gated claim into spendable balance.
type ReferralSvcFacade interface {
	Register(ctx context.Context, referrerID, referredID string) (*domain.ReferralEdge, error)
	ListEdges(ctx context.Context, referrerID string) ([]domain.ReferralEdge, error)

	// RunAccrualBatch accrues dailyPercent of each referred account's
	// balance onto its edge. Individual edge failures are logged and
	// counted; the batch continues. Lost store connectivity aborts the
	// remainder cleanly.
	RunAccrualBatch(ctx context.Context) (*dto.AccrualBatchResult, error)

	// ClaimEarnings moves pending earnings of every cooled-down edge into
	// the referrer's spendable balance. Returns the total claimed; zero
	// with a nil error when nothing was eligible.
	ClaimEarnings(ctx context.Context, referrerID string) (fixedpoint.Amount, error)
}
