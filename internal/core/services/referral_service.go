package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/finwallet/wallet_ledger/internal/platform/config"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/google/uuid"
)

type referralService struct {
	referralRepo portsrepo.ReferralRepository
	ledgerRepo   portsrepo.LedgerRepository
	pinger       portsrepo.Pinger
	ledger       portssvc.LedgerSvcFacade

	dailyPercent  fixedpoint.Amount
	claimCooldown time.Duration
}

// NewReferralService creates the referral accrual and claim service.
func NewReferralService(cfg *config.Config, referralRepo portsrepo.ReferralRepository, ledgerRepo portsrepo.LedgerRepository, pinger portsrepo.Pinger, ledger portssvc.LedgerSvcFacade) portssvc.ReferralSvcFacade {
	return &referralService{
		referralRepo:  referralRepo,
		ledgerRepo:    ledgerRepo,
		pinger:        pinger,
		ledger:        ledger,
		dailyPercent:  cfg.ReferralDailyPercent,
		claimCooldown: cfg.ReferralClaimCooldown,
	}
}

var _ portssvc.ReferralSvcFacade = (*referralService)(nil)

// Register links a referred user to their referrer. A user has at most one
// referrer and cannot refer themselves.
func (s *referralService) Register(ctx context.Context, referrerID, referredID string) (*domain.ReferralEdge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if referrerID == referredID {
		return nil, fmt.Errorf("self-referral is not allowed: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	edge := domain.ReferralEdge{
		EdgeID:          uuid.NewString(),
		ReferrerID:      referrerID,
		ReferredID:      referredID,
		PendingEarnings: fixedpoint.Zero,
		LastClaimDate:   now,
		Status:          domain.ReferralActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     referrerID,
			LastUpdatedAt: now,
			LastUpdatedBy: referrerID,
		},
	}

	if err := s.referralRepo.SaveEdge(ctx, edge); err != nil {
		return nil, err
	}

	logger.Info("Referral edge registered",
		slog.String("edge_id", edge.EdgeID),
		slog.String("referrer_id", referrerID),
		slog.String("referred_id", referredID),
	)
	return &edge, nil
}

func (s *referralService) ListEdges(ctx context.Context, referrerID string) ([]domain.ReferralEdge, error) {
	return s.referralRepo.ListEdgesByReferrer(ctx, referrerID)
}

// RunAccrualBatch accrues dailyPercent of each referred account's balance
// onto its edge. One bad edge never stops the batch: its failure is
// logged and counted, and the loop moves on. Lost store connectivity,
// detected by a ping before each edge, aborts the remainder instead of
// burning through the whole batch against a dead store.
func (s *referralService) RunAccrualBatch(ctx context.Context) (*dto.AccrualBatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	edges, err := s.referralRepo.ListActiveEdges(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.AccrualBatchResult{}
	total := fixedpoint.Zero

	for _, edge := range edges {
		if err := s.pinger.Ping(ctx); err != nil {
			logger.Error("Store connectivity lost, aborting accrual batch",
				slog.Int("processed", result.Processed),
				slog.Int("remaining", len(edges)-result.Processed-result.Failed),
				slog.String("error", err.Error()),
			)
			result.Aborted = true
			break
		}

		accrued, err := s.accrueEdge(ctx, edge, now)
		if err != nil {
			result.Failed++
			logger.Warn("Accrual failed for edge, continuing",
				slog.String("edge_id", edge.EdgeID),
				slog.String("referred_id", edge.ReferredID),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Processed++
		total = total.Add(accrued)
	}

	result.TotalAccrued = total.String()
	logger.Info("Accrual batch finished",
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
		slog.String("total_accrued", result.TotalAccrued),
		slog.Bool("aborted", result.Aborted),
	)
	return result, nil
}

func (s *referralService) accrueEdge(ctx context.Context, edge domain.ReferralEdge, now time.Time) (fixedpoint.Amount, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, edge.ReferredID)
	if err != nil {
		return fixedpoint.Zero, err
	}
	if !account.Balance.IsPositive() {
		return fixedpoint.Zero, nil
	}

	accrued := account.Balance.MulPercent(s.dailyPercent)
	if accrued.IsZero() {
		return fixedpoint.Zero, nil
	}

	if err := s.referralRepo.AddPendingEarnings(ctx, edge.EdgeID, accrued, now); err != nil {
		return fixedpoint.Zero, err
	}
	return accrued, nil
}

// ClaimEarnings moves pending earnings of every cooled-down edge into the
// referrer's spendable balance. The store-side capture zeroes the edge
// and stamps the claim date atomically, so a concurrent claim captures
// nothing. If crediting fails the captured amount is restored.
func (s *referralService) ClaimEarnings(ctx context.Context, referrerID string) (fixedpoint.Amount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	cutoff := now.Add(-s.claimCooldown)

	edges, err := s.referralRepo.ListEdgesByReferrer(ctx, referrerID)
	if err != nil {
		return fixedpoint.Zero, err
	}

	total := fixedpoint.Zero
	for _, edge := range edges {
		if edge.Status != domain.ReferralActive {
			continue
		}

		captured, err := s.referralRepo.CaptureEarningsForClaim(ctx, edge.EdgeID, cutoff, now)
		if err != nil {
			logger.Error("Failed to capture earnings for edge",
				slog.String("edge_id", edge.EdgeID),
				slog.String("error", err.Error()),
			)
			return fixedpoint.Zero, err
		}
		if captured.IsZero() {
			// Cooldown still running or nothing accrued.
			continue
		}

		if _, err := s.ledger.ApplyEffect(ctx, referrerID, domain.TypeReferralClaim, captured, domain.Correlation{
			Details: "referral earnings claim for edge " + edge.EdgeID,
		}, referrerID); err != nil {
			logger.Error("Failed to credit claimed earnings, restoring",
				slog.String("edge_id", edge.EdgeID),
				slog.String("amount", captured.String()),
				slog.String("error", err.Error()),
			)
			if restoreErr := s.referralRepo.RestorePendingEarnings(ctx, edge.EdgeID, captured, now); restoreErr != nil {
				logger.Error("Failed to restore captured earnings, edge requires reconciliation",
					slog.String("edge_id", edge.EdgeID),
					slog.String("amount", captured.String()),
					slog.String("error", restoreErr.Error()),
				)
			}
			return fixedpoint.Zero, err
		}

		total = total.Add(captured)
	}

	if total.IsPositive() {
		logger.Info("Referral earnings claimed",
			slog.String("referrer_id", referrerID),
			slog.String("claimed", total.String()),
		)
	}
	return total, nil
}
