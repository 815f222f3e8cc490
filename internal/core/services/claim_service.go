package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/google/uuid"
)

type claimService struct {
	claimRepo      portsrepo.ClaimRepository
	ledgerRepo     portsrepo.LedgerRepository
	withdrawalRepo portsrepo.WithdrawalRepository
	ledger         portssvc.LedgerSvcFacade
}

// NewClaimService creates the claim guard service.
func NewClaimService(claimRepo portsrepo.ClaimRepository, ledgerRepo portsrepo.LedgerRepository, withdrawalRepo portsrepo.WithdrawalRepository, ledger portssvc.LedgerSvcFacade) portssvc.ClaimSvcFacade {
	return &claimService{
		claimRepo:      claimRepo,
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
	}
}

var _ portssvc.ClaimSvcFacade = (*claimService)(nil)

// ClaimRejectedTransaction credits a rejected or failed transaction back
// to its owner, at most once. The claim row insert is the idempotency
// gate: its unique (user, original transaction) constraint decides the
// race, everything after it is crediting and bookkeeping.
func (s *claimService) ClaimRejectedTransaction(ctx context.Context, userID, originalTransactionID string) (*domain.TransactionRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	original, err := s.ledgerRepo.FindTransactionByID(ctx, originalTransactionID)
	if err != nil {
		return nil, err
	}
	if original.AccountID != userID {
		return nil, apperrors.ErrNotFound
	}
	switch original.Status {
	case domain.TxnRejected, domain.TxnFailed:
	default:
		return nil, fmt.Errorf("transaction %s has status %s: %w", originalTransactionID, original.Status, apperrors.ErrNotClaimable)
	}

	claim := domain.ClaimRecord{
		ClaimID:               uuid.NewString(),
		UserID:                userID,
		OriginalTransactionID: originalTransactionID,
		Status:                domain.ClaimPending,
		CreatedAt:             now,
	}
	if err := s.claimRepo.CreateClaim(ctx, claim); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyClaimed) {
			logger.Info("Duplicate claim attempt",
				slog.String("user_id", userID),
				slog.String("original_transaction_id", originalTransactionID),
			)
		}
		return nil, err
	}

	credit, err := s.ledger.ApplyEffect(ctx, userID, domain.TypeClaim, original.Amount, domain.Correlation{
		OriginalTransactionID: originalTransactionID,
		WithdrawalID:          original.WithdrawalID,
		Details:               "claim of " + string(original.Status) + " transaction",
	}, userID)
	if err != nil {
		// The claim row stays: the guard blocks further attempts and the
		// pending row marks this claim for operator follow-up.
		logger.Error("Failed to credit claim, claim record left pending",
			slog.String("claim_id", claim.ClaimID),
			slog.String("original_transaction_id", originalTransactionID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := s.claimRepo.CompleteClaim(ctx, claim.ClaimID, credit.TransactionID); err != nil {
		logger.Warn("Failed to mark claim completed",
			slog.String("claim_id", claim.ClaimID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.ledgerRepo.MarkTransactionStatus(ctx, originalTransactionID,
		[]domain.TransactionStatus{domain.TxnRejected, domain.TxnFailed},
		domain.TxnClaimed, userID, now); err != nil {
		logger.Warn("Failed to mark original transaction claimed",
			slog.String("transaction_id", originalTransactionID),
			slog.String("error", err.Error()),
		)
	}

	// A claimed withdrawal debit resolves its withdrawal too.
	if original.WithdrawalID != "" {
		if err := s.withdrawalRepo.TransitionStatus(ctx, original.WithdrawalID,
			domain.WithdrawalRejected, domain.WithdrawalClaimed, "", userID, now); err != nil {
			logger.Warn("Failed to mark withdrawal claimed",
				slog.String("withdrawal_id", original.WithdrawalID),
				slog.String("error", err.Error()),
			)
		}
	}

	logger.Info("Transaction claimed",
		slog.String("claim_id", claim.ClaimID),
		slog.String("original_transaction_id", originalTransactionID),
		slog.String("credited", original.Amount.String()),
	)
	return credit, nil
}
