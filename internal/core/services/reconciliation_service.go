package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

type reconciliationService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewReconciliationService creates the journal replay checker.
func NewReconciliationService(repo portsrepo.LedgerRepository) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{ledgerRepo: repo}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Verify replays every balance-affecting journal entry of an account from
// zero and compares the result to the stored balance. A mismatch is
// reported, never corrected: the journal is the source of truth and a
// divergent stored balance is a corruption signal for operators.
func (s *reconciliationService) Verify(ctx context.Context, accountID string) (*dto.ReconciliationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEffectiveTransactionsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	computed := fixedpoint.Zero
	for _, entry := range entries {
		computed = computed.Add(entry.SignedEffect())
	}

	consistent := computed.Equal(account.Balance)
	if !consistent {
		logger.Error("Balance mismatch detected",
			slog.String("account_id", accountID),
			slog.String("stored", account.Balance.String()),
			slog.String("computed", computed.String()),
			slog.Int("entries", len(entries)),
		)
	}

	return &dto.ReconciliationResult{
		AccountID:       accountID,
		Consistent:      consistent,
		StoredBalance:   account.Balance.String(),
		ComputedBalance: computed.String(),
		EntriesReplayed: len(entries),
	}, nil
}
