package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/dto"
)

// ReconciliationSvcFacade replays an account's journal and compares the
// result to the stored balance. Diagnostic only; never on the hot path.
type ReconciliationSvcFacade interface {
	Verify(ctx context.Context, accountID string) (*dto.ReconciliationResult, error)
}
