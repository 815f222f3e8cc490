package repositories

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// ClaimRepository persists claim records. The unique constraint on
// (user_id, original_transaction_id) is the idempotency guard: CreateClaim
// maps a uniqueness conflict to apperrors.ErrAlreadyClaimed.
type ClaimRepository interface {
	CreateClaim(ctx context.Context, claim domain.ClaimRecord) error
	CompleteClaim(ctx context.Context, claimID string, claimTransactionID string) error
	FindClaim(ctx context.Context, userID string, originalTransactionID string) (*domain.ClaimRecord, error)
}
