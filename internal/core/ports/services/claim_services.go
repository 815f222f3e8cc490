package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// ClaimSvcFacade is the idempotency guard for re-claiming rejected or
// failed transactions: arbitrarily many retries, at most one credit.
type ClaimSvcFacade interface {
	ClaimRejectedTransaction(ctx context.Context, userID, originalTransactionID string) (*domain.TransactionRecord, error)
}
