package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/dto"
)

// WithdrawalSvcFacade orchestrates the withdrawal lifecycle. Every balance
// side effect is delegated to the ledger service.
type WithdrawalSvcFacade interface {
	Create(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error)
	Approve(ctx context.Context, adminID, withdrawalID string) (*domain.Withdrawal, error)
	Reject(ctx context.Context, adminID, withdrawalID, reason string) (*domain.Withdrawal, error)
	Cancel(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error)
	MarkProcessing(ctx context.Context, adminID, withdrawalID string) (*domain.Withdrawal, error)
	Get(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)
	List(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error)
}
