package repositories

import (
	"context"
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// WithdrawalRepository persists withdrawal requests.
type WithdrawalRepository interface {
	SaveWithdrawal(ctx context.Context, w domain.Withdrawal) error
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)

	// TransitionStatus moves a withdrawal from one status to another with a
	// conditional update. Zero matched rows fail with
	// apperrors.ErrInvalidStateTransition and have no side effects.
	TransitionStatus(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, updatedBy string, at time.Time) error

	// TransitionStatusAndRefund performs the guarded status transition,
	// applies the refund credit to the account, and marks the debit record
	// named by refund.OriginalTransactionID as REFUNDED, all in one
	// database transaction. Everything commits together or nothing does: a
	// refunding terminal status can never exist without its refund.
	TransitionStatusAndRefund(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, refund domain.TransactionRecord, updatedBy string, at time.Time) (*domain.TransactionRecord, error)

	// ListWithdrawalsByAccount returns a page of withdrawals, newest first,
	// with an opaque continuation token.
	ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error)
}
