package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// LedgerSvcFacade is the balance mutator: the single path through which
// any balance-affecting event enters the ledger.
type LedgerSvcFacade interface {
	// EnsureAccount returns the account, creating it with a zero balance on
	// first use.
	EnsureAccount(ctx context.Context, accountID, currencyCode string) (*domain.Account, error)

	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ApplyEffect validates amount > 0, derives the effect's sign from the
	// transaction type, applies it atomically (account mutation + journal
	// append + projection update) and dispatches a best-effort notification
	// after commit. Transient write conflicts are retried internally.
	ApplyEffect(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error)

	// RecordEvent appends a journal entry without touching the balance.
	// Only non-applied statuses (PENDING, FAILED, REJECTED) are accepted;
	// applied entries must go through ApplyEffect.
	RecordEvent(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, status domain.TransactionStatus, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error)

	GetTransaction(ctx context.Context, transactionID string) (*domain.TransactionRecord, error)

	ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)
}
