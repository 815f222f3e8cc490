package repositories

import (
	"context"
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
)

// LedgerRepository persists accounts and the append-only journal. The
// account row, journal entry, balance-history entry and wallet projection
// are owned together: ApplyTransaction mutates all of them as one atomic
// unit or not at all.
type LedgerRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ApplyTransaction applies record's signed effect to its account inside
	// a single store transaction: locks the account row, re-checks the
	// balance floor, updates the balance, appends the journal entry and
	// balance-history entry, and upserts the wallet projection. Returns the
	// stored record with BalanceAfter populated.
	// Fails with apperrors.ErrInsufficientBalance when a debit would drive
	// the balance negative and the account does not allow it, and with
	// apperrors.ErrNotFound when the account does not exist.
	ApplyTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, error)

	// RecordTransaction appends a journal entry that carries no balance
	// effect: pending, failed or rejected events observed from outside the
	// ledger. These are the records the claim guard later makes claimable.
	RecordTransaction(ctx context.Context, record domain.TransactionRecord) error

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error)

	// MarkTransactionStatus transitions a journal record's status, guarded
	// by the expected source statuses. Zero matched rows fail with
	// apperrors.ErrInvalidStateTransition.
	MarkTransactionStatus(ctx context.Context, transactionID string, from []domain.TransactionStatus, to domain.TransactionStatus, updatedBy string, at time.Time) error

	// ListEffectiveTransactionsByAccount streams every journal entry that
	// contributed to the stored balance, in timestamp order with the
	// transaction ID as tie-breaker. Used by reconciliation.
	ListEffectiveTransactionsByAccount(ctx context.Context, accountID string) ([]domain.TransactionRecord, error)

	// ListTransactionsByAccount returns a page of journal entries, newest
	// first, with an opaque continuation token.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)
}
