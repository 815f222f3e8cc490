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
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/finwallet/wallet_ledger/internal/utils/retry"
	"github.com/google/uuid"
)

type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepository
	notifier   portssvc.Notifier
	retryCfg   retry.Config
}

// NewLedgerService creates the balance mutator service.
func NewLedgerService(repo portsrepo.LedgerRepository, notifier portssvc.Notifier) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: repo,
		notifier:   notifier,
		retryCfg:   retry.Default,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// EnsureAccount returns the account, creating it with a zero balance on
// first use. A concurrent first use is resolved by re-reading after a
// duplicate insert.
func (s *ledgerService) EnsureAccount(ctx context.Context, accountID, currencyCode string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	fresh := domain.Account{
		AccountID:      accountID,
		Balance:        fixedpoint.Zero,
		PendingBalance: fixedpoint.Zero,
		CurrencyCode:   currencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     accountID,
			LastUpdatedAt: now,
			LastUpdatedBy: accountID,
		},
	}
	if err := s.ledgerRepo.SaveAccount(ctx, fresh); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Another request created it first; use theirs.
			return s.ledgerRepo.FindAccountByID(ctx, accountID)
		}
		logger.Error("Failed to create account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", accountID), slog.String("currency", currencyCode))
	return &fresh, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.ledgerRepo.FindAccountByID(ctx, accountID)
}

// ApplyEffect is the single path for any balance-affecting event: validate,
// build the journal record, apply it atomically with retries on transient
// write conflicts, then notify best-effort.
func (s *ledgerService) ApplyEffect(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if !txType.IsCredit() && !txType.IsDebit() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", txType, apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	record := domain.TransactionRecord{
		TransactionID:         uuid.NewString(),
		AccountID:             accountID,
		Type:                  txType,
		Amount:                amount,
		Status:                domain.TxnCompleted,
		Timestamp:             now,
		WithdrawalID:          corr.WithdrawalID,
		OriginalTransactionID: corr.OriginalTransactionID,
		Details:               corr.Details,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	var applied *domain.TransactionRecord
	err := retry.Do(ctx, logger, s.retryCfg, func(ctx context.Context) error {
		var applyErr error
		applied, applyErr = s.ledgerRepo.ApplyTransaction(ctx, record)
		return applyErr
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientBalance) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to apply transaction",
				slog.String("error", err.Error()),
				slog.String("account_id", accountID),
				slog.String("type", string(txType)),
			)
		}
		return nil, err
	}

	logger.Info("Transaction applied",
		slog.String("transaction_id", applied.TransactionID),
		slog.String("account_id", accountID),
		slog.String("type", string(txType)),
		slog.String("amount", amount.String()),
	)

	s.notify(ctx, accountID, "transaction_applied", map[string]any{
		"transaction_id": applied.TransactionID,
		"type":           string(txType),
		"amount":         amount.String(),
	})

	return applied, nil
}

// RecordEvent appends a journal entry without touching the balance. Only
// non-applied statuses are accepted here.
func (s *ledgerService) RecordEvent(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, status domain.TransactionStatus, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	switch status {
	case domain.TxnPending, domain.TxnFailed, domain.TxnRejected:
	default:
		return nil, fmt.Errorf("status %q cannot be recorded without a balance effect: %w", status, apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	record := domain.TransactionRecord{
		TransactionID:         uuid.NewString(),
		AccountID:             accountID,
		Type:                  txType,
		Amount:                amount,
		Status:                status,
		Timestamp:             now,
		WithdrawalID:          corr.WithdrawalID,
		OriginalTransactionID: corr.OriginalTransactionID,
		Details:               corr.Details,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.ledgerRepo.RecordTransaction(ctx, record); err != nil {
		logger.Error("Failed to record transaction event",
			slog.String("error", err.Error()),
			slog.String("account_id", accountID),
			slog.String("type", string(txType)),
		)
		return nil, err
	}

	logger.Info("Transaction event recorded",
		slog.String("transaction_id", record.TransactionID),
		slog.String("account_id", accountID),
		slog.String("status", string(status)),
	)
	return &record, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	return s.ledgerRepo.FindTransactionByID(ctx, transactionID)
}

func (s *ledgerService) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.ledgerRepo.ListTransactionsByAccount(ctx, accountID, limit, nextToken)
}

// notify dispatches best-effort; a failure is logged and swallowed.
func (s *ledgerService) notify(ctx context.Context, accountID, name string, props map[string]any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, accountID, portssvc.NotificationEvent{Name: name, Properties: props}); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to dispatch notification",
			slog.String("event", name),
			slog.String("account_id", accountID),
			slog.String("error", err.Error()),
		)
	}
}
