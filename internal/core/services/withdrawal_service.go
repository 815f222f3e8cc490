package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/finwallet/wallet_ledger/internal/platform/config"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/finwallet/wallet_ledger/internal/utils/retry"
	"github.com/google/uuid"
)

type withdrawalService struct {
	withdrawalRepo portsrepo.WithdrawalRepository
	ledger         portssvc.LedgerSvcFacade
	rates          portssvc.RateProvider
	notifier       portssvc.Notifier
	retryCfg       retry.Config

	feePercent        fixedpoint.Amount
	feeOverrides      map[string]fixedpoint.Amount
	minAmount         fixedpoint.Amount
	localCurrencyCode string
}

// NewWithdrawalService creates the withdrawal lifecycle service.
func NewWithdrawalService(cfg *config.Config, repo portsrepo.WithdrawalRepository, ledger portssvc.LedgerSvcFacade, rates portssvc.RateProvider, notifier portssvc.Notifier) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		withdrawalRepo:    repo,
		ledger:            ledger,
		rates:             rates,
		notifier:          notifier,
		retryCfg:          retry.Default,
		feePercent:        cfg.WithdrawalFeePercent,
		feeOverrides:      cfg.WithdrawalFeeOverrides,
		minAmount:         cfg.WithdrawalMinAmount,
		localCurrencyCode: cfg.LocalCurrencyCode,
	}
}

// feeRateFor returns the fee rate for a payout method, falling back to
// the base percent when the method has no override.
func (s *withdrawalService) feeRateFor(method string) fixedpoint.Amount {
	if rate, ok := s.feeOverrides[method]; ok {
		return rate
	}
	return s.feePercent
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// Create debits the gross amount and records the withdrawal as PENDING.
// The fee rate depends on the payout method; the fee is computed once
// here and never recomputed. Reject and cancel refund the full gross
// amount, so create-then-reject round-trips the balance exactly.
func (s *withdrawalService) Create(ctx context.Context, userID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	gross, err := fixedpoint.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	if gross.LessThan(s.minAmount) {
		return nil, fmt.Errorf("amount %s is below the minimum %s: %w", gross.String(), s.minAmount.String(), apperrors.ErrValidation)
	}

	account, err := s.ledger.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	fee := gross.MulPercent(s.feeRateFor(req.Method))
	net := gross.Sub(fee)
	if !net.IsPositive() {
		return nil, fmt.Errorf("net amount after fee is not positive: %w", apperrors.ErrValidation)
	}

	// Informational only. The provider falls back internally, so this
	// cannot fail a creation.
	rate, err := s.rates.GetRate(ctx, account.CurrencyCode, s.localCurrencyCode)
	if err != nil {
		logger.Warn("Rate lookup failed, snapshotting zero rate", slog.String("error", err.Error()))
		rate = fixedpoint.Zero
	}
	localAmount := net.Mul(rate)

	now := time.Now().UTC()
	withdrawalID := uuid.NewString()

	debit, err := s.ledger.ApplyEffect(ctx, userID, domain.TypeWithdrawal, gross, domain.Correlation{
		WithdrawalID: withdrawalID,
		Details:      "withdrawal via " + req.Method,
	}, userID)
	if err != nil {
		return nil, err
	}

	w := domain.Withdrawal{
		WithdrawalID:         withdrawalID,
		AccountID:            userID,
		GrossAmount:          gross,
		Fee:                  fee,
		NetAmount:            net,
		Destination:          req.Destination,
		Method:               domain.WithdrawalMethod(req.Method),
		LocalAmount:          localAmount,
		ExchangeRateSnapshot: rate,
		LocalCurrencyCode:    s.localCurrencyCode,
		Status:               domain.WithdrawalPending,
		DebitTransactionID:   debit.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.withdrawalRepo.SaveWithdrawal(ctx, w); err != nil {
		// The debit already committed. Compensate so the user is not left
		// short with no withdrawal to show for it.
		logger.Error("Failed to save withdrawal after debit, refunding",
			slog.String("withdrawal_id", withdrawalID),
			slog.String("debit_transaction_id", debit.TransactionID),
			slog.String("error", err.Error()),
		)
		if _, refundErr := s.ledger.ApplyEffect(ctx, userID, domain.TypeRefund, gross, domain.Correlation{
			WithdrawalID:          withdrawalID,
			OriginalTransactionID: debit.TransactionID,
			Details:               "compensation for failed withdrawal creation",
		}, userID); refundErr != nil {
			logger.Error("Compensating refund failed, balance requires reconciliation",
				slog.String("withdrawal_id", withdrawalID),
				slog.String("error", refundErr.Error()),
			)
		}
		return nil, err
	}

	logger.Info("Withdrawal created",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("account_id", userID),
		slog.String("gross", gross.String()),
		slog.String("fee", fee.String()),
	)
	s.notify(ctx, userID, "withdrawal_created", map[string]any{
		"withdrawal_id": withdrawalID,
		"gross":         gross.String(),
		"net":           net.String(),
	})
	return &w, nil
}

// Approve finalizes a withdrawal. The money already left the balance at
// creation, so approval moves no funds.
func (s *withdrawalService) Approve(ctx context.Context, adminID, withdrawalID string) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	w, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	from := w.Status
	if from != domain.WithdrawalPending && from != domain.WithdrawalProcessing {
		return nil, fmt.Errorf("cannot approve withdrawal in status %s: %w", from, apperrors.ErrInvalidStateTransition)
	}
	if err := s.withdrawalRepo.TransitionStatus(ctx, withdrawalID, from, domain.WithdrawalCompleted, "", adminID, now); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal approved", slog.String("withdrawal_id", withdrawalID), slog.String("admin_id", adminID))
	s.notify(ctx, w.AccountID, "withdrawal_approved", map[string]any{"withdrawal_id": withdrawalID})

	return s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
}

// Reject refuses a pending withdrawal and refunds the gross amount. The
// status transition happens first: if it loses a race the refund never
// runs, so a withdrawal can be refunded at most once.
func (s *withdrawalService) Reject(ctx context.Context, adminID, withdrawalID, reason string) (*domain.Withdrawal, error) {
	return s.refundingTransition(ctx, withdrawalID, domain.WithdrawalRejected, reason, adminID, "withdrawal_rejected")
}

// Cancel lets the owner withdraw their own request before it is processed.
func (s *withdrawalService) Cancel(ctx context.Context, userID, withdrawalID string) (*domain.Withdrawal, error) {
	w, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if w.AccountID != userID {
		return nil, apperrors.ErrNotFound
	}
	return s.refundingTransition(ctx, withdrawalID, domain.WithdrawalCancelled, "", userID, "withdrawal_cancelled")
}

// refundingTransition moves a PENDING withdrawal to a refunding terminal
// status. The status transition, the refund credit and the debit's
// REFUNDED mark commit in one store transaction: a withdrawal can never
// be REJECTED or CANCELLED without its refund, and losing the transition
// race means the refund never happened.
func (s *withdrawalService) refundingTransition(ctx context.Context, withdrawalID string, to domain.WithdrawalStatus, reason, actorID, eventName string) (*domain.Withdrawal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	w, err := s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
	if err != nil {
		return nil, err
	}

	refund := domain.TransactionRecord{
		TransactionID:         uuid.NewString(),
		AccountID:             w.AccountID,
		Type:                  domain.TypeRefund,
		Amount:                w.GrossAmount,
		Status:                domain.TxnCompleted,
		Timestamp:             now,
		WithdrawalID:          withdrawalID,
		OriginalTransactionID: w.DebitTransactionID,
		Details:               "refund for " + string(to) + " withdrawal",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = retry.Do(ctx, logger, s.retryCfg, func(ctx context.Context) error {
		_, applyErr := s.withdrawalRepo.TransitionStatusAndRefund(ctx, withdrawalID, domain.WithdrawalPending, to, reason, refund, actorID, now)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Withdrawal refunded",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("status", string(to)),
		slog.String("amount", w.GrossAmount.String()),
	)
	s.notify(ctx, w.AccountID, eventName, map[string]any{
		"withdrawal_id": withdrawalID,
		"refunded":      w.GrossAmount.String(),
	})

	return s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
}

// MarkProcessing moves a pending withdrawal into PROCESSING while the
// payout rail executes.
func (s *withdrawalService) MarkProcessing(ctx context.Context, adminID, withdrawalID string) (*domain.Withdrawal, error) {
	now := time.Now().UTC()
	if err := s.withdrawalRepo.TransitionStatus(ctx, withdrawalID, domain.WithdrawalPending, domain.WithdrawalProcessing, "", adminID, now); err != nil {
		return nil, err
	}
	return s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
}

func (s *withdrawalService) Get(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	return s.withdrawalRepo.FindWithdrawalByID(ctx, withdrawalID)
}

func (s *withdrawalService) List(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.withdrawalRepo.ListWithdrawalsByAccount(ctx, userID, limit, nextToken)
}

func (s *withdrawalService) notify(ctx context.Context, accountID, name string, props map[string]any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, accountID, portssvc.NotificationEvent{Name: name, Properties: props}); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to dispatch notification",
			slog.String("event", name),
			slog.String("error", err.Error()),
		)
	}
}
