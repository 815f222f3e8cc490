package services_test

import (
	"context"
	"time"

	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerRepository) ApplyTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerRepository) RecordTransaction(ctx context.Context, record domain.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerRepository) MarkTransactionStatus(ctx context.Context, transactionID string, from []domain.TransactionStatus, to domain.TransactionStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, transactionID, from, to, updatedBy, at)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEffectiveTransactionsByAccount(ctx context.Context, accountID string) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionRecord), returnedNextToken, args.Error(2)
}

// --- Mock WithdrawalRepository ---
type MockWithdrawalRepository struct {
	mock.Mock
}

var _ portsrepo.WithdrawalRepository = (*MockWithdrawalRepository)(nil)

func (m *MockWithdrawalRepository) SaveWithdrawal(ctx context.Context, w domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) TransitionStatus(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, withdrawalID, from, to, reason, updatedBy, at)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) TransitionStatusAndRefund(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, refund domain.TransactionRecord, updatedBy string, at time.Time) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, withdrawalID, from, to, reason, refund, updatedBy, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockWithdrawalRepository) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Withdrawal), returnedNextToken, args.Error(2)
}

// --- Mock ClaimRepository ---
type MockClaimRepository struct {
	mock.Mock
}

var _ portsrepo.ClaimRepository = (*MockClaimRepository)(nil)

func (m *MockClaimRepository) CreateClaim(ctx context.Context, claim domain.ClaimRecord) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) CompleteClaim(ctx context.Context, claimID string, claimTransactionID string) error {
	args := m.Called(ctx, claimID, claimTransactionID)
	return args.Error(0)
}

func (m *MockClaimRepository) FindClaim(ctx context.Context, userID string, originalTransactionID string) (*domain.ClaimRecord, error) {
	args := m.Called(ctx, userID, originalTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRecord), args.Error(1)
}

// --- Mock ReferralRepository ---
type MockReferralRepository struct {
	mock.Mock
}

var _ portsrepo.ReferralRepository = (*MockReferralRepository)(nil)

func (m *MockReferralRepository) SaveEdge(ctx context.Context, edge domain.ReferralEdge) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *MockReferralRepository) FindEdgeByReferred(ctx context.Context, referredID string) (*domain.ReferralEdge, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralEdge), args.Error(1)
}

func (m *MockReferralRepository) ListActiveEdges(ctx context.Context) ([]domain.ReferralEdge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralEdge), args.Error(1)
}

func (m *MockReferralRepository) ListEdgesByReferrer(ctx context.Context, referrerID string) ([]domain.ReferralEdge, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralEdge), args.Error(1)
}

func (m *MockReferralRepository) AddPendingEarnings(ctx context.Context, edgeID string, delta fixedpoint.Amount, at time.Time) error {
	args := m.Called(ctx, edgeID, delta, at)
	return args.Error(0)
}

func (m *MockReferralRepository) CaptureEarningsForClaim(ctx context.Context, edgeID string, cutoff time.Time, at time.Time) (fixedpoint.Amount, error) {
	args := m.Called(ctx, edgeID, cutoff, at)
	return args.Get(0).(fixedpoint.Amount), args.Error(1)
}

func (m *MockReferralRepository) RestorePendingEarnings(ctx context.Context, edgeID string, amount fixedpoint.Amount, at time.Time) error {
	args := m.Called(ctx, edgeID, amount, at)
	return args.Error(0)
}

// --- Mock Pinger ---
type MockPinger struct {
	mock.Mock
}

var _ portsrepo.Pinger = (*MockPinger)(nil)

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, accountID string, event portssvc.NotificationEvent) error {
	args := m.Called(ctx, accountID, event)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

var _ portssvc.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) GetRate(ctx context.Context, base, quote string) (fixedpoint.Amount, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(fixedpoint.Amount), args.Error(1)
}

// --- Mock LedgerSvcFacade ---
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) EnsureAccount(ctx context.Context, accountID, currencyCode string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerSvc) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerSvc) ApplyEffect(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, txType, amount, corr, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerSvc) RecordEvent(ctx context.Context, accountID string, txType domain.TransactionType, amount fixedpoint.Amount, status domain.TransactionStatus, corr domain.Correlation, actorID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, txType, amount, status, corr, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerSvc) GetTransaction(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedgerSvc) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionRecord), returnedNextToken, args.Error(2)
}
