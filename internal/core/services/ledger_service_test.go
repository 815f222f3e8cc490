package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/core/services"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockLedgerRepository
	mockNotifier *MockNotifier
	service      portssvc.LedgerSvcFacade
	accountID    string
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockLedgerRepository)
	s.mockNotifier = new(MockNotifier)
	s.service = services.NewLedgerService(s.mockRepo, s.mockNotifier)
	s.accountID = uuid.NewString()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestEnsureAccountCreatesOnFirstUse() {
	ctx := context.Background()

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.EnsureAccount(ctx, s.accountID, "USD")

	s.Require().NoError(err)
	s.Equal(s.accountID, account.AccountID)
	s.True(account.Balance.IsZero())
	s.Equal("USD", account.CurrencyCode)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestEnsureAccountResolvesCreationRace() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: s.accountID, Balance: fixedpoint.MustParse("5"), CurrencyCode: "USD"}

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(existing, nil).Once()

	account, err := s.service.EnsureAccount(ctx, s.accountID, "USD")

	s.Require().NoError(err)
	s.Equal("5.000000000000000000", account.Balance.String())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestApplyEffectRejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := s.service.ApplyEffect(ctx, s.accountID, domain.TypeDeposit, fixedpoint.Zero, domain.Correlation{}, s.accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyTransaction", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestApplyEffectRejectsUnknownType() {
	ctx := context.Background()

	_, err := s.service.ApplyEffect(ctx, s.accountID, domain.TransactionType("LOTTERY"), fixedpoint.FromInt(1), domain.Correlation{}, s.accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestApplyEffectAppliesAndNotifies() {
	ctx := context.Background()
	amount := fixedpoint.MustParse("10.5")

	s.mockRepo.On("ApplyTransaction", mock.Anything, mock.MatchedBy(func(r domain.TransactionRecord) bool {
		return r.AccountID == s.accountID &&
			r.Type == domain.TypeDeposit &&
			r.Amount.Equal(amount) &&
			r.Status == domain.TxnCompleted &&
			r.TransactionID != ""
	})).Return(&domain.TransactionRecord{
		TransactionID: uuid.NewString(),
		AccountID:     s.accountID,
		Type:          domain.TypeDeposit,
		Amount:        amount,
		Status:        domain.TxnCompleted,
		BalanceAfter:  amount,
	}, nil).Once()
	s.mockNotifier.On("Notify", mock.Anything, s.accountID, mock.AnythingOfType("services.NotificationEvent")).Return(nil).Once()

	record, err := s.service.ApplyEffect(ctx, s.accountID, domain.TypeDeposit, amount, domain.Correlation{}, s.accountID)

	s.Require().NoError(err)
	s.Equal("10.500000000000000000", record.BalanceAfter.String())
	s.mockRepo.AssertExpectations(s.T())
	s.mockNotifier.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestApplyEffectPropagatesInsufficientBalance() {
	ctx := context.Background()

	s.mockRepo.On("ApplyTransaction", mock.Anything, mock.AnythingOfType("domain.TransactionRecord")).Return(nil, apperrors.ErrInsufficientBalance).Once()

	_, err := s.service.ApplyEffect(ctx, s.accountID, domain.TypeWithdrawal, fixedpoint.FromInt(100), domain.Correlation{}, s.accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInsufficientBalance)
	// Business failures are not retried.
	s.mockRepo.AssertNumberOfCalls(s.T(), "ApplyTransaction", 1)
	s.mockNotifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestApplyEffectSwallowsNotifierFailure() {
	ctx := context.Background()
	amount := fixedpoint.FromInt(1)

	s.mockRepo.On("ApplyTransaction", mock.Anything, mock.AnythingOfType("domain.TransactionRecord")).Return(&domain.TransactionRecord{
		TransactionID: uuid.NewString(),
		AccountID:     s.accountID,
		Type:          domain.TypeDeposit,
		Amount:        amount,
		Status:        domain.TxnCompleted,
	}, nil).Once()
	s.mockNotifier.On("Notify", mock.Anything, s.accountID, mock.AnythingOfType("services.NotificationEvent")).Return(errors.New("analytics down")).Once()

	_, err := s.service.ApplyEffect(ctx, s.accountID, domain.TypeDeposit, amount, domain.Correlation{}, s.accountID)

	s.Require().NoError(err)
}

func (s *LedgerServiceTestSuite) TestRecordEventRejectsAppliedStatus() {
	ctx := context.Background()

	_, err := s.service.RecordEvent(ctx, s.accountID, domain.TypeDeposit, fixedpoint.FromInt(1), domain.TxnCompleted, domain.Correlation{}, s.accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "RecordTransaction", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestRecordEventAppendsWithoutBalanceEffect() {
	ctx := context.Background()
	amount := fixedpoint.MustParse("3.25")

	s.mockRepo.On("RecordTransaction", ctx, mock.MatchedBy(func(r domain.TransactionRecord) bool {
		return r.Status == domain.TxnRejected && r.Amount.Equal(amount)
	})).Return(nil).Once()

	record, err := s.service.RecordEvent(ctx, s.accountID, domain.TypeDeposit, amount, domain.TxnRejected, domain.Correlation{Details: "external deposit rejected"}, "system")

	s.Require().NoError(err)
	s.Equal(domain.TxnRejected, record.Status)
	s.NotEmpty(record.TransactionID)
	s.mockRepo.AssertExpectations(s.T())
}
