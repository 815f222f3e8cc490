package services_test

import (
	"context"
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

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockLedgerRepository
	service   portssvc.ReconciliationSvcFacade
	accountID string
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockLedgerRepository)
	s.service = services.NewReconciliationService(s.mockRepo)
	s.accountID = uuid.NewString()
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}

func (s *ReconciliationServiceTestSuite) entries() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		{Type: domain.TypeDeposit, Amount: fixedpoint.FromInt(10), Status: domain.TxnCompleted},
		{Type: domain.TypeWithdrawal, Amount: fixedpoint.MustParse("2.5"), Status: domain.TxnCompleted},
		{Type: domain.TypeRefund, Amount: fixedpoint.MustParse("2.5"), Status: domain.TxnCompleted},
		{Type: domain.TypeWithdrawal, Amount: fixedpoint.FromInt(4), Status: domain.TxnCompleted},
	}
}

func (s *ReconciliationServiceTestSuite) TestConsistentAccount() {
	ctx := context.Background()

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(&domain.Account{
		AccountID: s.accountID,
		Balance:   fixedpoint.FromInt(6),
	}, nil).Once()
	s.mockRepo.On("ListEffectiveTransactionsByAccount", ctx, s.accountID).Return(s.entries(), nil).Once()

	result, err := s.service.Verify(ctx, s.accountID)

	s.Require().NoError(err)
	s.True(result.Consistent)
	s.Equal("6.000000000000000000", result.ComputedBalance)
	s.Equal("6.000000000000000000", result.StoredBalance)
	s.Equal(4, result.EntriesReplayed)
}

func (s *ReconciliationServiceTestSuite) TestMismatchIsReportedNotCorrected() {
	ctx := context.Background()

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(&domain.Account{
		AccountID: s.accountID,
		Balance:   fixedpoint.FromInt(7),
	}, nil).Once()
	s.mockRepo.On("ListEffectiveTransactionsByAccount", ctx, s.accountID).Return(s.entries(), nil).Once()

	result, err := s.service.Verify(ctx, s.accountID)

	s.Require().NoError(err)
	s.False(result.Consistent)
	s.Equal("7.000000000000000000", result.StoredBalance)
	s.Equal("6.000000000000000000", result.ComputedBalance)
	// No writes of any kind.
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
	s.mockRepo.AssertNotCalled(s.T(), "ApplyTransaction", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestEmptyJournalMatchesZeroBalance() {
	ctx := context.Background()

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(&domain.Account{
		AccountID: s.accountID,
		Balance:   fixedpoint.Zero,
	}, nil).Once()
	s.mockRepo.On("ListEffectiveTransactionsByAccount", ctx, s.accountID).Return([]domain.TransactionRecord{}, nil).Once()

	result, err := s.service.Verify(ctx, s.accountID)

	s.Require().NoError(err)
	s.True(result.Consistent)
	s.Equal(0, result.EntriesReplayed)
}

func (s *ReconciliationServiceTestSuite) TestUnknownAccount() {
	ctx := context.Background()

	s.mockRepo.On("FindAccountByID", ctx, s.accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Verify(ctx, s.accountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
