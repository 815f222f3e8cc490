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

type ClaimServiceTestSuite struct {
	suite.Suite
	mockClaimRepo      *MockClaimRepository
	mockLedgerRepo     *MockLedgerRepository
	mockWithdrawalRepo *MockWithdrawalRepository
	mockLedger         *MockLedgerSvc
	service            portssvc.ClaimSvcFacade
	userID             string
	originalID         string
}

func (s *ClaimServiceTestSuite) SetupTest() {
	s.mockClaimRepo = new(MockClaimRepository)
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockWithdrawalRepo = new(MockWithdrawalRepository)
	s.mockLedger = new(MockLedgerSvc)
	s.service = services.NewClaimService(s.mockClaimRepo, s.mockLedgerRepo, s.mockWithdrawalRepo, s.mockLedger)
	s.userID = uuid.NewString()
	s.originalID = uuid.NewString()
}

func TestClaimServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimServiceTestSuite))
}

func (s *ClaimServiceTestSuite) rejectedOriginal() *domain.TransactionRecord {
	return &domain.TransactionRecord{
		TransactionID: s.originalID,
		AccountID:     s.userID,
		Type:          domain.TypeDeposit,
		Amount:        fixedpoint.MustParse("7.5"),
		Status:        domain.TxnRejected,
	}
}

func (s *ClaimServiceTestSuite) TestClaimCreditsOnce() {
	ctx := context.Background()
	creditID := uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(s.rejectedOriginal(), nil).Once()
	s.mockClaimRepo.On("CreateClaim", ctx, mock.MatchedBy(func(c domain.ClaimRecord) bool {
		return c.UserID == s.userID && c.OriginalTransactionID == s.originalID && c.Status == domain.ClaimPending
	})).Return(nil).Once()
	s.mockLedger.On("ApplyEffect", ctx, s.userID, domain.TypeClaim, fixedpoint.MustParse("7.5"), mock.MatchedBy(func(c domain.Correlation) bool {
		return c.OriginalTransactionID == s.originalID
	}), s.userID).Return(&domain.TransactionRecord{TransactionID: creditID, Amount: fixedpoint.MustParse("7.5")}, nil).Once()
	s.mockClaimRepo.On("CompleteClaim", ctx, mock.AnythingOfType("string"), creditID).Return(nil).Once()
	s.mockLedgerRepo.On("MarkTransactionStatus", ctx, s.originalID, []domain.TransactionStatus{domain.TxnRejected, domain.TxnFailed}, domain.TxnClaimed, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	credit, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().NoError(err)
	s.Equal(creditID, credit.TransactionID)
	s.mockClaimRepo.AssertExpectations(s.T())
	s.mockLedger.AssertExpectations(s.T())
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *ClaimServiceTestSuite) TestSecondClaimIsBlocked() {
	ctx := context.Background()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(s.rejectedOriginal(), nil).Once()
	s.mockClaimRepo.On("CreateClaim", ctx, mock.AnythingOfType("domain.ClaimRecord")).Return(apperrors.ErrAlreadyClaimed).Once()

	_, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyClaimed)
	s.mockLedger.AssertNotCalled(s.T(), "ApplyEffect", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClaimServiceTestSuite) TestClaimRequiresOwnership() {
	ctx := context.Background()
	foreign := s.rejectedOriginal()
	foreign.AccountID = uuid.NewString()

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(foreign, nil).Once()

	_, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockClaimRepo.AssertNotCalled(s.T(), "CreateClaim", mock.Anything, mock.Anything)
}

func (s *ClaimServiceTestSuite) TestCompletedTransactionIsNotClaimable() {
	ctx := context.Background()
	completed := s.rejectedOriginal()
	completed.Status = domain.TxnCompleted

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(completed, nil).Once()

	_, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotClaimable)
	s.mockClaimRepo.AssertNotCalled(s.T(), "CreateClaim", mock.Anything, mock.Anything)
}

func (s *ClaimServiceTestSuite) TestRefundedTransactionIsNotClaimable() {
	ctx := context.Background()
	refunded := s.rejectedOriginal()
	refunded.Status = domain.TxnRefunded

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(refunded, nil).Once()

	_, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotClaimable)
}

func (s *ClaimServiceTestSuite) TestClaimedWithdrawalDebitResolvesWithdrawal() {
	ctx := context.Background()
	withdrawalID := uuid.NewString()
	creditID := uuid.NewString()
	original := s.rejectedOriginal()
	original.Type = domain.TypeWithdrawal
	original.WithdrawalID = withdrawalID

	s.mockLedgerRepo.On("FindTransactionByID", ctx, s.originalID).Return(original, nil).Once()
	s.mockClaimRepo.On("CreateClaim", ctx, mock.AnythingOfType("domain.ClaimRecord")).Return(nil).Once()
	s.mockLedger.On("ApplyEffect", ctx, s.userID, domain.TypeClaim, original.Amount, mock.AnythingOfType("domain.Correlation"), s.userID).
		Return(&domain.TransactionRecord{TransactionID: creditID}, nil).Once()
	s.mockClaimRepo.On("CompleteClaim", ctx, mock.AnythingOfType("string"), creditID).Return(nil).Once()
	s.mockLedgerRepo.On("MarkTransactionStatus", ctx, s.originalID, mock.Anything, domain.TxnClaimed, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockWithdrawalRepo.On("TransitionStatus", ctx, withdrawalID, domain.WithdrawalRejected, domain.WithdrawalClaimed, "", s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	_, err := s.service.ClaimRejectedTransaction(ctx, s.userID, s.originalID)

	s.Require().NoError(err)
	s.mockWithdrawalRepo.AssertExpectations(s.T())
}
