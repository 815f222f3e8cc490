package services

import (
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates portssvc.RateProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger service is the single balance mutator; every other
	// service routes its money movement through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo, notifier)

	container.Withdrawal = NewWithdrawalService(cfg, repos.WithdrawalRepo, container.Ledger, rates, notifier)
	container.Claim = NewClaimService(repos.ClaimRepo, repos.LedgerRepo, repos.WithdrawalRepo, container.Ledger)
	container.Referral = NewReferralService(cfg, repos.ReferralRepo, repos.LedgerRepo, repos.Pinger, container.Ledger)
	container.Reconciliation = NewReconciliationService(repos.LedgerRepo)

	return container
}
