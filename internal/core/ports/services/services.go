package services

// ServiceContainer bundles every service facade for wiring into the
// handlers and background jobs.
type ServiceContainer struct {
	Ledger         LedgerSvcFacade
	Withdrawal     WithdrawalSvcFacade
	Claim          ClaimSvcFacade
	Referral       ReferralSvcFacade
	Reconciliation ReconciliationSvcFacade
}
