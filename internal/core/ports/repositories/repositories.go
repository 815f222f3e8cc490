package repositories

import "context"

// Pinger reports store connectivity. The accrual batch checks it before
// each edge so a lost connection aborts the remainder cleanly.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RepositoryProvider bundles all repository implementations for wiring.
type RepositoryProvider struct {
	LedgerRepo     LedgerRepository
	WithdrawalRepo WithdrawalRepository
	ClaimRepo      ClaimRepository
	ReferralRepo   ReferralRepository
	Pinger         Pinger
}
