package pgsql

import (
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		LedgerRepo:     newPgxLedgerRepository(dbPool),
		WithdrawalRepo: newPgxWithdrawalRepository(dbPool),
		ClaimRepo:      newPgxClaimRepository(dbPool),
		ReferralRepo:   newPgxReferralRepository(dbPool),
		Pinger:         &base,
	}
}
