package pgsql

import (
	"context"
	"errors"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClaimRepository struct {
	BaseRepository
}

// newPgxClaimRepository creates a new repository for claim records.
func newPgxClaimRepository(pool *pgxpool.Pool) portsrepo.ClaimRepository {
	return &PgxClaimRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClaimRepository = (*PgxClaimRepository)(nil)

// CreateClaim inserts a claim record. The unique constraint on
// (user_id, original_transaction_id) is the idempotency guard: a conflict
// means the transaction was already claimed, regardless of whether the
// earlier claim finished crediting.
func (r *PgxClaimRepository) CreateClaim(ctx context.Context, claim domain.ClaimRecord) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO claims (claim_id, user_id, original_transaction_id, claim_transaction_id, status, created_at)
		VALUES ($1, $2, $3, NULL, $4, $5);
	`,
		claim.ClaimID,
		claim.UserID,
		claim.OriginalTransactionID,
		string(claim.Status),
		claim.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrAlreadyClaimed
		}
		return apperrors.NewAppError(500, "failed to create claim for transaction "+claim.OriginalTransactionID, err)
	}
	return nil
}

// CompleteClaim marks a claim completed and links the credit transaction.
func (r *PgxClaimRepository) CompleteClaim(ctx context.Context, claimID string, claimTransactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE claims
		SET status = $2, claim_transaction_id = $3
		WHERE claim_id = $1;
	`, claimID, string(domain.ClaimCompleted), claimTransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete claim "+claimID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("claim " + claimID + " not found for update")
	}
	return nil
}

// FindClaim retrieves a claim by its unique (user, original transaction) key.
func (r *PgxClaimRepository) FindClaim(ctx context.Context, userID string, originalTransactionID string) (*domain.ClaimRecord, error) {
	var m models.Claim
	err := r.Pool.QueryRow(ctx, `
		SELECT claim_id, user_id, original_transaction_id, claim_transaction_id, status, created_at
		FROM claims
		WHERE user_id = $1 AND original_transaction_id = $2;
	`, userID, originalTransactionID).Scan(
		&m.ClaimID,
		&m.UserID,
		&m.OriginalTransactionID,
		&m.ClaimTransactionID,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find claim for transaction "+originalTransactionID, err)
	}
	d := mapping.ToDomainClaim(m)
	return &d, nil
}
