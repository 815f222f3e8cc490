package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/finwallet/wallet_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReferralRepository struct {
	BaseRepository
}

// newPgxReferralRepository creates a new repository for referral edges.
func newPgxReferralRepository(pool *pgxpool.Pool) portsrepo.ReferralRepository {
	return &PgxReferralRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReferralRepository = (*PgxReferralRepository)(nil)

const referralColumns = `edge_id, referrer_id, referred_id, pending_earnings, last_claim_date, status, created_at, created_by, last_updated_at, last_updated_by`

// SaveEdge inserts a referral edge. referred_id is unique: a user has at
// most one referrer.
func (r *PgxReferralRepository) SaveEdge(ctx context.Context, edge domain.ReferralEdge) error {
	m := mapping.ToModelReferralEdge(edge)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO referral_edges (`+referralColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		m.EdgeID,
		m.ReferrerID,
		m.ReferredID,
		m.PendingEarnings,
		m.LastClaimDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save referral edge "+m.EdgeID, err)
	}
	return nil
}

// FindEdgeByReferred retrieves the edge for a referred user, if any.
func (r *PgxReferralRepository) FindEdgeByReferred(ctx context.Context, referredID string) (*domain.ReferralEdge, error) {
	m, err := scanReferralEdge(r.Pool.QueryRow(ctx, `
		SELECT `+referralColumns+` FROM referral_edges WHERE referred_id = $1;
	`, referredID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find referral edge for referred "+referredID, err)
	}
	d := mapping.ToDomainReferralEdge(*m)
	return &d, nil
}

// ListActiveEdges returns all active edges, oldest first. The accrual
// batch iterates this set.
func (r *PgxReferralRepository) ListActiveEdges(ctx context.Context) ([]domain.ReferralEdge, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+referralColumns+` FROM referral_edges WHERE status = 'ACTIVE' ORDER BY created_at;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query active referral edges", err)
	}
	defer rows.Close()
	return collectReferralEdges(rows)
}

// ListEdgesByReferrer returns all edges owned by a referrer.
func (r *PgxReferralRepository) ListEdgesByReferrer(ctx context.Context, referrerID string) ([]domain.ReferralEdge, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+referralColumns+` FROM referral_edges WHERE referrer_id = $1 ORDER BY created_at;
	`, referrerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query referral edges for referrer "+referrerID, err)
	}
	defer rows.Close()
	return collectReferralEdges(rows)
}

// AddPendingEarnings accumulates an accrual onto an edge.
func (r *PgxReferralRepository) AddPendingEarnings(ctx context.Context, edgeID string, delta fixedpoint.Amount, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE referral_edges
		SET pending_earnings = pending_earnings + $2, last_updated_at = $3
		WHERE edge_id = $1 AND status = 'ACTIVE';
	`, edgeID, delta.Decimal(), at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add pending earnings to edge "+edgeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CaptureEarningsForClaim atomically zeroes the pending earnings of an
// eligible edge and stamps the claim date, returning the amount captured.
// The self-join locks the row and reads the pre-update value in one
// statement, so two concurrent claims cannot both capture.
func (r *PgxReferralRepository) CaptureEarningsForClaim(ctx context.Context, edgeID string, cutoff time.Time, at time.Time) (fixedpoint.Amount, error) {
	var captured decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		UPDATE referral_edges AS e
		SET pending_earnings = 0, last_claim_date = $3, last_updated_at = $3
		FROM (
			SELECT edge_id, pending_earnings
			FROM referral_edges
			WHERE edge_id = $1 AND status = 'ACTIVE' AND pending_earnings > 0 AND last_claim_date <= $2
			FOR UPDATE
		) AS prev
		WHERE e.edge_id = prev.edge_id
		RETURNING prev.pending_earnings;
	`, edgeID, cutoff, at).Scan(&captured)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Not eligible: cooldown still running or nothing accrued.
			return fixedpoint.Zero, nil
		}
		return fixedpoint.Zero, apperrors.NewAppError(500, "failed to capture earnings for edge "+edgeID, err)
	}
	return fixedpoint.FromDecimal(captured), nil
}

// RestorePendingEarnings puts captured earnings back when crediting failed.
func (r *PgxReferralRepository) RestorePendingEarnings(ctx context.Context, edgeID string, amount fixedpoint.Amount, at time.Time) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE referral_edges
		SET pending_earnings = pending_earnings + $2, last_updated_at = $3
		WHERE edge_id = $1;
	`, edgeID, amount.Decimal(), at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to restore pending earnings to edge "+edgeID, err)
	}
	return nil
}

func scanReferralEdge(row rowScanner) (*models.ReferralEdge, error) {
	var m models.ReferralEdge
	err := row.Scan(
		&m.EdgeID,
		&m.ReferrerID,
		&m.ReferredID,
		&m.PendingEarnings,
		&m.LastClaimDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectReferralEdges(rows pgx.Rows) ([]domain.ReferralEdge, error) {
	var out []domain.ReferralEdge
	for rows.Next() {
		m, err := scanReferralEdge(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan referral edge row", err)
		}
		out = append(out, mapping.ToDomainReferralEdge(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating referral edge rows", err)
	}
	return out, nil
}
