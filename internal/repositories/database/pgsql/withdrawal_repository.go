package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portsrepo "github.com/finwallet/wallet_ledger/internal/core/ports/repositories"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/mapping"
	"github.com/finwallet/wallet_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWithdrawalRepository struct {
	BaseRepository
}

// newPgxWithdrawalRepository creates a new repository for withdrawal data.
func newPgxWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepository {
	return &PgxWithdrawalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WithdrawalRepository = (*PgxWithdrawalRepository)(nil)

const withdrawalColumns = `withdrawal_id, account_id, gross_amount, fee, net_amount, destination, method, local_amount, exchange_rate_snapshot, local_currency_code, status, debit_transaction_id, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

// SaveWithdrawal inserts a new withdrawal row.
func (r *PgxWithdrawalRepository) SaveWithdrawal(ctx context.Context, w domain.Withdrawal) error {
	m := mapping.ToModelWithdrawal(w)

	query := `
		INSERT INTO withdrawals (` + withdrawalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WithdrawalID,
		m.AccountID,
		m.GrossAmount,
		m.Fee,
		m.NetAmount,
		m.Destination,
		m.Method,
		m.LocalAmount,
		m.ExchangeRateSnapshot,
		m.LocalCurrencyCode,
		m.Status,
		m.DebitTransactionID,
		m.RejectionReason,
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
		return apperrors.NewAppError(500, "failed to save withdrawal "+m.WithdrawalID, err)
	}
	return nil
}

// FindWithdrawalByID retrieves a withdrawal by its ID.
func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE withdrawal_id = $1;`

	m, err := scanWithdrawal(r.Pool.QueryRow(ctx, query, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find withdrawal "+withdrawalID, err)
	}
	d := mapping.ToDomainWithdrawal(*m)
	return &d, nil
}

// TransitionStatus performs a guarded status transition. The WHERE clause
// on the expected source status makes concurrent conflicting transitions
// impossible: exactly one wins, the rest match zero rows.
func (r *PgxWithdrawalRepository) TransitionStatus(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, updatedBy string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE withdrawals
		SET status = $3, rejection_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE withdrawal_id = $1 AND status = $2;
	`, withdrawalID, string(from), string(to), reason, at, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to transition withdrawal "+withdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// TransitionStatusAndRefund moves a withdrawal into a refunding terminal
// status and applies the refund credit in one database transaction. The
// guarded status update decides the race; losing it rolls everything
// back, so the refund runs at most once and a REJECTED or CANCELLED row
// always has its refund committed alongside it.
func (r *PgxWithdrawalRepository) TransitionStatusAndRefund(ctx context.Context, withdrawalID string, from, to domain.WithdrawalStatus, reason string, refund domain.TransactionRecord, updatedBy string, at time.Time) (*domain.TransactionRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE withdrawals
		SET status = $3, rejection_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE withdrawal_id = $1 AND status = $2;
	`, withdrawalID, string(from), string(to), reason, at, updatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to transition withdrawal "+withdrawalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrInvalidStateTransition
	}

	applied, err := applyTransactionTx(ctx, tx, refund)
	if err != nil {
		return nil, err
	}

	// The refunded debit must never be claimable on top of this credit.
	// The status filter makes the update a no-op if the row is not in the
	// applied state anymore.
	_, err = tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`, refund.OriginalTransactionID, string(domain.TxnRefunded), at, updatedBy, string(domain.TxnCompleted))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark debit refunded for withdrawal "+withdrawalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return applied, nil
}

// ListWithdrawalsByAccount retrieves a page of withdrawals using
// token-based pagination, newest first.
func (r *PgxWithdrawalRepository) ListWithdrawalsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Withdrawal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE account_id = $1`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastTS, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, withdrawal_id) < ($2, $3)`
		args = append(args, lastTS, lastID)
	}
	query += ` ORDER BY created_at DESC, withdrawal_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query withdrawals for account "+accountID, err)
	}
	defer rows.Close()

	var ms []models.Withdrawal
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan withdrawal row for account "+accountID, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating withdrawal rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := ms
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.WithdrawalID)
		nextTokenVal = &token
		results = ms[:limit]
	}

	out := make([]domain.Withdrawal, len(results))
	for i, m := range results {
		out[i] = mapping.ToDomainWithdrawal(m)
	}
	return out, nextTokenVal, nil
}

func scanWithdrawal(row rowScanner) (*models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(
		&m.WithdrawalID,
		&m.AccountID,
		&m.GrossAmount,
		&m.Fee,
		&m.NetAmount,
		&m.Destination,
		&m.Method,
		&m.LocalAmount,
		&m.ExchangeRateSnapshot,
		&m.LocalCurrencyCode,
		&m.Status,
		&m.DebitTransactionID,
		&m.RejectionReason,
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
