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
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/finwallet/wallet_ledger/internal/utils/mapping"
	"github.com/finwallet/wallet_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for account and journal data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// SaveAccount inserts a new account row.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, balance, pending_balance, currency_code, allow_negative, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Balance,
		m.PendingBalance,
		m.CurrencyCode,
		m.AllowNegative,
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
		return apperrors.NewAppError(500, "failed to save account "+m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, balance, pending_balance, currency_code, allow_negative, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = $1;
	`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&m.AccountID,
		&m.Balance,
		&m.PendingBalance,
		&m.CurrencyCode,
		&m.AllowNegative,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ApplyTransaction applies the record's signed effect to its account within
// a single database transaction. The account row is locked for the duration
// so concurrent mutations of the same account serialize; the journal entry,
// balance-history entry and wallet projection commit together with the
// balance update or not at all.
func (r *PgxLedgerRepository) ApplyTransaction(ctx context.Context, record domain.TransactionRecord) (*domain.TransactionRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	applied, err := applyTransactionTx(ctx, tx, record)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return applied, nil
}

// applyTransactionTx runs the atomic apply inside an existing transaction
// so callers can combine it with other guarded writes that must commit
// with the balance effect.
func applyTransactionTx(ctx context.Context, tx pgx.Tx, record domain.TransactionRecord) (*domain.TransactionRecord, error) {
	// 1. Lock the account row and read the current balance.
	var balance decimal.Decimal
	var allowNegative bool
	var currencyCode string
	err := tx.QueryRow(ctx, `
		SELECT balance, allow_negative, currency_code
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`, record.AccountID).Scan(&balance, &allowNegative, &currencyCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock account "+record.AccountID, err)
	}

	oldBalance := fixedpoint.FromDecimal(balance)
	effect := record.SignedEffect()
	newBalance := oldBalance.Add(effect)

	// 2. Balance floor, re-checked under the lock.
	if newBalance.IsNegative() && !allowNegative {
		return nil, apperrors.ErrInsufficientBalance
	}

	now := record.Timestamp
	actor := record.CreatedBy

	// 3. Update the account balance.
	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, record.AccountID, newBalance.Decimal(), now, actor)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update balance for account "+record.AccountID, err)
	}

	// 4. Append the journal entry.
	record.BalanceAfter = newBalance
	m := mapping.ToModelTransaction(record)
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (transaction_id, account_id, type, amount, status, timestamp, withdrawal_id, original_transaction_id, details, balance_after, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		m.TransactionID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.Status,
		m.Timestamp,
		m.WithdrawalID,
		m.OriginalTransactionID,
		m.Details,
		m.BalanceAfter,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}

	// 5. Append the balance-history entry.
	_, err = tx.Exec(ctx, `
		INSERT INTO balance_history (entry_id, account_id, delta, old_balance, new_balance, type, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
		uuid.NewString(),
		record.AccountID,
		effect.Decimal(),
		oldBalance.Decimal(),
		newBalance.Decimal(),
		m.Type,
		now,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert balance history for account "+record.AccountID, err)
	}

	// 6. Keep the externally mirrored projection in sync.
	_, err = tx.Exec(ctx, `
		INSERT INTO wallet_projections (account_id, balance, currency_code, last_synced_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET balance = EXCLUDED.balance, last_synced_at = EXCLUDED.last_synced_at;
	`, record.AccountID, newBalance.Decimal(), currencyCode, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert wallet projection for account "+record.AccountID, err)
	}

	return &record, nil
}

// RecordTransaction appends a journal entry that carries no balance effect.
func (r *PgxLedgerRepository) RecordTransaction(ctx context.Context, record domain.TransactionRecord) error {
	m := mapping.ToModelTransaction(record)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO transactions (transaction_id, account_id, type, amount, status, timestamp, withdrawal_id, original_transaction_id, details, balance_after, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		m.TransactionID,
		m.AccountID,
		m.Type,
		m.Amount,
		m.Status,
		m.Timestamp,
		m.WithdrawalID,
		m.OriginalTransactionID,
		m.Details,
		m.BalanceAfter,
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
		return apperrors.NewAppError(500, "failed to record transaction "+m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a journal entry by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, account_id, type, amount, status, timestamp, withdrawal_id, original_transaction_id, details, balance_after, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// MarkTransactionStatus transitions a journal record's status guarded by
// the expected source statuses.
func (r *PgxLedgerRepository) MarkTransactionStatus(ctx context.Context, transactionID string, from []domain.TransactionStatus, to domain.TransactionStatus, updatedBy string, at time.Time) error {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = ANY($5);
	`, transactionID, string(to), at, updatedBy, fromStrs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidStateTransition
	}
	return nil
}

// ListEffectiveTransactionsByAccount returns every journal entry whose
// effect was applied to the balance, oldest first. COMPLETED entries
// applied at creation; REFUNDED entries are applied debits whose
// withdrawal was later refunded by a separate credit entry.
func (r *PgxLedgerRepository) ListEffectiveTransactionsByAccount(ctx context.Context, accountID string) ([]domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, account_id, type, amount, status, timestamp, withdrawal_id, original_transaction_id, details, balance_after, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE account_id = $1 AND status IN ('COMPLETED', 'REFUNDED')
		ORDER BY timestamp, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal for account "+accountID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransactionRows(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows for account "+accountID, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

// ListTransactionsByAccount retrieves a page of journal entries for an
// account using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to decide whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, account_id, type, amount, status, timestamp, withdrawal_id, original_transaction_id, details, balance_after, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY timestamp DESC, transaction_id DESC`

	args := []interface{}{accountID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastTS, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (timestamp, transaction_id) < ($2, $3)`
		args = append(args, lastTS, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransactionRows(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := ms
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.TransactionID)
		nextTokenVal = &token
		results = ms[:limit]
	}
	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionRow(row rowScanner) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Type,
		&m.Amount,
		&m.Status,
		&m.Timestamp,
		&m.WithdrawalID,
		&m.OriginalTransactionID,
		&m.Details,
		&m.BalanceAfter,
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

func scanTransactionRows(rows pgx.Rows) (*models.Transaction, error) {
	return scanTransactionRow(rows)
}
