package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/utils/retry"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastCfg = retry.Config{MaxAttempts: 5, BaseDelay: time.Millisecond}

func conflictErr() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
}

func TestRetriesConflictThenSucceeds(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), nil, fastCfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return conflictErr()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestBusinessErrorNotRetried(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), nil, fastCfg, func(ctx context.Context) error {
		calls++
		return apperrors.ErrInsufficientBalance
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	assert.Equal(t, 1, calls)
}

func TestExhaustionEscalatesToConcurrencyConflict(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), nil, fastCfg, func(ctx context.Context) error {
		calls++
		return conflictErr()
	})
	assert.ErrorIs(t, err, apperrors.ErrConcurrencyConflict)
	assert.Equal(t, 5, calls)
}

func TestDeadlockIsConflict(t *testing.T) {
	assert.True(t, retry.IsConflict(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, retry.IsConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, retry.IsConflict(errors.New("plain failure")))
}

func TestContextCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry.Do(ctx, nil, retry.Config{MaxAttempts: 5, BaseDelay: time.Minute}, func(ctx context.Context) error {
		return conflictErr()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
