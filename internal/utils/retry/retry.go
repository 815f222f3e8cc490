// Package retry provides the single retryable-transaction helper used by
// every mutation call site. Only transient store write conflicts are
// retried; business-rule failures pass through untouched.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// Config bounds the retry loop.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Default is the policy for ledger mutations: base 1s exponential backoff,
// up to 5 attempts.
var Default = Config{MaxAttempts: 5, BaseDelay: time.Second}

// serialization_failure and deadlock_detected: the two SQLSTATEs that mean
// "same data raced, try again".
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
)

// IsConflict reports whether err is a transient write conflict worth retrying.
func IsConflict(err error) bool {
	if errors.Is(err, apperrors.ErrConcurrencyConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected
	}
	return false
}

// Do runs op, retrying with exponential backoff while it fails with a
// transient write conflict. Any other error returns immediately. When the
// attempt bound is exhausted the conflict is surfaced wrapped in
// apperrors.ErrConcurrencyConflict.
func Do(ctx context.Context, logger *slog.Logger, cfg Config, op func(ctx context.Context) error) error {
	if cfg.MaxAttempts <= 0 {
		cfg = Default
	}

	var lastErr error
	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !IsConflict(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		if logger != nil {
			logger.Warn("write conflict, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("error", lastErr.Error()),
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("%w: gave up after %d attempts: %v", apperrors.ErrConcurrencyConflict, cfg.MaxAttempts, lastErr)
}
