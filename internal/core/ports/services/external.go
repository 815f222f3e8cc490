package services

import (
	"context"

	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// RateProvider supplies market exchange rates for informational localized
// amounts. Implementations must never block ledger correctness: on any
// failure they return a configured fallback rate.
type RateProvider interface {
	GetRate(ctx context.Context, base, quote string) (fixedpoint.Amount, error)
}

// NotificationEvent is what happened to an account, for best-effort
// outbound dispatch.
type NotificationEvent struct {
	Name       string
	Properties map[string]any
}

// Notifier dispatches account events. Callers treat failures as
// non-fatal: a notification must never abort or roll back a committed
// ledger mutation.
type Notifier interface {
	Notify(ctx context.Context, accountID string, event NotificationEvent) error
}
