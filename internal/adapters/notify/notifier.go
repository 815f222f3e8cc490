// Package notify emits ledger lifecycle events to PostHog. Delivery is
// best effort: the ledger never rolls back a committed mutation because
// an event could not be sent.
package notify

import (
	"context"
	"log/slog"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/posthog/posthog-go"
)

// PosthogNotifier wraps the posthog.Client so callers never have to care
// whether analytics is configured.
type PosthogNotifier struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogNotifier creates a notifier. An empty API key yields a
// disabled notifier whose Notify is a no-op.
func NewPosthogNotifier(apiKey string, logger *slog.Logger) *PosthogNotifier {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, event notifications disabled")
		return &PosthogNotifier{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("failed to initialize PostHog client, event notifications disabled", slog.String("error", err.Error()))
		return &PosthogNotifier{logger: logger}
	}
	return &PosthogNotifier{client: client, logger: logger}
}

var _ portssvc.Notifier = (*PosthogNotifier)(nil)

// Notify enqueues an event keyed by the account it concerns.
func (n *PosthogNotifier) Notify(_ context.Context, accountID string, event portssvc.NotificationEvent) error {
	if n.client == nil {
		return nil
	}
	n.logger.Debug("enqueueing event",
		slog.String("account_id", accountID),
		slog.String("event", event.Name),
	)
	return n.client.Enqueue(posthog.Capture{
		DistinctId: accountID,
		Event:      event.Name,
		Properties: event.Properties,
	})
}

// Close flushes queued events. Safe to call on a disabled notifier.
func (n *PosthogNotifier) Close() {
	if n.client == nil {
		return
	}
	n.client.Close()
}
