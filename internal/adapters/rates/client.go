// Package rates implements the market-rate provider client. Rates are
// informational only: they feed the localized-amount fields on
// withdrawals, never the ledger's debit/credit math, so every failure
// mode degrades to a configured fallback rate instead of an error.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// Config holds the provider endpoint and degradation policy.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Fallback fixedpoint.Amount
}

type cachedRate struct {
	rate      fixedpoint.Amount
	fetchedAt time.Time
}

// HTTPClient fetches rates over HTTP with a short-lived cache.
type HTTPClient struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]cachedRate
}

// NewHTTPClient creates a rate provider client.
func NewHTTPClient(cfg Config, logger *slog.Logger) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		cache:  make(map[string]cachedRate),
	}
}

var _ portssvc.RateProvider = (*HTTPClient)(nil)

// GetRate returns the current base/quote rate, serving from cache within
// the TTL. Any provider failure returns the fallback rate with a nil
// error: callers must not distinguish a degraded provider from a live one.
func (c *HTTPClient) GetRate(ctx context.Context, base, quote string) (fixedpoint.Amount, error) {
	key := base + "/" + quote

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok && time.Since(entry.fetchedAt) < c.cfg.CacheTTL {
		c.mu.Unlock()
		return entry.rate, nil
	}
	c.mu.Unlock()

	rate, err := c.fetch(ctx, base, quote)
	if err != nil {
		c.logger.Warn("rate provider degraded, using fallback",
			slog.String("pair", key),
			slog.String("fallback", c.cfg.Fallback.String()),
			slog.String("error", err.Error()),
		)
		return c.cfg.Fallback, nil
	}

	c.mu.Lock()
	c.cache[key] = cachedRate{rate: rate, fetchedAt: time.Now()}
	c.mu.Unlock()
	return rate, nil
}

func (c *HTTPClient) fetch(ctx context.Context, base, quote string) (fixedpoint.Amount, error) {
	url := fmt.Sprintf("%s?base=%s&quote=%s", c.cfg.BaseURL, base, quote)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fixedpoint.Zero, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fixedpoint.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fixedpoint.Zero, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body struct {
		Rate string `json:"rate"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fixedpoint.Zero, fmt.Errorf("malformed rate provider response: %w", err)
	}

	rate, err := fixedpoint.Parse(body.Rate)
	if err != nil {
		return fixedpoint.Zero, fmt.Errorf("unparseable rate %q: %w", body.Rate, err)
	}
	if !rate.IsPositive() {
		return fixedpoint.Zero, fmt.Errorf("non-positive rate %q", body.Rate)
	}
	return rate, nil
}
