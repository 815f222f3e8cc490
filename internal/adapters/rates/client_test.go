package rates_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/finwallet/wallet_ledger/internal/adapters/rates"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, url string, ttl time.Duration) *rates.HTTPClient {
	t.Helper()
	return rates.NewHTTPClient(rates.Config{
		BaseURL:  url,
		Timeout:  200 * time.Millisecond,
		CacheTTL: ttl,
		Fallback: fixedpoint.MustParse("50000"),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetRateFetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "BTC", r.URL.Query().Get("base"))
		assert.Equal(t, "USD", r.URL.Query().Get("quote"))
		w.Write([]byte(`{"rate":"67123.45"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Minute)

	rate, err := c.GetRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, "67123.450000000000000000", rate.String())

	// Second call inside the TTL is served from cache.
	_, err = c.GetRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetRateFallsBackWhenUnreachable(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:1", time.Minute)

	rate, err := c.GetRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, "50000.000000000000000000", rate.String())
}

func TestGetRateFallsBackOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rate":"not a number"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Minute)
	rate, err := c.GetRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, "50000.000000000000000000", rate.String())
}

func TestGetRateFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, time.Minute)
	rate, err := c.GetRate(context.Background(), "BTC", "USD")
	require.NoError(t, err)
	assert.Equal(t, "50000.000000000000000000", rate.String())
}
