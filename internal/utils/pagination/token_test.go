package pagination_test

import (
	"testing"
	"time"

	"github.com/finwallet/wallet_ledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	token := pagination.EncodeToken(ts, "txn-42")

	gotTS, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, "txn-42", gotID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}
