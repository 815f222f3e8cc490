// Package pagination implements opaque cursor tokens for keyset pagination
// over journal and withdrawal listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque cursor from the timestamp and tie-breaker ID
// of the last row included in a page.
func EncodeToken(ts time.Time, id string) string {
	raw := fmt.Sprintf("%s|%s", ts.Format(timeFormat), id)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor back into its timestamp and tie-breaker ID.
func DecodeToken(token string) (time.Time, string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (missing separator)")
	}
	ts, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token (timestamp parse): %w", err)
	}
	return ts, parts[1], nil
}
