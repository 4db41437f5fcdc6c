// Package pagination encodes keyset cursors as opaque base64 tokens, so
// clients cannot depend on their contents.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken builds a cursor from a voucher date and creation time, the
// ordering key of voucher listings.
func EncodeToken(voucherDate time.Time, createdAt time.Time) string {
	raw := voucherDate.Format(timeFormat) + "|" + createdAt.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (voucherDate time.Time, createdAt time.Time, err error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: %w", err)
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: expected two fields")
	}

	voucherDate, err = time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token date: %w", err)
	}
	createdAt, err = time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token timestamp: %w", err)
	}
	return voucherDate, createdAt, nil
}
