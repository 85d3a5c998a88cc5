package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeLedgerCursor creates a base64 encoded token pointing at the last ledger entry of a page.
// Entries are ordered by (demand_date, ledger id), so the pair is unique and stable.
func EncodeLedgerCursor(demandDate time.Time, ledgerID int64) string {
	return EncodeMultiFieldToken(demandDate.Format(dateFormat), strconv.FormatInt(ledgerID, 10))
}

// DecodeLedgerCursor parses a token produced by EncodeLedgerCursor.
func DecodeLedgerCursor(token string) (time.Time, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	demandDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (demand date parse): %w", err)
	}

	ledgerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || ledgerID <= 0 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (ledger id parse)")
	}

	return demandDate, ledgerID, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
