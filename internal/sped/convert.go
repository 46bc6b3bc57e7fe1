package sped

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ProcessDate converts a SPED DDMMYYYY date string to ISO YYYY-MM-DD.
// Any input that is not exactly 8 characters yields "".
func ProcessDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) != 8 {
		return ""
	}
	return s[4:8] + "-" + s[2:4] + "-" + s[0:2]
}

// ProcessDateStrict is the audit-mode variant of ProcessDate: it
// returns an error instead of an empty string for malformed input.
func ProcessDateStrict(s string) (string, error) {
	out := ProcessDate(s)
	if out == "" {
		return "", fmt.Errorf("date %q is not in DDMMYYYY form", s)
	}
	return out, nil
}

// ParseDecimal converts a SPED numeric field (decimal comma, dot
// thousands: "1.234,56") to a decimal. Unparseable values coerce to
// zero; SPED exports are frequently hand-edited and a bad figure must
// not abort extraction.
func ParseDecimal(s string) decimal.Decimal {
	d, err := ParseDecimalStrict(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDecimalStrict parses a decimal-comma numeric field, returning an
// explicit error for anything unparseable. Empty input is an error in
// strict mode (lenient callers get zero from ParseDecimal instead).
func ParseDecimalStrict(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty numeric field")
	}
	normalized := strings.ReplaceAll(s, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("numeric field %q: %w", s, err)
	}
	return d, nil
}
