package errors

import (
	"math"
	"regexp"
	"strings"
)

// MaxSymbols bounds how many tickers a single request may name.
const MaxSymbols = 1000

// symbolRegex matches exchange tickers such as "AAPL", "BRK-B", "SAP.DE"
// or "^GSPC".
var symbolRegex = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.\-]{0,14}$`)

// ValidateSymbol checks that s is a plausible ticker symbol. Symbols are
// case-sensitive and must already be upper case; use NormalizeSymbol first
// for user input.
func ValidateSymbol(s string) error {
	if s == "" {
		return New(ErrCodeInvalidSymbol, "symbol cannot be empty")
	}
	if !symbolRegex.MatchString(s) {
		return New(ErrCodeInvalidSymbol, "invalid symbol: %q", s)
	}
	if strings.Contains(s, "..") {
		return New(ErrCodeInvalidSymbol, "invalid symbol: %q", s)
	}
	return nil
}

// ValidateSymbols validates every symbol and the list length.
func ValidateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return New(ErrCodeInvalidSymbol, "symbol list cannot be empty")
	}
	if len(symbols) > MaxSymbols {
		return New(ErrCodeInvalidSymbol, "too many symbols (%d, max %d)", len(symbols), MaxSymbols)
	}
	for _, s := range symbols {
		if err := ValidateSymbol(s); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeSymbol trims whitespace and upper-cases a user-supplied ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseSymbols splits a comma separated ticker list, normalizing each entry
// and dropping blanks.
func ParseSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := NormalizeSymbol(part); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// MaxDimension caps canvas sizes accepted from users.
const MaxDimension = 10000

// ValidateDimension checks that a canvas side is positive, finite and at
// most MaxDimension.
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidBox, "%s must be a positive number, got %v", name, v)
	}
	if v > MaxDimension {
		return New(ErrCodeInvalidBox, "%s too large (%v, max %d)", name, v, MaxDimension)
	}
	return nil
}
