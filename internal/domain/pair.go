// Package domain defines core data structures used throughout the analytics pipeline.
package domain

import (
	"fmt"
	"strings"
)

// Pair trading instrument pair.
type Pair struct {
	// From base currency symbol.
	From string
	// To quote currency symbol.
	To string
}

// ParsePair parses the "BASE_QUOTE" form, e.g. "BTC_USDT".
func ParsePair(s string) (Pair, error) {
	base, quote, ok := strings.Cut(s, "_")
	if !ok || base == "" || quote == "" {
		return Pair{}, fmt.Errorf("invalid pair %q, want BASE_QUOTE", s)
	}
	return Pair{From: base, To: quote}, nil
}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}
