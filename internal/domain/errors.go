package domain

import "errors"

// Sentinel errors of the core pipeline. Callers match them with errors.Is;
// call sites attach context with github.com/pkg/errors wrapping. Empty input
// is never an error: empty sequences propagate as empty results.
var (
	// ErrInvalidConfiguration reports a malformed bucket offset, timezone,
	// EMA span or percentile rank set.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInsufficientData reports an empty threshold window or fewer than
	// two bars supplied for momentum analysis.
	ErrInsufficientData = errors.New("insufficient data")
)
