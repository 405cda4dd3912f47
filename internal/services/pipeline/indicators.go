package pipeline

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// ComputeIndicators returns a copy of bars with quote-currency volume and the
// MACD family populated.
//
// The EMA recurrence is seeded at the first element: EMA[0] = x[0],
// EMA[t] = alpha*x[t] + (1-alpha)*EMA[t-1] with alpha = 2/(span+1). Because
// the recurrence runs from the first element, bars must carry the full
// available history; truncating before this stage changes every subsequent
// value. Empty input yields empty output.
func ComputeIndicators(bars []domain.DailyBar, fastSpan, slowSpan, signalSpan int) ([]domain.DailyBar, error) {
	if fastSpan < 1 || slowSpan < 1 || signalSpan < 1 {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"ema spans must be positive, got %d/%d/%d", fastSpan, slowSpan, signalSpan)
	}
	if fastSpan >= slowSpan {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"fast span %d must be below slow span %d", fastSpan, slowSpan)
	}
	if len(bars) == 0 {
		return nil, nil
	}

	out := make([]domain.DailyBar, len(bars))
	copy(out, bars)

	closes := make([]float64, len(out))
	for i := range out {
		out[i].VolumeQuote = out[i].Volume * out[i].Close
		closes[i] = out[i].Close
	}

	fast := ema(closes, fastSpan)
	slow := ema(closes, slowSpan)

	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}
	signal := ema(macd, signalSpan)

	for i := range out {
		out[i].MACD = macd[i]
		out[i].Signal = signal[i]
		out[i].Histogram = macd[i] - signal[i]
	}

	return out, nil
}

// ema computes the exponential moving average of series for the given span,
// seeded at the first element.
func ema(series []float64, span int) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = series[0]
	for t := 1; t < len(series); t++ {
		out[t] = alpha*series[t] + (1-alpha)*out[t-1]
	}
	return out
}
