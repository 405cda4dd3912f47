package domain

import "time"

// DailyBar is one timezone-aligned daily bucket of the resampled series.
// Label marks the right edge of the bucket in the pipeline's target timezone.
// VolumeQuote, MACD, Signal and Histogram are populated by the indicator
// engine; until then they are zero.
type DailyBar struct {
	Label       time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	VolumeQuote float64
	MACD        float64
	Signal      float64
	Histogram   float64
}

// Closes extracts the close price series from bars.
func Closes(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// VolumeQuotes extracts the quote-currency volume series from bars.
func VolumeQuotes(bars []DailyBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.VolumeQuote
	}
	return out
}

// Tail returns the last n bars, or all bars if fewer are available.
func Tail(bars []DailyBar, n int) []DailyBar {
	if n <= 0 || len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}
