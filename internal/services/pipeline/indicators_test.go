package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

func barsWithCloses(closes ...float64) []domain.DailyBar {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = domain.DailyBar{
			Label:  day.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
		}
	}
	return bars
}

func TestEma_SeededRecurrence(t *testing.T) {
	// span 2 gives alpha 2/3: [10, 10.667, 11.556]
	got := ema([]float64{10, 11, 12}, 2)
	require.Len(t, got, 3)
	assert.Equal(t, 10.0, got[0])
	assert.InDelta(t, 10.666667, got[1], 1e-6)
	assert.InDelta(t, 11.555556, got[2], 1e-6)
}

func TestComputeIndicators(t *testing.T) {
	bars := barsWithCloses(10, 11, 12, 11, 13, 14, 12, 15)

	out, err := ComputeIndicators(bars, 3, 5, 2)
	require.NoError(t, err)
	require.Len(t, out, len(bars))

	closes := domain.Closes(bars)
	fast := ema(closes, 3)
	slow := ema(closes, 5)

	for i := range out {
		assert.Equal(t, fast[i]-slow[i], out[i].MACD, "macd is fast minus slow ema")
		assert.Equal(t, out[i].MACD-out[i].Signal, out[i].Histogram)
		assert.Equal(t, out[i].Volume*out[i].Close, out[i].VolumeQuote)
	}
	assert.Equal(t, out[0].MACD, out[0].Signal, "signal ema is seeded at the first macd value")
}

func TestComputeIndicators_Deterministic(t *testing.T) {
	bars := barsWithCloses(100, 101.5, 99.25, 102, 98, 103.125, 104, 101)

	first, err := ComputeIndicators(bars, 12, 26, 9)
	require.NoError(t, err)
	second, err := ComputeIndicators(bars, 12, 26, 9)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical floating-point results on identical input")
}

func TestComputeIndicators_DoesNotMutateInput(t *testing.T) {
	bars := barsWithCloses(10, 11, 12)
	snapshot := append([]domain.DailyBar(nil), bars...)

	_, err := ComputeIndicators(bars, 2, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, snapshot, bars)
}

func TestComputeIndicators_EmptyInput(t *testing.T) {
	out, err := ComputeIndicators(nil, 12, 26, 9)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestComputeIndicators_InvalidSpans(t *testing.T) {
	bars := barsWithCloses(10, 11)

	for _, spans := range [][3]int{{0, 26, 9}, {12, 0, 9}, {12, 26, -1}, {26, 12, 9}, {12, 12, 9}} {
		_, err := ComputeIndicators(bars, spans[0], spans[1], spans[2])
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	}
}
