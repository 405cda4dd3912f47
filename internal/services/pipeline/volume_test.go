package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

var defaultRanks = []float64{10, 30, 70, 90}

func TestDeriveThresholds(t *testing.T) {
	t.Run("linear interpolation between order statistics", func(t *testing.T) {
		// n=10: rank(p) = p/100*9
		window := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

		ts, err := DeriveThresholds(window, defaultRanks)
		require.NoError(t, err)

		assert.InDelta(t, 1.9, ts.T0, 1e-9)
		assert.InDelta(t, 3.7, ts.T1, 1e-9)
		assert.InDelta(t, 7.3, ts.T2, 1e-9)
		assert.InDelta(t, 9.1, ts.T3, 1e-9)
	})

	t.Run("non-decreasing by construction", func(t *testing.T) {
		window := []float64{42, 7, 13, 99, 0.5, 7, 250, 18}

		ts, err := DeriveThresholds(window, defaultRanks)
		require.NoError(t, err)

		assert.LessOrEqual(t, ts.T0, ts.T1)
		assert.LessOrEqual(t, ts.T1, ts.T2)
		assert.LessOrEqual(t, ts.T2, ts.T3)
	})

	t.Run("single value window collapses all cut points", func(t *testing.T) {
		ts, err := DeriveThresholds([]float64{5}, defaultRanks)
		require.NoError(t, err)
		assert.Equal(t, domain.ThresholdSet{T0: 5, T1: 5, T2: 5, T3: 5}, ts)
	})

	t.Run("empty window", func(t *testing.T) {
		_, err := DeriveThresholds(nil, defaultRanks)
		assert.ErrorIs(t, err, domain.ErrInsufficientData)
	})

	t.Run("invalid ranks", func(t *testing.T) {
		window := []float64{1, 2, 3}
		for _, ranks := range [][]float64{
			{10, 30, 70},          // wrong count
			{10, 30, 30, 90},      // not strictly increasing
			{30, 10, 70, 90},      // decreasing
			{-5, 30, 70, 90},      // below range
			{10, 30, 70, 101},     // above range
			{10, 30, 70, 90, 95},  // too many
		} {
			_, err := DeriveThresholds(window, ranks)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration, "ranks %v", ranks)
		}
	})
}

func TestClassify(t *testing.T) {
	ts := domain.ThresholdSet{T0: 10, T1: 20, T2: 30, T3: 40}

	cases := []struct {
		value float64
		want  domain.VolumeLabel
	}{
		{-5, domain.VolumeVeryLow},
		{10, domain.VolumeVeryLow}, // boundary closed on the upper side
		{10.001, domain.VolumeLow},
		{20, domain.VolumeLow},
		{25, domain.VolumeModerate},
		{30, domain.VolumeModerate},
		{40, domain.VolumeHigh},
		{40.001, domain.VolumeVeryHigh},
	}
	for _, c := range cases {
		got := Classify(c.value, ts)
		assert.Equal(t, c.want, got.Label, "value %v", c.value)
		assert.Equal(t, c.want.ColorTag(), got.ColorTag)
		assert.Equal(t, c.want.Sentiment(), got.Sentiment)
	}
}

func TestClassify_DegenerateThresholds(t *testing.T) {
	// equal cut points still partition the line: exactly one label per value
	ts := domain.ThresholdSet{T0: 5, T1: 5, T2: 5, T3: 5}

	assert.Equal(t, domain.VolumeVeryLow, Classify(5, ts).Label)
	assert.Equal(t, domain.VolumeVeryHigh, Classify(5.1, ts).Label)
}

func TestClassifySeries(t *testing.T) {
	ts := domain.ThresholdSet{T0: 10, T1: 20, T2: 30, T3: 40}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	bars := []domain.DailyBar{
		{Label: day, VolumeQuote: 5},
		{Label: day.AddDate(0, 0, 1), VolumeQuote: 25},
		{Label: day.AddDate(0, 0, 2), VolumeQuote: 50},
	}

	got := ClassifySeries(bars, ts)
	require.Len(t, got, len(bars))
	assert.Equal(t, domain.VolumeVeryLow, got[0].Label)
	assert.Equal(t, domain.VolumeModerate, got[1].Label)
	assert.Equal(t, domain.VolumeVeryHigh, got[2].Label)
}

func TestDistributionShares(t *testing.T) {
	ts := domain.ThresholdSet{T0: 10, T1: 20, T2: 30, T3: 40}

	t.Run("percentages sum to 100", func(t *testing.T) {
		values := []float64{5, 15, 25, 35, 45, 26, 27}

		shares := DistributionShares(values, ts)

		total := 0.0
		for _, share := range shares {
			total += share
		}
		assert.InDelta(t, 100, total, 1e-9)
	})

	t.Run("zero-count labels omitted", func(t *testing.T) {
		shares := DistributionShares([]float64{5, 5, 45}, ts)

		require.Len(t, shares, 2)
		assert.InDelta(t, 66.666667, shares[domain.VolumeVeryLow], 1e-6)
		assert.InDelta(t, 33.333333, shares[domain.VolumeVeryHigh], 1e-6)
		_, ok := shares[domain.VolumeModerate]
		assert.False(t, ok)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		assert.Empty(t, DistributionShares(nil, ts))
	})
}
