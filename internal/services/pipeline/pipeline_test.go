package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"go.uber.org/zap"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Lookback = 40
	cfg.DisplayPeriod = 7
	cfg.ReportPeriod = 20
	return cfg
}

// hourly observations over the given number of days with drifting price
func syntheticObservations(days int) []domain.Observation {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var out []domain.Observation
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h++ {
			instant := start.AddDate(0, 0, d).Add(time.Duration(h+1) * time.Hour)
			price := 100 + float64(d) + math.Sin(float64(h))
			out = append(out, domain.Observation{
				Instant: instant,
				Open:    price,
				High:    price + 1,
				Low:     price - 1,
				Close:   price + 0.5,
				Volume:  10 + float64(h%5),
			})
		}
	}
	return out
}

func TestPipeline_Run(t *testing.T) {
	p, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	result, err := p.Run(syntheticObservations(30))
	require.NoError(t, err)

	require.NotEmpty(t, result.Bars)
	for i := 1; i < len(result.Bars); i++ {
		assert.Equal(t, result.Bars[i-1].Label.AddDate(0, 0, 1), result.Bars[i].Label)
	}
	for _, b := range result.Bars {
		assert.Equal(t, b.Volume*b.Close, b.VolumeQuote)
	}

	assert.LessOrEqual(t, result.Thresholds.T0, result.Thresholds.T1)
	assert.LessOrEqual(t, result.Thresholds.T1, result.Thresholds.T2)
	assert.LessOrEqual(t, result.Thresholds.T2, result.Thresholds.T3)

	assert.Len(t, result.Classifications, 7)

	require.Contains(t, result.Shares, 7)
	require.Contains(t, result.Shares, 20)
	for _, shares := range result.Shares {
		total := 0.0
		for _, share := range shares {
			total += share
		}
		assert.InDelta(t, 100, total, 1e-9)
	}

	assert.Zero(t, result.Quality.MissingValues)
	assert.Zero(t, result.Quality.PriceAnomalies)
}

func TestPipeline_RunEmptyInput(t *testing.T) {
	p, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	result, err := p.Run(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Bars)
	assert.Empty(t, result.Signals)
}

func TestPipeline_RunDeterministic(t *testing.T) {
	p, err := New(testConfig(), zap.NewNop())
	require.NoError(t, err)

	observations := syntheticObservations(20)
	first, err := p.Run(observations)
	require.NoError(t, err)
	second, err := p.Run(observations)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNew_Validation(t *testing.T) {
	base := testConfig()

	t.Run("nil timezone", func(t *testing.T) {
		cfg := base
		cfg.Location = nil
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("offset beyond a day", func(t *testing.T) {
		cfg := base
		cfg.BucketOffset = 25 * time.Hour
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("bad percentile ranks", func(t *testing.T) {
		cfg := base
		cfg.PercentileRanks = []float64{90, 70, 30, 10}
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("bad spans", func(t *testing.T) {
		cfg := base
		cfg.SlowSpan = 0
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("fast span not below slow", func(t *testing.T) {
		cfg := base
		cfg.FastSpan = 26
		cfg.SlowSpan = 12
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})

	t.Run("bad periods", func(t *testing.T) {
		cfg := base
		cfg.DisplayPeriod = 0
		_, err := New(cfg, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	})
}
