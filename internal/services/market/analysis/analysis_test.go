package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"go.uber.org/zap"
)

func seriesWithLast(n int, macd, histogram float64) []domain.DailyBar {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.DailyBar, n)
	for i := range bars {
		price := 100 + float64(i%7) + float64(i)/10
		bars[i] = domain.DailyBar{
			Label:  day.AddDate(0, 0, i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 10,
		}
	}
	bars[n-1].MACD = macd
	bars[n-1].Histogram = histogram
	return bars
}

func TestMarketAnalyzer_Summarize(t *testing.T) {
	analyzer := NewMarketAnalyzer(zap.NewNop())

	t.Run("computes rsi and trend", func(t *testing.T) {
		bars := seriesWithLast(40, 1.5, 0.3)

		summary, err := analyzer.Summarize(bars)
		require.NoError(t, err)

		assert.Equal(t, bars[len(bars)-1].Close, summary.LastClose)
		assert.GreaterOrEqual(t, summary.RSI14, 0.0)
		assert.LessOrEqual(t, summary.RSI14, 100.0)
		assert.Equal(t, TrendDirectionBullish, summary.Trend)
	})

	t.Run("bearish trend", func(t *testing.T) {
		summary, err := analyzer.Summarize(seriesWithLast(40, -1.5, -0.3))
		require.NoError(t, err)
		assert.Equal(t, TrendDirectionBearish, summary.Trend)
	})

	t.Run("neutral on mixed momentum", func(t *testing.T) {
		summary, err := analyzer.Summarize(seriesWithLast(40, 1.5, -0.3))
		require.NoError(t, err)
		assert.Equal(t, TrendDirectionNeutral, summary.Trend)
	})

	t.Run("too short series", func(t *testing.T) {
		_, err := analyzer.Summarize(seriesWithLast(10, 1, 1))
		assert.Error(t, err)
	})
}
