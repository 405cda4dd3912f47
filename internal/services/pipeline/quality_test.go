package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

func TestReport(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("zero volume and duplicate rows", func(t *testing.T) {
		dup := domain.DailyBar{Label: day.AddDate(0, 0, 1), Open: 5, High: 5, Low: 5, Close: 5, Volume: 5}

		bars := []domain.DailyBar{
			{Label: day, Open: 4, High: 5, Low: 4, Close: 5, Volume: 0},
			dup,
			dup,
		}

		rep := Report(bars)
		assert.Equal(t, 1, rep.ZeroVolumeDays)
		assert.Equal(t, 1, rep.DuplicateRows, "second identical row counts as duplicate")
		assert.Zero(t, rep.MissingValues)
		assert.Zero(t, rep.PriceAnomalies)
	})

	t.Run("rows differing only by label are not duplicates", func(t *testing.T) {
		bars := []domain.DailyBar{
			{Label: day, Open: 5, High: 5, Low: 5, Close: 5, Volume: 5},
			{Label: day.AddDate(0, 0, 1), Open: 5, High: 5, Low: 5, Close: 5, Volume: 5},
		}

		assert.Zero(t, Report(bars).DuplicateRows)
	})

	t.Run("missing values", func(t *testing.T) {
		bars := []domain.DailyBar{
			{Label: day, Open: math.NaN(), High: 2, Low: 1, Close: math.NaN(), Volume: 1},
		}

		assert.Equal(t, 2, Report(bars).MissingValues)
	})

	t.Run("price anomalies", func(t *testing.T) {
		bars := []domain.DailyBar{
			{Label: day, Open: 1, High: 1, Low: 2, Close: 1, Volume: 1},                   // high < low
			{Label: day.AddDate(0, 0, 1), Open: 1, High: 2, Low: 1, Close: 3, Volume: 1}, // close > high
			{Label: day.AddDate(0, 0, 2), Open: 1, High: 2, Low: 1, Close: 2, Volume: 1}, // fine
		}

		assert.Equal(t, 2, Report(bars).PriceAnomalies)
	})

	t.Run("empty series", func(t *testing.T) {
		assert.Equal(t, domain.QualityReport{}, Report(nil))
	})
}
