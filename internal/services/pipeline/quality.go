package pipeline

import (
	"math"

	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// Report computes integrity counters over a resampled series. Total and
// deterministic: an empty series yields all-zero counts.
func Report(bars []domain.DailyBar) domain.QualityReport {
	var rep domain.QualityReport
	seen := make(map[domain.DailyBar]struct{}, len(bars))

	for _, b := range bars {
		for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume, b.VolumeQuote, b.MACD, b.Signal, b.Histogram} {
			if math.IsNaN(v) {
				rep.MissingValues++
			}
		}

		if _, ok := seen[b]; ok {
			rep.DuplicateRows++
		} else {
			seen[b] = struct{}{}
		}

		if b.Volume == 0 {
			rep.ZeroVolumeDays++
		}
		if b.High < b.Low || b.Close > b.High {
			rep.PriceAnomalies++
		}
	}

	return rep
}
