// Package analysis provides supplemental market readings on top of the core
// pipeline output. It uses the cinar/indicator library for RSI; the MACD
// family stays inside the core pipeline because its seeded recurrence must
// match the resampled series exactly.
package analysis

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"go.uber.org/zap"
)

const rsiPeriod = 14

// TrendDirection qualitative direction of momentum.
type TrendDirection string

const (
	TrendDirectionBullish TrendDirection = "bullish"
	TrendDirectionBearish TrendDirection = "bearish"
	TrendDirectionNeutral TrendDirection = "neutral"
)

// Title returns a human-readable representation.
func (t TrendDirection) Title() string {
	switch t {
	case TrendDirectionBullish:
		return "Bullish"
	case TrendDirectionBearish:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// Summary headline reading of the most recent bar.
type Summary struct {
	LastClose float64
	RSI14     float64
	Trend     TrendDirection
}

// MarketAnalyzer derives summary readings from a daily bar series.
type MarketAnalyzer struct {
	logger *zap.Logger
}

// NewMarketAnalyzer creates a new MarketAnalyzer instance.
func NewMarketAnalyzer(logger *zap.Logger) *MarketAnalyzer {
	return &MarketAnalyzer{logger: logger}
}

// Summarize computes the headline reading for the latest bar. Bars must
// already carry indicator values from the core pipeline.
func (m *MarketAnalyzer) Summarize(bars []domain.DailyBar) (Summary, error) {
	if len(bars) < rsiPeriod+1 {
		return Summary{}, errors.Errorf(
			"not enough data points for RSI%d: need %d, got %d", rsiPeriod, rsiPeriod+1, len(bars))
	}

	rsi := momentum.NewRsiWithPeriod[float64](rsiPeriod)
	rsiValues := helper.ChanToSlice(rsi.Compute(helper.SliceToChan(domain.Closes(bars))))
	if len(rsiValues) == 0 {
		return Summary{}, errors.New("rsi computation returned no values")
	}

	last := bars[len(bars)-1]
	summary := Summary{
		LastClose: last.Close,
		RSI14:     rsiValues[len(rsiValues)-1],
		Trend:     trendOf(last),
	}

	m.logger.Debug("market summary",
		zap.Float64("close", summary.LastClose),
		zap.Float64("rsi14", summary.RSI14),
		zap.String("trend", string(summary.Trend)))

	return summary, nil
}

func trendOf(bar domain.DailyBar) TrendDirection {
	switch {
	case bar.MACD > 0 && bar.Histogram > 0:
		return TrendDirectionBullish
	case bar.MACD < 0 && bar.Histogram < 0:
		return TrendDirectionBearish
	default:
		return TrendDirectionNeutral
	}
}
