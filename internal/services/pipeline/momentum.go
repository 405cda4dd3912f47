package pipeline

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// AnalyzeMomentum inspects the two most recent bars and emits signal events
// in a fixed check order: signal-line crossover, zero-line crossover,
// divergence. The checks are independent, so zero, one or several signals may
// be emitted per call. Fewer than two bars yields ErrInsufficientData.
//
// Divergence is the literal two-point rule: price and MACD moving in opposite
// directions between the last two bars, with no magnitude floor or multi-bar
// confirmation.
func AnalyzeMomentum(bars []domain.DailyBar) ([]domain.MomentumSignal, error) {
	if len(bars) < 2 {
		return nil, errors.Wrapf(domain.ErrInsufficientData,
			"momentum analysis needs at least 2 bars, got %d", len(bars))
	}

	curr := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	var signals []domain.MomentumSignal

	if prev.MACD < prev.Signal && curr.MACD > curr.Signal {
		signals = append(signals, domain.SignalBullishCrossover)
	}
	if prev.MACD > prev.Signal && curr.MACD < curr.Signal {
		signals = append(signals, domain.SignalBearishCrossover)
	}

	if prev.MACD < 0 && curr.MACD > 0 {
		signals = append(signals, domain.SignalBullishZeroLineCrossover)
	}
	if prev.MACD > 0 && curr.MACD < 0 {
		signals = append(signals, domain.SignalBearishZeroLineCrossover)
	}

	if curr.Close > prev.Close && curr.MACD < prev.MACD {
		signals = append(signals, domain.SignalPotentialBearishDivergence)
	}
	if curr.Close < prev.Close && curr.MACD > prev.MACD {
		signals = append(signals, domain.SignalPotentialBullishDivergence)
	}

	return signals, nil
}
