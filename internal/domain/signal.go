package domain

// MomentumSignal is a textual event derived from the two most recent bars.
type MomentumSignal string

const (
	SignalBullishCrossover           MomentumSignal = "bullish_crossover"
	SignalBearishCrossover           MomentumSignal = "bearish_crossover"
	SignalBullishZeroLineCrossover   MomentumSignal = "bullish_zero_line_crossover"
	SignalBearishZeroLineCrossover   MomentumSignal = "bearish_zero_line_crossover"
	SignalPotentialBullishDivergence MomentumSignal = "potential_bullish_divergence"
	SignalPotentialBearishDivergence MomentumSignal = "potential_bearish_divergence"
)

// Title returns a human-readable representation.
func (s MomentumSignal) Title() string {
	switch s {
	case SignalBullishCrossover:
		return "Bullish Crossover"
	case SignalBearishCrossover:
		return "Bearish Crossover"
	case SignalBullishZeroLineCrossover:
		return "Bullish Zero-Line Crossover"
	case SignalBearishZeroLineCrossover:
		return "Bearish Zero-Line Crossover"
	case SignalPotentialBullishDivergence:
		return "Potential Bullish Divergence"
	case SignalPotentialBearishDivergence:
		return "Potential Bearish Divergence"
	default:
		return string(s)
	}
}

// Description returns a one-line explanation of what the signal means.
func (s MomentumSignal) Description() string {
	switch s {
	case SignalBullishCrossover:
		return "MACD crossed above the signal line"
	case SignalBearishCrossover:
		return "MACD crossed below the signal line"
	case SignalBullishZeroLineCrossover:
		return "MACD crossed above zero"
	case SignalBearishZeroLineCrossover:
		return "MACD crossed below zero"
	case SignalPotentialBullishDivergence:
		return "price fell while momentum rose"
	case SignalPotentialBearishDivergence:
		return "price rose while momentum fell"
	default:
		return string(s)
	}
}
