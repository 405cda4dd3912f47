package pipeline

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// DeriveThresholds computes four percentile cut points over window using
// linear-interpolation percentile estimation: rank = p/100*(n-1),
// interpolated between the bracketing order statistics.
//
// ranks must hold exactly four strictly increasing percentiles in [0, 100].
// An empty window yields ErrInsufficientData.
func DeriveThresholds(window []float64, ranks []float64) (domain.ThresholdSet, error) {
	if err := validateRanks(ranks); err != nil {
		return domain.ThresholdSet{}, err
	}
	if len(window) == 0 {
		return domain.ThresholdSet{}, errors.Wrap(domain.ErrInsufficientData, "empty threshold window")
	}

	sorted := append([]float64(nil), window...)
	sort.Float64s(sorted)

	return domain.ThresholdSet{
		T0: percentile(sorted, ranks[0]),
		T1: percentile(sorted, ranks[1]),
		T2: percentile(sorted, ranks[2]),
		T3: percentile(sorted, ranks[3]),
	}, nil
}

// Classify assigns a volume regime to value. The five bands partition the
// real line with boundaries closed on the upper side, so classification is
// total and exclusive for any value.
func Classify(value float64, ts domain.ThresholdSet) domain.VolumeClassification {
	var label domain.VolumeLabel
	switch {
	case value <= ts.T0:
		label = domain.VolumeVeryLow
	case value <= ts.T1:
		label = domain.VolumeLow
	case value <= ts.T2:
		label = domain.VolumeModerate
	case value <= ts.T3:
		label = domain.VolumeHigh
	default:
		label = domain.VolumeVeryHigh
	}
	return domain.VolumeClassification{
		Label:     label,
		ColorTag:  label.ColorTag(),
		Sentiment: label.Sentiment(),
	}
}

// ClassifySeries maps Classify over the quote-currency volume of each bar,
// producing a classification sequence parallel to bars.
func ClassifySeries(bars []domain.DailyBar, ts domain.ThresholdSet) []domain.VolumeClassification {
	out := make([]domain.VolumeClassification, len(bars))
	for i, b := range bars {
		out[i] = Classify(b.VolumeQuote, ts)
	}
	return out
}

// DistributionShares returns the percentage of values falling into each
// regime. Labels with zero occurrences are omitted; for non-empty input the
// percentages sum to 100 up to floating-point rounding.
func DistributionShares(values []float64, ts domain.ThresholdSet) map[domain.VolumeLabel]float64 {
	shares := make(map[domain.VolumeLabel]float64)
	if len(values) == 0 {
		return shares
	}
	counts := make(map[domain.VolumeLabel]int)
	for _, v := range values {
		counts[Classify(v, ts).Label]++
	}
	total := float64(len(values))
	for label, n := range counts {
		shares[label] = float64(n) / total * 100
	}
	return shares
}

func validateRanks(ranks []float64) error {
	if len(ranks) != 4 {
		return errors.Wrapf(domain.ErrInvalidConfiguration, "expected 4 percentile ranks, got %d", len(ranks))
	}
	for i, p := range ranks {
		if p < 0 || p > 100 {
			return errors.Wrapf(domain.ErrInvalidConfiguration, "percentile rank %v out of [0, 100]", p)
		}
		if i > 0 && ranks[i-1] >= p {
			return errors.Wrap(domain.ErrInvalidConfiguration, "percentile ranks must be strictly increasing")
		}
	}
	return nil
}

// percentile estimates the p-th percentile of sorted values by linear
// interpolation between the two bracketing order statistics.
func percentile(sorted []float64, p float64) float64 {
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[hi]-sorted[lo])
}
