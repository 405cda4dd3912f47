package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// BybitProvider implements ObservationProvider for Bybit exchange.
type BybitProvider struct {
	client *bybit.Client
}

// NewBybitProvider creates a new Bybit observation provider.
func NewBybitProvider(client *bybit.Client) *BybitProvider {
	return &BybitProvider{client: client}
}

// GetObservations fetches kline data from Bybit spot markets.
func (p *BybitProvider) GetObservations(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Observation, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	bybitInterval, err := convertIntervalToBybit(interval)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid interval: %s", interval)
	}
	dur, err := parseIntervalToDuration(interval)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid interval: %s", interval)
	}

	symbol := bybit.SymbolV5(pair.Symbol())

	const maxPerRequest = 200

	var allKlines []bybit.V5GetKlineItem
	remaining := limit

	// pages are requested newest to oldest; endCursor caps each page at one
	// millisecond before the oldest kline already fetched
	var endCursor *int64

	for remaining > 0 {
		batchSize := remaining
		if batchSize > maxPerRequest {
			batchSize = maxPerRequest
		}

		result, err := p.client.V5().Market().GetKline(bybit.V5GetKlineParam{
			Category: bybit.CategoryV5Spot,
			Symbol:   symbol,
			Interval: bybit.Interval(bybitInterval),
			End:      endCursor,
			Limit:    &batchSize,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", pair.String())
		}
		if result == nil {
			return nil, errors.Errorf("empty result from Bybit API for %s", pair.String())
		}

		klines := result.Result.List
		if len(klines) == 0 {
			break
		}

		allKlines = append(allKlines, klines...)

		// the list is newest first, so the last entry is the oldest
		oldest, err := parseTimestamp(klines[len(klines)-1].StartTime)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse start time for pagination")
		}
		cursor := oldest.UnixMilli() - 1
		endCursor = &cursor

		if len(klines) < batchSize {
			break
		}
		remaining -= len(klines)

		// avoid rate limiting by small delay between requests
		if remaining > 0 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	observations := make([]domain.Observation, len(allKlines))
	for i, k := range allKlines {
		startTime, err := parseTimestamp(k.StartTime)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse start time at index %d", i)
		}
		open, err := parseFloat(k.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
		high, err := parseFloat(k.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price at index %d", i)
		}
		low, err := parseFloat(k.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price at index %d", i)
		}
		close, err := parseFloat(k.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := parseFloat(k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		observations[i] = domain.Observation{
			// Bybit reports the bucket start only; the sample instant is
			// the bucket end.
			Instant: startTime.Add(dur).UTC(),
			Open:    open,
			High:    high,
			Low:     low,
			Close:   close,
			Volume:  volume,
		}
	}

	// Bybit returns newest first; downstream stages need ascending order.
	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Instant.Before(observations[j].Instant)
	})

	return dedupeByInstant(observations), nil
}

// dedupeByInstant drops repeated instants from an ascending-sorted slice,
// keeping the first sample. Overlapping pages would otherwise feed the same
// kline into the resampler twice, inflating aggregated volume.
func dedupeByInstant(observations []domain.Observation) []domain.Observation {
	out := observations[:0]
	for _, o := range observations {
		if n := len(out); n > 0 && o.Instant.Equal(out[n-1].Instant) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// convertIntervalToBybit converts standard interval format to Bybit format.
// Standard format: "1m", "5m", "15m", "1h", "4h", "1d", etc.
// Bybit format: "1", "5", "15", "60", "240", "D", etc.
func convertIntervalToBybit(interval string) (string, error) {
	if len(interval) < 2 {
		return "", fmt.Errorf("invalid interval format: %s", interval)
	}

	unit := interval[len(interval)-1]
	numberPart := interval[:len(interval)-1]

	switch unit {
	case 'm':
		return numberPart, nil
	case 'h':
		var n int64
		for _, r := range numberPart {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("invalid interval number: %s", interval)
			}
			n = n*10 + int64(r-'0')
		}
		return fmt.Sprintf("%d", n*60), nil
	case 'd':
		return "D", nil
	case 'w':
		return "W", nil
	default:
		return "", fmt.Errorf("unsupported interval unit: %c", unit)
	}
}

// parseTimestamp converts a Bybit timestamp string (milliseconds) to time.Time.
func parseTimestamp(ts string) (time.Time, error) {
	if ts == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	var msec int64
	_, err := fmt.Sscanf(ts, "%d", &msec)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse timestamp: %s", ts)
	}

	return time.UnixMilli(msec), nil
}
