package collector

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	hyperliquid "github.com/sonirico/go-hyperliquid"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// HyperliquidProvider implements ObservationProvider for Hyperliquid exchange.
type HyperliquidProvider struct {
	info *hyperliquid.Info
}

// NewHyperliquidProvider creates a new Hyperliquid observation provider.
func NewHyperliquidProvider(info *hyperliquid.Info) *HyperliquidProvider {
	return &HyperliquidProvider{info: info}
}

// GetObservations fetches candle data from Hyperliquid.
func (p *HyperliquidProvider) GetObservations(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Observation, error) {
	if p.info == nil {
		return nil, errors.New("hyperliquid info is nil")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	dur, err := parseIntervalToDuration(interval)
	if err != nil {
		return nil, err
	}

	endMs := time.Now().UnixMilli()
	// fetch a slightly wider window to account for bucket rounding
	startMs := endMs - (int64(limit)+2)*dur.Milliseconds()

	// Hyperliquid addresses markets by base coin name, e.g. "BTC"
	coin := strings.ToUpper(pair.From)

	candles, err := p.info.CandlesSnapshot(ctx, coin, interval, startMs, endMs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch candles from Hyperliquid for %s", coin)
	}

	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}

	observations := make([]domain.Observation, 0, len(candles))
	for i, c := range candles {
		open, err := parseFloat(c.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
		high, err := parseFloat(c.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price at index %d", i)
		}
		low, err := parseFloat(c.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price at index %d", i)
		}
		close, err := parseFloat(c.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := parseFloat(c.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		observations = append(observations, domain.Observation{
			Instant: time.UnixMilli(c.TimeClose).UTC(),
			Open:    open,
			High:    high,
			Low:     low,
			Close:   close,
			Volume:  volume,
		})
	}

	return observations, nil
}
