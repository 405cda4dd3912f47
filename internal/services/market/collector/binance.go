package collector

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// BinanceProvider implements ObservationProvider for Binance exchange.
type BinanceProvider struct {
	client *binance.Client
}

// NewBinanceProvider creates a new Binance observation provider.
func NewBinanceProvider(client *binance.Client) *BinanceProvider {
	return &BinanceProvider{client: client}
}

// GetObservations fetches kline data from Binance.
func (p *BinanceProvider) GetObservations(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Observation, error) {
	klines, err := p.client.NewKlinesService().
		Symbol(pair.Symbol()).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Binance for %s", pair.String())
	}

	result := make([]domain.Observation, len(klines))
	for i, k := range klines {
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

		result[i] = domain.Observation{
			Instant: time.Unix(0, k.CloseTime*int64(time.Millisecond)).UTC(),
			Open:    open,
			High:    high,
			Low:     low,
			Close:   close,
			Volume:  volume,
		}
	}

	return result, nil
}
