// Package collector fetches raw price/volume observations from exchange
// data sources. Observations are returned ordered ascending by instant, ready
// for the resampler; network failures surface to the caller, which decides
// whether to skip the instrument.
package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"github.com/vadiminshakov/marketpulse/pkg/retrier"
)

const fetchTimeout = 30 * time.Second

// ObservationProvider defines the interface for fetching raw observations.
type ObservationProvider interface {
	// GetObservations fetches up to limit historical samples for a pair.
	// interval is the sampling interval (e.g. "1m", "1h", "4h").
	GetObservations(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.Observation, error)
}

// Collector wraps an ObservationProvider with a timeout and retry policy.
// Retrying lives here, at the data-source boundary; the numeric core never
// retries or reaches across it.
type Collector struct {
	provider ObservationProvider
	pair     domain.Pair
	retry    *retrier.Retrier
}

// New creates a Collector for one instrument.
func New(provider ObservationProvider, pair domain.Pair, opts ...retrier.Option) *Collector {
	return &Collector{
		provider: provider,
		pair:     pair,
		retry:    retrier.New(opts...),
	}
}

// Fetch retrieves raw observations for the collector's pair.
func (c *Collector) Fetch(ctx context.Context, interval string, limit int) ([]domain.Observation, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	observations, err := retrier.DoWithData(c.retry, ctx, func(ctx context.Context) ([]domain.Observation, error) {
		return c.provider.GetObservations(ctx, c.pair, interval, limit)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch observations for %s", c.pair.String())
	}

	return observations, nil
}
