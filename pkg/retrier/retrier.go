// Package retrier provides exponential backoff with jitter for transient
// data-source failures.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = 1 * time.Second
	defaultMaxInterval     = 15 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxRetries      = 3
	defaultJitter          = 0.1
)

// Retrier retries an operation with exponentially growing, jittered pauses.
// The zero value is not usable; construct one with New.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
	maxRetries      int
	jitter          float64
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithInitialInterval sets the pause before the first retry.
func WithInitialInterval(d time.Duration) Option {
	return func(r *Retrier) { r.initialInterval = d }
}

// WithMaxInterval caps the pause between retries.
func WithMaxInterval(d time.Duration) Option {
	return func(r *Retrier) { r.maxInterval = d }
}

// WithMaxRetries sets how many retries follow the first attempt.
func WithMaxRetries(n int) Option {
	return func(r *Retrier) { r.maxRetries = n }
}

// New creates a Retrier with default values and optional overrides.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		multiplier:      defaultMultiplier,
		maxRetries:      defaultMaxRetries,
		jitter:          defaultJitter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn until it succeeds, the retry budget is spent, or ctx is done.
// The last error from fn is returned when the budget runs out.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	interval := r.initialInterval

	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == r.maxRetries {
			return err
		}
		if werr := r.wait(ctx, interval); werr != nil {
			return werr
		}
		interval = r.grow(interval)
	}
}

// wait sleeps for interval plus jitter, or returns early when ctx is done.
func (r *Retrier) wait(ctx context.Context, interval time.Duration) error {
	jittered := float64(interval) * (1 + (rand.Float64()*2-1)*r.jitter)
	if jittered < 0 {
		jittered = 0
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(jittered)):
		return nil
	}
}

func (r *Retrier) grow(interval time.Duration) time.Duration {
	next := time.Duration(float64(interval) * r.multiplier)
	if next > r.maxInterval {
		return r.maxInterval
	}
	return next
}

// DoWithData is Do for operations that produce a value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}
