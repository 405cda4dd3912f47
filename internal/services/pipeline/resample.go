// Package pipeline implements the numeric core of the analytics pipeline:
// resampling raw observations into daily bars, EMA-based momentum indicators,
// percentile volume classification, quality reporting and momentum analysis.
// All stages are pure transformations over immutable input slices.
package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
)

// Resample aggregates raw observations into timezone-aligned daily bars.
//
// Buckets are right-closed and right-labeled: each bucket spans 24 hours
// ending at local midnight shifted by boundaryOffset, and an observation
// falling exactly on a boundary belongs to the bucket ending there. Calendar
// days without observations are synthesized from the previous close with zero
// volume, so the returned series has no gaps. Empty input yields empty output.
func Resample(observations []domain.Observation, boundaryOffset time.Duration, loc *time.Location) ([]domain.DailyBar, error) {
	if boundaryOffset < 0 || boundaryOffset >= 24*time.Hour {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"bucket boundary offset %s is not a sub-day duration", boundaryOffset)
	}
	if loc == nil {
		loc = time.UTC
	}
	if len(observations) == 0 {
		return nil, nil
	}

	type bucket struct {
		label                          time.Time
		open, high, low, close, volume float64
	}

	var buckets []bucket
	for _, obs := range observations {
		label := bucketLabel(obs.Instant.In(loc), boundaryOffset)
		if n := len(buckets); n > 0 && buckets[n-1].label.Equal(label) {
			b := &buckets[n-1]
			if obs.High > b.high {
				b.high = obs.High
			}
			if obs.Low < b.low {
				b.low = obs.Low
			}
			b.close = obs.Close
			b.volume += obs.Volume
			continue
		}
		buckets = append(buckets, bucket{
			label:  label,
			open:   obs.Open,
			high:   obs.High,
			low:    obs.Low,
			close:  obs.Close,
			volume: obs.Volume,
		})
	}

	bars := make([]domain.DailyBar, 0, len(buckets))
	for i, b := range buckets {
		if i > 0 {
			// fill missing calendar days from the previous close
			for next := nextDay(bars[len(bars)-1].Label, boundaryOffset); next.Before(b.label); next = nextDay(next, boundaryOffset) {
				prevClose := bars[len(bars)-1].Close
				bars = append(bars, domain.DailyBar{
					Label: next,
					Open:  prevClose,
					High:  prevClose,
					Low:   prevClose,
					Close: prevClose,
				})
			}
		}
		bars = append(bars, domain.DailyBar{
			Label:  b.label,
			Open:   b.open,
			High:   b.high,
			Low:    b.low,
			Close:  b.close,
			Volume: b.volume,
		})
	}

	return bars, nil
}

// bucketLabel returns the right edge of the daily bucket containing t.
// t must already be expressed in the target timezone.
func bucketLabel(t time.Time, offset time.Duration) time.Time {
	shifted := t.Add(-offset)
	year, month, day := shifted.Date()
	boundary := dayStart(year, month, day, t.Location())
	if shifted.Equal(boundary) {
		return boundary.Add(offset)
	}
	return dayStart(year, month, day+1, t.Location()).Add(offset)
}

// nextDay advances a bucket label by one calendar day, keeping the wall-clock
// boundary stable across DST transitions.
func nextDay(label time.Time, offset time.Duration) time.Time {
	year, month, day := label.Add(-offset).Date()
	return dayStart(year, month, day+1, label.Location()).Add(offset)
}

// dayStart returns the instant a calendar day begins in loc. When a DST
// transition removes local midnight, the day begins at the first wall clock
// that exists, so labels never drift onto the previous day.
func dayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	year, month, day = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if ty, tm, td := t.Date(); ty == year && tm == month && td == day {
		return t
	}
	// midnight was skipped, probe forward for the first existing wall clock
	for minute := 1; minute < 24*60; minute++ {
		t = time.Date(year, month, day, 0, minute, 0, 0, loc)
		if ty, tm, td := t.Date(); ty == year && tm == month && td == day {
			return t
		}
	}
	return t
}
