package domain

import "time"

// Observation is a single raw price/volume sample from a data source.
// Instant is the UTC timestamp of the sample. Sequences of observations are
// ordered ascending by Instant; duplicate instants are possible and are
// grouped into one bucket by the resampler.
type Observation struct {
	Instant time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  float64
}
