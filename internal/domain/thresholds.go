package domain

// ThresholdSet holds four percentile cut points separating the five volume
// regimes. Non-decreasing by construction: T0 <= T1 <= T2 <= T3.
type ThresholdSet struct {
	T0 float64
	T1 float64
	T2 float64
	T3 float64
}
