package domain

// QualityReport integrity counters for a resampled series. Immutable once
// produced.
type QualityReport struct {
	// MissingValues counts absent (NaN) field values across all bars.
	MissingValues int
	// DuplicateRows counts bars that are exact field-for-field duplicates
	// of an earlier bar, beyond the first occurrence.
	DuplicateRows int
	// ZeroVolumeDays counts bars with zero traded volume.
	ZeroVolumeDays int
	// PriceAnomalies counts bars where high < low or close > high.
	PriceAnomalies int
}
