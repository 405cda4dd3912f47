package domain

// VolumeLabel qualitative volume regime.
type VolumeLabel string

const (
	VolumeVeryLow  VolumeLabel = "very_low"
	VolumeLow      VolumeLabel = "low"
	VolumeModerate VolumeLabel = "moderate"
	VolumeHigh     VolumeLabel = "high"
	VolumeVeryHigh VolumeLabel = "very_high"
)

// Title returns a human-readable representation.
func (l VolumeLabel) Title() string {
	switch l {
	case VolumeVeryLow:
		return "Very Low"
	case VolumeLow:
		return "Low"
	case VolumeModerate:
		return "Moderate"
	case VolumeHigh:
		return "High"
	case VolumeVeryHigh:
		return "Very High"
	default:
		return string(l)
	}
}

// ColorTag returns the presentation color associated with the regime.
func (l VolumeLabel) ColorTag() string {
	switch l {
	case VolumeVeryLow:
		return "blue"
	case VolumeLow:
		return "cyan"
	case VolumeModerate:
		return "gray"
	case VolumeHigh:
		return "orange"
	case VolumeVeryHigh:
		return "red"
	default:
		return "gray"
	}
}

// Sentiment returns a short textual reading of the regime.
func (l VolumeLabel) Sentiment() string {
	switch l {
	case VolumeVeryLow:
		return "very thin trading interest"
	case VolumeLow:
		return "below-average trading interest"
	case VolumeModerate:
		return "typical trading activity"
	case VolumeHigh:
		return "elevated trading interest"
	case VolumeVeryHigh:
		return "exceptional trading activity"
	default:
		return "unknown activity"
	}
}

// VolumeClassification is the regime assigned to a single volume value.
// Exactly one classification exists per (value, ThresholdSet) pair.
type VolumeClassification struct {
	Label     VolumeLabel
	ColorTag  string
	Sentiment string
}
