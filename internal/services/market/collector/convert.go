package collector

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// parseFloat parses an exchange-formatted decimal string and narrows it to
// float64 for the numeric core.
func parseFloat(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// parseIntervalToDuration converts interval strings like "1m", "4h", "1d"
// to a duration.
func parseIntervalToDuration(interval string) (time.Duration, error) {
	if len(interval) < 2 {
		return 0, fmt.Errorf("invalid interval: %s", interval)
	}

	unit := interval[len(interval)-1]
	var n int64
	for _, r := range interval[:len(interval)-1] {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid interval number: %s", interval)
		}
		n = n*10 + int64(r-'0')
	}

	switch unit {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unsupported interval unit: %c", unit)
	}
}
