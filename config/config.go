// Package config loads per-instrument pipeline configuration from a YAML
// file or CLI flags. Every tunable is explicit; there is no hidden global
// state.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"github.com/vadiminshakov/marketpulse/internal/services/pipeline"
	"gopkg.in/yaml.v3"
)

// Defaults for optional parameters.
const (
	DefaultInterval      = "1h"
	DefaultLimit         = 1000
	DefaultTimezone      = "UTC"
	DefaultLookback      = 180
	DefaultFastSpan      = 12
	DefaultSlowSpan      = 26
	DefaultSignalSpan    = 9
	DefaultDisplayPeriod = 30
	DefaultReportPeriod  = 90
)

// DefaultPercentileRanks are the cut-point percentiles for volume regimes.
var DefaultPercentileRanks = []float64{10, 30, 70, 90}

// Config holds the full configuration for one instrument's pipeline run.
type Config struct {
	Platform        string
	Pair            domain.Pair
	Interval        string
	Limit           int
	Location        *time.Location
	BucketOffset    time.Duration
	Lookback        int
	PercentileRanks []float64
	FastSpan        int
	SlowSpan        int
	SignalSpan      int
	DisplayPeriod   int
	ReportPeriod    int
}

// Pipeline converts the instrument configuration into pipeline parameters.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Location:        c.Location,
		BucketOffset:    c.BucketOffset,
		Lookback:        c.Lookback,
		PercentileRanks: c.PercentileRanks,
		FastSpan:        c.FastSpan,
		SlowSpan:        c.SlowSpan,
		SignalSpan:      c.SignalSpan,
		DisplayPeriod:   c.DisplayPeriod,
		ReportPeriod:    c.ReportPeriod,
	}
}

type configTmp struct {
	Platform        string    `yaml:"platform"`
	Pair            string    `yaml:"pair"`
	Interval        string    `yaml:"interval,omitempty"`
	Limit           int       `yaml:"limit,omitempty"`
	Timezone        string    `yaml:"timezone,omitempty"`
	BucketOffset    string    `yaml:"bucket_offset,omitempty"`
	Lookback        int       `yaml:"lookback,omitempty"`
	PercentileRanks []float64 `yaml:"percentile_ranks,omitempty"`
	FastSpan        int       `yaml:"fast_span,omitempty"`
	SlowSpan        int       `yaml:"slow_span,omitempty"`
	SignalSpan      int       `yaml:"signal_span,omitempty"`
	DisplayPeriod   int       `yaml:"display_period,omitempty"`
	ReportPeriod    int       `yaml:"report_period,omitempty"`
}

// Get loads configurations, one per instrument. A YAML file is used when
// -config is passed, otherwise CLI flags describe a single instrument.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	platform := flag.String("platform", "binance", "data source platform: binance, bybit or hyperliquid")
	pairFlag := flag.String("pair", "BTC_USDT", "instrument pair, example: BTC_USDT")
	interval := flag.String("interval", DefaultInterval, "observation interval, example: 1h")
	limit := flag.Int("limit", DefaultLimit, "number of observations to fetch")
	timezone := flag.String("timezone", DefaultTimezone, "target timezone for daily bucket alignment")
	offset := flag.String("offset", "0h", "daily bucket boundary offset from local midnight, example: 7h")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	cfg, err := build(configTmp{
		Platform:     *platform,
		Pair:         *pairFlag,
		Interval:     *interval,
		Limit:        *limit,
		Timezone:     *timezone,
		BucketOffset: *offset,
	})
	if err != nil {
		return nil, err
	}

	return []Config{cfg}, nil
}

func getYaml(path string) ([]Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmp []configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return nil, err
	}

	configs := make([]Config, 0, len(tmp))
	for _, c := range tmp {
		cfg, err := build(c)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid config entry for pair %q", c.Pair)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func build(tmp configTmp) (Config, error) {
	pair, err := pairFromString(tmp.Pair)
	if err != nil {
		return Config{}, err
	}

	platform := tmp.Platform
	if platform == "" {
		platform = "binance"
	}
	switch platform {
	case "binance", "bybit", "hyperliquid":
	default:
		return Config{}, errors.Wrapf(domain.ErrInvalidConfiguration, "unsupported platform %q", platform)
	}

	if tmp.Interval == "" {
		tmp.Interval = DefaultInterval
	}
	if tmp.Limit == 0 {
		tmp.Limit = DefaultLimit
	}
	if tmp.Timezone == "" {
		tmp.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(tmp.Timezone)
	if err != nil {
		return Config{}, errors.Wrapf(domain.ErrInvalidConfiguration, "unknown timezone %q", tmp.Timezone)
	}

	bucketOffset := time.Duration(0)
	if tmp.BucketOffset != "" {
		bucketOffset, err = time.ParseDuration(tmp.BucketOffset)
		if err != nil {
			return Config{}, errors.Wrapf(domain.ErrInvalidConfiguration, "malformed bucket offset %q", tmp.BucketOffset)
		}
	}
	if bucketOffset < 0 || bucketOffset >= 24*time.Hour {
		return Config{}, errors.Wrapf(domain.ErrInvalidConfiguration,
			"bucket offset %s is not a sub-day duration", bucketOffset)
	}

	cfg := Config{
		Platform:        platform,
		Pair:            pair,
		Interval:        tmp.Interval,
		Limit:           tmp.Limit,
		Location:        loc,
		BucketOffset:    bucketOffset,
		Lookback:        tmp.Lookback,
		PercentileRanks: tmp.PercentileRanks,
		FastSpan:        tmp.FastSpan,
		SlowSpan:        tmp.SlowSpan,
		SignalSpan:      tmp.SignalSpan,
		DisplayPeriod:   tmp.DisplayPeriod,
		ReportPeriod:    tmp.ReportPeriod,
	}
	if cfg.Lookback == 0 {
		cfg.Lookback = DefaultLookback
	}
	if len(cfg.PercentileRanks) == 0 {
		cfg.PercentileRanks = append([]float64(nil), DefaultPercentileRanks...)
	}
	if cfg.FastSpan == 0 {
		cfg.FastSpan = DefaultFastSpan
	}
	if cfg.SlowSpan == 0 {
		cfg.SlowSpan = DefaultSlowSpan
	}
	if cfg.SignalSpan == 0 {
		cfg.SignalSpan = DefaultSignalSpan
	}
	if cfg.DisplayPeriod == 0 {
		cfg.DisplayPeriod = DefaultDisplayPeriod
	}
	if cfg.ReportPeriod == 0 {
		cfg.ReportPeriod = DefaultReportPeriod
	}

	// the pipeline constructor re-validates, but failing here points at the
	// config entry instead of the first run
	if _, err := pipeline.New(cfg.Pipeline(), nil); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func pairFromString(pairStr string) (domain.Pair, error) {
	pair, err := domain.ParsePair(pairStr)
	if err != nil {
		return domain.Pair{}, errors.Wrapf(domain.ErrInvalidConfiguration, "invalid pair %q", pairStr)
	}
	return pair, nil
}
