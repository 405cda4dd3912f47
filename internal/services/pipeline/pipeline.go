package pipeline

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/marketpulse/internal/domain"
	"go.uber.org/zap"
)

// Config carries every tunable of a pipeline run. No hidden globals: the
// caller constructs it explicitly (normally from the config package).
type Config struct {
	// Location is the target timezone for daily bucket alignment.
	Location *time.Location
	// BucketOffset shifts bucket boundaries from local midnight.
	BucketOffset time.Duration
	// Lookback is the trailing window length for threshold derivation.
	Lookback int
	// PercentileRanks are the four ascending cut-point percentiles.
	PercentileRanks []float64
	// FastSpan, SlowSpan and SignalSpan are the MACD EMA spans.
	FastSpan   int
	SlowSpan   int
	SignalSpan int
	// DisplayPeriod and ReportPeriod bound the classification and
	// distribution summaries, in days.
	DisplayPeriod int
	ReportPeriod  int
}

// DefaultConfig returns the standard pipeline parameters.
func DefaultConfig() Config {
	return Config{
		Location:        time.UTC,
		BucketOffset:    0,
		Lookback:        180,
		PercentileRanks: []float64{10, 30, 70, 90},
		FastSpan:        12,
		SlowSpan:        26,
		SignalSpan:      9,
		DisplayPeriod:   30,
		ReportPeriod:    90,
	}
}

// Result is the derived analytical dataset for one instrument. Every field is
// owned by the pipeline run that produced it; consumers read it as-is.
type Result struct {
	// Bars is the gap-free daily series with indicators populated.
	Bars []domain.DailyBar
	// Thresholds are percentile cut points over the trailing lookback
	// window of quote-currency volume.
	Thresholds domain.ThresholdSet
	// Classifications hold one volume regime per bar of the display window,
	// parallel to Tail(Bars, DisplayPeriod).
	Classifications []domain.VolumeClassification
	// Shares maps a summary period length to the regime distribution over
	// the last that-many bars.
	Shares map[int]map[domain.VolumeLabel]float64
	// Quality holds integrity counters over the full series.
	Quality domain.QualityReport
	// Signals are momentum events from the two most recent bars.
	Signals []domain.MomentumSignal
}

// Pipeline runs the full derivation for one instrument. Pure and synchronous;
// independent instruments can run their own pipelines in parallel.
type Pipeline struct {
	cfg    Config
	logger *zap.Logger
}

// New validates cfg and constructs a Pipeline.
func New(cfg Config, logger *zap.Logger) (*Pipeline, error) {
	if cfg.Location == nil {
		return nil, errors.Wrap(domain.ErrInvalidConfiguration, "nil timezone")
	}
	if cfg.BucketOffset < 0 || cfg.BucketOffset >= 24*time.Hour {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"bucket boundary offset %s is not a sub-day duration", cfg.BucketOffset)
	}
	if err := validateRanks(cfg.PercentileRanks); err != nil {
		return nil, err
	}
	if cfg.FastSpan < 1 || cfg.SlowSpan < 1 || cfg.SignalSpan < 1 {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"ema spans must be positive, got %d/%d/%d", cfg.FastSpan, cfg.SlowSpan, cfg.SignalSpan)
	}
	if cfg.FastSpan >= cfg.SlowSpan {
		return nil, errors.Wrapf(domain.ErrInvalidConfiguration,
			"fast span %d must be below slow span %d", cfg.FastSpan, cfg.SlowSpan)
	}
	if cfg.Lookback < 1 || cfg.DisplayPeriod < 1 || cfg.ReportPeriod < 1 {
		return nil, errors.Wrap(domain.ErrInvalidConfiguration,
			"lookback and summary periods must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}, nil
}

// Run derives the full analytical dataset from raw observations. Empty input
// yields an empty Result and nil error; deciding whether no data is a failure
// belongs to the caller.
func (p *Pipeline) Run(observations []domain.Observation) (*Result, error) {
	bars, err := Resample(observations, p.cfg.BucketOffset, p.cfg.Location)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		p.logger.Info("no observations supplied, returning empty result")
		return &Result{Shares: map[int]map[domain.VolumeLabel]float64{}}, nil
	}

	bars, err = ComputeIndicators(bars, p.cfg.FastSpan, p.cfg.SlowSpan, p.cfg.SignalSpan)
	if err != nil {
		return nil, err
	}

	window := domain.VolumeQuotes(domain.Tail(bars, p.cfg.Lookback))
	thresholds, err := DeriveThresholds(window, p.cfg.PercentileRanks)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Bars:            bars,
		Thresholds:      thresholds,
		Classifications: ClassifySeries(domain.Tail(bars, p.cfg.DisplayPeriod), thresholds),
		Shares: map[int]map[domain.VolumeLabel]float64{
			p.cfg.DisplayPeriod: DistributionShares(domain.VolumeQuotes(domain.Tail(bars, p.cfg.DisplayPeriod)), thresholds),
			p.cfg.ReportPeriod:  DistributionShares(domain.VolumeQuotes(domain.Tail(bars, p.cfg.ReportPeriod)), thresholds),
		},
		Quality: Report(bars),
	}

	if len(bars) >= 2 {
		signals, err := AnalyzeMomentum(bars)
		if err != nil {
			return nil, err
		}
		result.Signals = signals
	} else {
		p.logger.Info("single bar in series, skipping momentum analysis")
	}

	p.logger.Info("pipeline run complete",
		zap.Int("bars", len(result.Bars)),
		zap.Int("signals", len(result.Signals)),
		zap.Int("zero_volume_days", result.Quality.ZeroVolumeDays))

	return result, nil
}
