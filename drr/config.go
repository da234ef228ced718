package drr

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/rank"
)

// Reinsert selects how observed samples are put back during reconstruction.
type Reinsert int

const (
	// ReinsertFull overwrites observed positions with the data every iteration.
	ReinsertFull Reinsert = iota
	// ReinsertLinear blends observed samples with a weight that falls linearly
	// from 1 to 0 over the iterations. Use it for noisy observations.
	ReinsertLinear
)

func (r Reinsert) String() string {
	switch r {
	case ReinsertFull:
		return "full"
	case ReinsertLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Config holds the filter parameters.
type Config struct {
	core.Config

	// LowHz and HighHz bound the processed frequency band.
	LowHz, HighHz float64
	// Dt is the time sample interval in seconds.
	Dt float64

	Rank     rank.Spec
	Selector rank.Selector
	// Damping is the damping factor N; [rank.HardTruncation] disables damping.
	Damping float64
	// Lags overrides the embedding order per spatial axis. Nil uses n/2+1.
	Lags []int

	// Reinsert and Tolerance only affect [RankReduceReconstruct].
	Reinsert  Reinsert
	Tolerance float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the parameters used when no option overrides them:
// band 0-120 Hz at 4 ms, fixed rank 3 and damping factor 4.
func DefaultConfig() Config {
	return Config{
		Config:   core.DefaultConfig(),
		LowHz:    0,
		HighHz:   120,
		Dt:       0.004,
		Rank:     rank.Fixed(3),
		Selector: rank.DefaultSelector(),
		Damping:  4,
	}
}

// WithBand sets the processed frequency band in Hz.
func WithBand(lowHz, highHz float64) Option {
	return func(cfg *Config) {
		cfg.LowHz, cfg.HighHz = lowHz, highHz
	}
}

// WithSampleInterval sets the time sample interval in seconds.
func WithSampleInterval(dt float64) Option {
	return func(cfg *Config) {
		cfg.Dt = dt
	}
}

// WithRank sets a fixed rank or a rank range.
func WithRank(spec rank.Spec) Option {
	return func(cfg *Config) {
		cfg.Rank = spec
	}
}

// WithMode sets how a rank range is resolved.
func WithMode(mode rank.Mode) Option {
	return func(cfg *Config) {
		cfg.Selector.Mode = mode
	}
}

// WithEnergyThreshold sets the cumulative energy ratio of [rank.ModeEnergy].
func WithEnergyThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.Selector.Threshold = threshold
	}
}

// WithDamping sets the damping factor N.
func WithDamping(n float64) Option {
	return func(cfg *Config) {
		cfg.Damping = n
	}
}

// WithLags sets the embedding order per spatial axis.
func WithLags(lags ...int) Option {
	return func(cfg *Config) {
		cfg.Lags = append([]int(nil), lags...)
	}
}

// WithWorkers bounds the number of windows or frequency slices filtered
// concurrently. Values below 1 are ignored.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		core.WithWorkers(workers)(&cfg.Config)
	}
}

// WithLogger sets the diagnostics sink.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithReport attaches counters updated during processing.
func WithReport(report *core.Report) Option {
	return func(cfg *Config) {
		cfg.Report = report
	}
}

// WithReinsert sets the reconstruction re-insertion schedule.
func WithReinsert(r Reinsert) Option {
	return func(cfg *Config) {
		cfg.Reinsert = r
	}
}

// WithTolerance stops reconstruction once the RMS change between two
// iterates falls below tol. Zero runs every iteration.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = tol
	}
}

// ApplyOptions applies opts to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks the parameters that do not depend on the volume.
func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return core.Configf("drr", "sample interval must be > 0: %v", c.Dt)
	}
	if c.LowHz < 0 || !(c.HighHz >= c.LowHz) {
		return core.Configf("drr", "invalid band [%v, %v] Hz", c.LowHz, c.HighHz)
	}
	if err := c.Rank.Validate(); err != nil {
		return err
	}
	if err := c.Selector.Validate(); err != nil {
		return err
	}
	if !(c.Damping > 0) {
		return core.Configf("drr", "damping factor must be > 0: %v", c.Damping)
	}
	switch c.Reinsert {
	case ReinsertFull, ReinsertLinear:
	default:
		return core.Configf("drr", "unknown reinsert schedule %d", int(c.Reinsert))
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return core.Configf("drr", "tolerance must be >= 0: %v", c.Tolerance)
	}
	return nil
}

func (c Config) coreOptions() []core.Option {
	return []core.Option{
		core.WithLogger(c.Logger),
		core.WithWorkers(c.Workers),
		core.WithReport(c.Report),
	}
}
