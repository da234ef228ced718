package core

import (
	"runtime"

	"github.com/rs/zerolog"
)

// Config defines runtime settings common to all processing stages.
type Config struct {
	// Logger receives progress and numerical diagnostics. The zero value of
	// Config uses a disabled logger.
	Logger zerolog.Logger

	// Workers bounds the number of windows or frequency slices processed
	// concurrently.
	Workers int

	// Report, when non-nil, accumulates counters for the run.
	Report *Report
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a silent configuration using all available CPUs.
func DefaultConfig() Config {
	return Config{
		Logger:  zerolog.Nop(),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithLogger sets the diagnostics sink.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// WithWorkers sets the worker count. Values below 1 are ignored.
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		if workers > 0 {
			cfg.Workers = workers
		}
	}
}

// WithReport attaches a counter set that is updated during processing.
func WithReport(report *Report) Option {
	return func(cfg *Config) {
		cfg.Report = report
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
