// Package config loads rank-reduction parameter files.
//
// A parameter file is YAML; every key is optional and falls back to the
// library defaults:
//
//	low_hz: 0
//	high_hz: 120
//	dt: 0.004
//	rank: [1, 4]        # one value for a fixed rank, two for a range
//	mode: energy        # fixed, energy or gap
//	energy_threshold: 0.9
//	damping: 4          # .inf disables damping
//	workers: 8
//	window:
//	  sizes: [50, 20]
//	  overlaps: [0.5, 0.5]
//	  taper: linear
//	ortho:
//	  rect: [20, 10]
//	  iterations: 50
//	reconstruct:
//	  iterations: 10
//	  schedule: linear
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-drr/drr"
	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/ortho"
	"github.com/cwbudde/algo-drr/drr/rank"
	"github.com/cwbudde/algo-drr/drr/window"
)

// Params is the content of a parameter file.
type Params struct {
	LowHz           float64      `yaml:"low_hz"`
	HighHz          float64      `yaml:"high_hz"`
	Dt              float64      `yaml:"dt"`
	Rank            []int        `yaml:"rank"`
	Mode            string       `yaml:"mode"`
	EnergyThreshold float64      `yaml:"energy_threshold"`
	Damping         float64      `yaml:"damping"`
	Lags            []int        `yaml:"lags,omitempty"`
	Workers         int          `yaml:"workers,omitempty"`
	Window          *Window      `yaml:"window,omitempty"`
	Ortho           *Ortho       `yaml:"ortho,omitempty"`
	Reconstruct     *Reconstruct `yaml:"reconstruct,omitempty"`
}

// Window configures windowed filtering.
type Window struct {
	Sizes    []int     `yaml:"sizes"`
	Overlaps []float64 `yaml:"overlaps"`
	Taper    string    `yaml:"taper"`
}

// Ortho configures local orthogonalization.
type Ortho struct {
	Rect       []int   `yaml:"rect"`
	Iterations int     `yaml:"iterations"`
	Eps        float64 `yaml:"eps"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Reconstruct configures iterative reconstruction.
type Reconstruct struct {
	Iterations int     `yaml:"iterations"`
	Schedule   string  `yaml:"schedule"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Default returns the parameters matching [drr.DefaultConfig].
func Default() Params {
	cfg := drr.DefaultConfig()
	kmin, kmax := cfg.Rank.Bounds()
	p := Params{
		LowHz:           cfg.LowHz,
		HighHz:          cfg.HighHz,
		Dt:              cfg.Dt,
		Rank:            []int{kmin},
		Mode:            cfg.Selector.Mode.String(),
		EnergyThreshold: cfg.Selector.Threshold,
		Damping:         cfg.Damping,
	}
	if kmin != kmax {
		p.Rank = []int{kmin, kmax}
	}
	return p
}

// Load reads and validates a parameter file.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML parameters over the defaults and validates them.
func Parse(data []byte) (*Params, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse parameter YAML: %w", err)
	}
	if _, err := p.Options(); err != nil {
		return nil, err
	}
	if _, err := p.WindowSpec(); err != nil {
		return nil, err
	}
	if _, err := p.Schedule(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes p as YAML.
func Save(p *Params, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write parameter file: %w", err)
	}
	return nil
}

// RankSpec converts the rank list.
func (p Params) RankSpec() (rank.Spec, error) {
	var spec rank.Spec
	switch len(p.Rank) {
	case 1:
		spec = rank.Fixed(p.Rank[0])
	case 2:
		spec = rank.Range(p.Rank[0], p.Rank[1])
	default:
		return spec, core.Configf("config", "rank needs one or two values, got %d", len(p.Rank))
	}
	return spec, spec.Validate()
}

// Options converts p to filter options and validates them.
func (p Params) Options() ([]drr.Option, error) {
	spec, err := p.RankSpec()
	if err != nil {
		return nil, err
	}
	mode, err := rank.ParseMode(p.Mode)
	if err != nil {
		return nil, err
	}
	opts := []drr.Option{
		drr.WithBand(p.LowHz, p.HighHz),
		drr.WithSampleInterval(p.Dt),
		drr.WithRank(spec),
		drr.WithMode(mode),
		drr.WithEnergyThreshold(p.EnergyThreshold),
		drr.WithDamping(p.Damping),
		drr.WithWorkers(p.Workers),
	}
	if len(p.Lags) > 0 {
		opts = append(opts, drr.WithLags(p.Lags...))
	}
	if p.Reconstruct != nil {
		sched, err := p.Schedule()
		if err != nil {
			return nil, err
		}
		opts = append(opts, drr.WithReinsert(sched), drr.WithTolerance(p.Reconstruct.Tolerance))
	}
	if err := drr.ApplyOptions(opts...).Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Windowed reports whether a window section is present.
func (p Params) Windowed() bool { return p.Window != nil }

// WindowSpec converts the window section. Without one the result is a single
// full-volume window.
func (p Params) WindowSpec() (window.Spec, error) {
	if p.Window == nil {
		return window.Spec{}, nil
	}
	taper, err := window.ParseTaper(p.Window.Taper)
	if err != nil {
		return window.Spec{}, err
	}
	return window.Spec{Sizes: p.Window.Sizes, Overlaps: p.Window.Overlaps, Taper: taper}, nil
}

// OrthoOptions converts the ortho section, filling unset fields from
// [ortho.DefaultOptions].
func (p Params) OrthoOptions() ortho.Options {
	opts := ortho.DefaultOptions()
	if p.Ortho == nil {
		return opts
	}
	if len(p.Ortho.Rect) > 0 {
		opts.Rect = p.Ortho.Rect
	}
	if p.Ortho.Iterations > 0 {
		opts.Iterations = p.Ortho.Iterations
	}
	if p.Ortho.Eps > 0 {
		opts.Eps = p.Ortho.Eps
	}
	if p.Ortho.Tolerance > 0 {
		opts.Tolerance = p.Ortho.Tolerance
	}
	return opts
}

// Schedule returns the reconstruction re-insertion schedule.
func (p Params) Schedule() (drr.Reinsert, error) {
	if p.Reconstruct == nil {
		return drr.ReinsertFull, nil
	}
	switch p.Reconstruct.Schedule {
	case "", "full":
		return drr.ReinsertFull, nil
	case "linear":
		return drr.ReinsertLinear, nil
	}
	return 0, core.Configf("config", "unknown reconstruction schedule %q", p.Reconstruct.Schedule)
}

// Iterations returns the reconstruction iteration count, 10 when unset.
func (p Params) Iterations() int {
	if p.Reconstruct == nil || p.Reconstruct.Iterations < 1 {
		return 10
	}
	return p.Reconstruct.Iterations
}
