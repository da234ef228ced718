package main

import (
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-drr/drr"
	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/ortho"
	"github.com/cwbudde/algo-drr/drr/synth"
	"github.com/cwbudde/algo-drr/drr/volume"
	"github.com/cwbudde/algo-drr/internal/config"
	"github.com/cwbudde/algo-drr/measure/snr"
)

type flags struct {
	config     string
	dims       int
	noise      float64
	seed       int64
	rank       []int
	damping    float64
	mode       string
	windowed   bool
	ortho      bool
	missing    float64
	iterations int
	verbose    bool
}

func newRootCmd(logger zerolog.Logger) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "drrsynth",
		Short:        "Denoise synthetic seismic benchmarks with damped rank reduction",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := zerolog.InfoLevel
			if f.verbose {
				level = zerolog.DebugLevel
			}
			params, err := loadParams(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd, f, params, logger.Level(level), cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "YAML parameter file")
	fs.IntVar(&f.dims, "dims", 2, "benchmark dimensionality (2 or 3)")
	fs.Float64Var(&f.noise, "noise", 0.1, "Gaussian noise standard deviation")
	fs.Int64Var(&f.seed, "seed", synth.DefaultSeed, "noise and mask seed")
	fs.IntSliceVar(&f.rank, "rank", nil, "fixed rank, or min,max for a range")
	fs.Float64Var(&f.damping, "damping", 0, "damping factor N (0 keeps the parameter file value, inf disables)")
	fs.StringVar(&f.mode, "mode", "", "rank mode: fixed, energy or gap")
	fs.BoolVar(&f.windowed, "windowed", false, "filter in overlapping windows")
	fs.BoolVar(&f.ortho, "ortho", false, "refine the result by local orthogonalization")
	fs.Float64Var(&f.missing, "missing", 0, "fraction of traces to remove and reconstruct")
	fs.IntVar(&f.iterations, "iterations", 0, "reconstruction iterations (0 keeps the parameter file value)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log per-stage diagnostics")
	return cmd
}

// loadParams reads the parameter file and applies flag overrides.
func loadParams(cmd *cobra.Command, f flags) (*config.Params, error) {
	p := config.Default()
	params := &p
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return nil, err
		}
		params = loaded
	}
	if cmd.Flags().Changed("rank") {
		params.Rank = f.rank
	}
	if f.damping != 0 {
		params.Damping = f.damping
	}
	if f.mode != "" {
		params.Mode = f.mode
	} else if f.config == "" && len(params.Rank) == 2 {
		params.Mode = "energy"
	}
	if f.windowed && params.Window == nil {
		params.Window = &config.Window{Sizes: []int{50, 20}, Overlaps: []float64{0.5, 0.5}}
	}
	if f.iterations > 0 {
		if params.Reconstruct == nil {
			params.Reconstruct = &config.Reconstruct{}
		}
		params.Reconstruct.Iterations = f.iterations
	}
	if _, err := params.Options(); err != nil {
		return nil, err
	}
	return params, nil
}

func benchmark(dims int) (*volume.Volume, error) {
	switch dims {
	case 2:
		return synth.Benchmark2D()
	case 3:
		return synth.Benchmark3D()
	}
	return nil, core.Configf("drrsynth", "dims must be 2 or 3: %d", dims)
}

func run(cmd *cobra.Command, f flags, params *config.Params, logger zerolog.Logger, out io.Writer) error {
	ctx := cmd.Context()
	clean, err := benchmark(f.dims)
	if err != nil {
		return err
	}
	gen := synth.NewGenerator(synth.WithSeed(f.seed))
	noisy, err := gen.AddNoise(clean, f.noise)
	if err != nil {
		return err
	}
	logger.Debug().
		Ints("shape", clean.Shape).
		Float64("noise", f.noise).
		Int64("seed", gen.Seed()).
		Msg("benchmark")

	report := &core.Report{}
	opts, err := params.Options()
	if err != nil {
		return err
	}
	opts = append(opts, drr.WithLogger(logger), drr.WithReport(report))

	input := noisy
	var mask *volume.Volume
	if f.missing > 0 {
		mask, err = gen.Mask(clean.Shape, f.missing)
		if err != nil {
			return err
		}
		input = noisy.Clone()
		for i, m := range mask.Data {
			input.Data[i] *= m
		}
	}
	printSNR(out, "input", clean, input)

	var result *volume.Volume
	switch {
	case mask != nil:
		result, err = drr.RankReduceReconstruct(ctx, input, mask, params.Iterations(), opts...)
	case params.Windowed():
		spec, werr := params.WindowSpec()
		if werr != nil {
			return werr
		}
		if len(params.Rank) == 2 {
			result, err = drr.RankReduceWindowedAuto(ctx, input, spec, opts...)
		} else {
			result, err = drr.RankReduceWindowed(ctx, input, spec, opts...)
		}
	default:
		result, err = drr.RankReduce(ctx, input, opts...)
	}
	if err != nil {
		return err
	}
	printSNR(out, "drr", clean, result)

	if f.ortho {
		noise, err := volume.Sub(input, result)
		if err != nil {
			return err
		}
		oo := params.OrthoOptions()
		res, err := ortho.LocalOrthogonalize(result, noise, oo, core.WithLogger(logger), core.WithReport(report))
		if err != nil {
			return err
		}
		printSNR(out, "ortho", clean, res.Signal)

		sim, err := ortho.LocalSimilarity(res.Signal, res.Noise, oo, core.WithLogger(logger))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%-8s %8.4f\n", "simmax", sim.MaxAbs())
	}

	s := report.Snapshot()
	logger.Info().
		Int64("slices", s.Slices).
		Int64("windows", s.Windows).
		Int64("rank_clamps", s.RankClamps).
		Int64("svd_failures", s.SVDFailures).
		Int64("unconverged", s.Unconverged).
		Msg("done")
	return nil
}

func printSNR(out io.Writer, label string, ref, est *volume.Volume) {
	v, err := snr.Volume(ref, est)
	if err != nil || math.IsNaN(v) {
		_, _ = fmt.Fprintf(out, "%-8s %8s\n", label, "n/a")
		return
	}
	_, _ = fmt.Fprintf(out, "%-8s %8.2f dB\n", label, v)
}
