package drr

import (
	"context"

	"github.com/cwbudde/algo-drr/drr/rank"
	"github.com/cwbudde/algo-drr/drr/volume"
	"github.com/cwbudde/algo-drr/drr/window"
)

// RankReduce filters the whole volume with damped rank reduction.
func RankReduce(ctx context.Context, vol *volume.Volume, opts ...Option) (*volume.Volume, error) {
	cfg := ApplyOptions(opts...)
	f, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug().
		Ints("shape", vol.Shape).
		Stringer("rank", f.reducer.Spec()).
		Float64("damping", f.reducer.Damping()).
		Msg("rank reduction")
	return f.apply(ctx, vol, true)
}

// RankReduceWindowed filters overlapping windows of the volume independently
// and blends them. Configuration errors in win are reported before any
// filtering starts.
func RankReduceWindowed(ctx context.Context, vol *volume.Volume, win window.Spec, opts ...Option) (*volume.Volume, error) {
	return windowed(ctx, vol, win, ApplyOptions(opts...))
}

// RankReduceWindowedAuto is [RankReduceWindowed] with the rank resolved per
// frequency slice. It selects [rank.ModeEnergy] unless an option sets another
// mode; pass the bounds with [WithRank] and [rank.Range].
func RankReduceWindowedAuto(ctx context.Context, vol *volume.Volume, win window.Spec, opts ...Option) (*volume.Volume, error) {
	all := append([]Option{WithMode(rank.ModeEnergy)}, opts...)
	return windowed(ctx, vol, win, ApplyOptions(all...))
}

func windowed(ctx context.Context, vol *volume.Volume, win window.Spec, cfg Config) (*volume.Volume, error) {
	f, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	planner, err := window.NewPlanner(vol.Shape, win)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug().
		Ints("shape", vol.Shape).
		Stringer("rank", f.reducer.Spec()).
		Stringer("mode", cfg.Selector.Mode).
		Float64("damping", f.reducer.Damping()).
		Int("windows", planner.Count()).
		Ints("sizes", planner.Sizes()).
		Ints("time_starts", planner.Starts(0)).
		Msg("windowed rank reduction")

	return planner.Run(ctx, vol, func(ctx context.Context, w *volume.Volume) (*volume.Volume, error) {
		return f.apply(ctx, w, false)
	}, cfg.coreOptions()...)
}
