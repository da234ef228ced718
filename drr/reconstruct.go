package drr

import (
	"context"
	"math"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// RankReduceReconstruct fills the samples where mask is 0 by iterating
//
//	next = a*mask*obs + (1 - a*mask)*filter(current)
//
// starting from the observed volume with its gaps. The weight a is 1 for
// [ReinsertFull] and falls linearly from 1 to 0 for [ReinsertLinear]. mask
// has the shape of vol and holds 1 for observed and 0 for missing samples.
func RankReduceReconstruct(ctx context.Context, vol, mask *volume.Volume, iterations int, opts ...Option) (*volume.Volume, error) {
	if err := volume.CheckSameShape("drr.RankReduceReconstruct", vol, mask); err != nil {
		return nil, err
	}
	if iterations < 1 {
		return nil, core.Configf("drr", "iterations must be >= 1: %d", iterations)
	}
	cfg := ApplyOptions(opts...)
	f, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}

	obs := vol.Clone()
	for i, m := range mask.Data {
		obs.Data[i] *= m
	}
	cur := obs.Clone()

	for it := 1; it <= iterations; it++ {
		filt, err := f.apply(ctx, cur, true)
		if err != nil {
			return nil, err
		}

		a := reinsertWeight(cfg.Reinsert, it, iterations)
		change := 0.0
		for i, m := range mask.Data {
			w := a * m
			next := w*obs.Data[i] + (1-w)*filt.Data[i]
			d := next - cur.Data[i]
			change += d * d
			cur.Data[i] = next
		}
		rms := math.Sqrt(change / float64(cur.Len()))

		cfg.Logger.Debug().
			Int("iteration", it).
			Float64("weight", a).
			Float64("change", rms).
			Msg("reconstruction step")
		if rms < cfg.Tolerance {
			break
		}
	}
	return cur, nil
}

// reinsertWeight returns the weight of the observed samples in iteration it
// of n.
func reinsertWeight(r Reinsert, it, n int) float64 {
	if r != ReinsertLinear || n == 1 {
		return 1
	}
	return float64(n-it) / float64(n-1)
}
