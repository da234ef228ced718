package window

import (
	"context"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// Func filters one window. It receives a private copy and must return a
// volume of the same shape.
type Func func(ctx context.Context, w *volume.Volume) (*volume.Volume, error)

// Run filters every window of in with fn and blends the results.
// The first error returned by fn cancels the remaining windows.
func (p *Planner) Run(ctx context.Context, in *volume.Volume, fn Func, opts ...core.Option) (*volume.Volume, error) {
	if !sameShape(in.Shape, p.shape) {
		return nil, core.Shapef("window.Run", "volume shape %v, planner built for %v", in.Shape, p.shape)
	}
	cfg := core.ApplyOptions(opts...)

	acc := volume.ZerosLike(in)
	wsum := make([]float64, in.Len())
	var mu sync.Mutex

	cfg.Logger.Debug().
		Int("windows", p.count).
		Ints("size", p.sizes).
		Int("workers", cfg.Workers).
		Msg("windowed filtering")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < p.count; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			box := p.Box(i)
			w, err := in.Extract(box)
			if err != nil {
				return err
			}
			out, err := fn(gctx, w)
			if err != nil {
				return err
			}
			if !sameShape(out.Shape, box.Size) {
				return core.Shapef("window.Run", "filter returned %v for window of %v", out.Shape, box.Size)
			}

			weights := p.Weights(i)
			weighted := make([]float64, len(weights))
			vecmath.MulBlock(weighted, out.Data, weights)

			n := box.Size[0]
			mu.Lock()
			box.ForEachRun(in.Shape, func(boxOff, volOff int) {
				vecmath.AddBlockInPlace(acc.Data[volOff:volOff+n], weighted[boxOff:boxOff+n])
				vecmath.AddBlockInPlace(wsum[volOff:volOff+n], weights[boxOff:boxOff+n])
			})
			mu.Unlock()

			cfg.Report.AddWindow()
			cfg.Logger.Trace().Int("window", i).Ints("start", box.Start).Msg("window filtered")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, w := range wsum {
		acc.Data[i] /= w
	}
	return acc, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
