package drr

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/embed"
	"github.com/cwbudde/algo-drr/drr/rank"
	"github.com/cwbudde/algo-drr/drr/spectral"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// sliceBuf holds the per-slice scratch memory of one worker.
type sliceBuf struct {
	slice []complex128
	mat   []complex128
	pow   []float64
}

var slicePool = sync.Pool{
	New: func() any { return &sliceBuf{} },
}

// filter is the frequency-domain rank reduction of one volume or window.
type filter struct {
	cfg     Config
	reducer *rank.Reducer
}

func newFilter(cfg Config) (*filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	red, err := rank.NewReducer(cfg.Rank, cfg.Selector, cfg.Damping, cfg.coreOptions()...)
	if err != nil {
		return nil, err
	}
	return &filter{cfg: cfg, reducer: red}, nil
}

// apply filters v and returns a new volume. With parallel set the frequency
// slices are spread over cfg.Workers goroutines; inside windows they run
// sequentially because the windows themselves are parallel.
func (f *filter) apply(ctx context.Context, v *volume.Volume, parallel bool) (*volume.Volume, error) {
	tr, err := spectral.NewTransform(v.Samples(), f.cfg.Dt, f.cfg.LowHz, f.cfg.HighHz)
	if err != nil {
		return nil, err
	}
	plan, err := embed.NewPlan(v.SpatialShape(), f.cfg.Lags)
	if err != nil {
		return nil, err
	}
	f.cfg.Logger.Trace().
		Ints("lags", plan.Lags()).
		Int("rows", plan.Rows()).
		Int("cols", plan.Cols()).
		Msg("embedding plan")
	fx, err := tr.Forward(v)
	if err != nil {
		return nil, err
	}

	lo, hi := tr.Band()
	nf := tr.Len()
	for j := 0; j < v.Traces(); j++ {
		spec := fx[j*nf : (j+1)*nf]
		for k := 0; k <= nf/2; k++ {
			if k < lo || k > hi {
				spec[k] = 0
			}
		}
	}

	if parallel && f.cfg.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(f.cfg.Workers)
		for k := lo; k <= hi; k++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return f.slice(tr, plan, fx, k)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for k := lo; k <= hi; k++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := f.slice(tr, plan, fx, k); err != nil {
				return nil, err
			}
		}
	}

	out := volume.ZerosLike(v)
	if err := tr.Inverse(fx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// slice reduces frequency bin k in place. Slices without energy are left
// as they are. A failed decomposition keeps the unfiltered slice.
func (f *filter) slice(tr *spectral.Transform, plan *embed.Plan, fx []complex128, k int) error {
	buf := slicePool.Get().(*sliceBuf)
	defer slicePool.Put(buf)

	buf.slice = tr.Gather(fx, k, buf.slice)
	buf.pow = core.EnsureLen(buf.pow, 3*len(buf.slice))
	if spectral.Energy(buf.slice, buf.pow) == 0 {
		return nil
	}

	buf.mat = plan.Embed(buf.slice, buf.mat)
	res, err := f.reducer.Reduce(buf.mat, plan.Rows(), plan.Cols())
	if err != nil {
		if core.KindOf(err) != core.KindNumerical {
			return err
		}
		f.cfg.Report.AddSVDFailure()
		f.cfg.Logger.Warn().Err(err).Int("bin", k).Msg("slice left unfiltered")
		return nil
	}
	buf.slice = plan.Fold(buf.mat, buf.slice)
	tr.Scatter(fx, k, buf.slice)

	f.cfg.Report.AddSlice()
	f.cfg.Logger.Trace().
		Int("bin", k).
		Int("rank", res.Rank).
		Bool("clamped", res.Clamped).
		Msg("slice reduced")
	return nil
}
