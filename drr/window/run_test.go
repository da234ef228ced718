package window

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
	"github.com/cwbudde/algo-drr/internal/testutil"
)

func identity(_ context.Context, w *volume.Volume) (*volume.Volume, error) { return w, nil }

func noisyVolume(t *testing.T, shape ...int) *volume.Volume {
	t.Helper()
	v, err := volume.New(shape...)
	if err != nil {
		t.Fatalf("volume.New: %v", err)
	}
	copy(v.Data, testutil.DeterministicNoise(7, 1, v.Len()))
	return v
}

func TestRunIdentityReproducesInput(t *testing.T) {
	specs := []Spec{
		{},
		{Sizes: []int{16, 5}, Overlaps: []float64{0.5, 0.4}},
		{Sizes: []int{20, 7}, Overlaps: []float64{0.1, 0.3}, Taper: TaperCosine},
		{Sizes: []int{8, 3}, Overlaps: []float64{0.75, 0.6}, Taper: TaperRectangular},
		{Sizes: []int{10, 10}},
	}
	in := noisyVolume(t, 50, 11)
	for _, spec := range specs {
		p, err := NewPlanner(in.Shape, spec)
		if err != nil {
			t.Fatalf("NewPlanner(%+v): %v", spec, err)
		}
		out, err := p.Run(context.Background(), in, identity, core.WithWorkers(3))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		testutil.RequireSliceNearlyEqual(t, out.Data, in.Data, 1e-12)
	}
}

func TestRunSingleWindowPassesThrough(t *testing.T) {
	in := noisyVolume(t, 32, 4, 3)
	p, err := NewPlanner(in.Shape, Spec{})
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	scale := func(_ context.Context, w *volume.Volume) (*volume.Volume, error) {
		out := w.Clone()
		for i := range out.Data {
			out.Data[i] *= 2
		}
		return out, nil
	}
	out, err := p.Run(context.Background(), in, scale)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range in.Data {
		if out.Data[i] != 2*in.Data[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out.Data[i], 2*in.Data[i])
		}
	}
}

func TestRunCountsWindows(t *testing.T) {
	in := noisyVolume(t, 40, 9)
	p, err := NewPlanner(in.Shape, Spec{Sizes: []int{16, 4}, Overlaps: []float64{0.5, 0.5}})
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	rep := &core.Report{}
	if _, err := p.Run(context.Background(), in, identity, core.WithReport(rep)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := rep.Snapshot().Windows; got != int64(p.Count()) {
		t.Fatalf("Windows = %d, want %d", got, p.Count())
	}
}

func TestRunPropagatesError(t *testing.T) {
	in := noisyVolume(t, 40, 9)
	p, err := NewPlanner(in.Shape, Spec{Sizes: []int{10, 3}})
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	boom := errors.New("boom")
	_, err = p.Run(context.Background(), in, func(context.Context, *volume.Volume) (*volume.Volume, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestRunShapeErrors(t *testing.T) {
	in := noisyVolume(t, 40, 9)
	p, err := NewPlanner([]int{40, 8}, Spec{})
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	if _, err := p.Run(context.Background(), in, identity); !errors.Is(err, core.ErrShape) {
		t.Fatalf("err = %v, want shape error", err)
	}

	p, _ = NewPlanner(in.Shape, Spec{Sizes: []int{20, 9}})
	shrink := func(context.Context, *volume.Volume) (*volume.Volume, error) { return volume.New(3, 3) }
	if _, err := p.Run(context.Background(), in, shrink); !errors.Is(err, core.ErrShape) {
		t.Fatalf("err = %v, want shape error", err)
	}
}
