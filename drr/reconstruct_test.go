package drr

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/rank"
	"github.com/cwbudde/algo-drr/drr/synth"
	"github.com/cwbudde/algo-drr/drr/volume"
	"github.com/cwbudde/algo-drr/internal/testutil"
	"github.com/cwbudde/algo-drr/measure/snr"
)

func decimate(t *testing.T, v *volume.Volume, ratio float64) (*volume.Volume, *volume.Volume) {
	t.Helper()
	mask, err := synth.NewGenerator(synth.WithSeed(11)).Mask(v.Shape, ratio)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}
	obs := v.Clone()
	for i, m := range mask.Data {
		obs.Data[i] *= m
	}
	return obs, mask
}

func TestReconstructFillsMissingTraces(t *testing.T) {
	clean := pulses(t, 64, []int{16}, 1, -2)
	obs, mask := decimate(t, clean, 0.25)
	before, err := snr.Volume(clean, obs)
	if err != nil {
		t.Fatalf("snr.Volume() error = %v", err)
	}

	out, err := RankReduceReconstruct(context.Background(), obs, mask, 30, opts(WithRank(rank.Fixed(2)))...)
	if err != nil {
		t.Fatalf("RankReduceReconstruct() error = %v", err)
	}
	after, err := snr.Volume(clean, out)
	if err != nil {
		t.Fatalf("snr.Volume() error = %v", err)
	}
	if after-before < 6 {
		t.Fatalf("SNR %.2f dB -> %.2f dB, want a gain of at least 6 dB", before, after)
	}
	for i, m := range mask.Data {
		if m == 1 && out.Data[i] != clean.Data[i] {
			t.Fatalf("observed sample %d changed: %v != %v", i, out.Data[i], clean.Data[i])
		}
	}
}

func TestReconstructLinearSchedule(t *testing.T) {
	noisy := withNoise(t, pulses(t, 64, []int{16}, 1, -2), 0.1)
	obs, mask := decimate(t, noisy, 0.25)
	out, err := RankReduceReconstruct(context.Background(), obs, mask, 10,
		opts(WithRank(rank.Fixed(2)), WithReinsert(ReinsertLinear))...)
	if err != nil {
		t.Fatalf("RankReduceReconstruct() error = %v", err)
	}
	testutil.RequireFinite(t, out.Data)
}

func TestReconstructStopsEarly(t *testing.T) {
	clean := pulses(t, 64, []int{8}, 1)
	obs, mask := decimate(t, clean, 0.25)
	o := opts(WithRank(rank.Fixed(1)))

	one, err := RankReduceReconstruct(context.Background(), obs, mask, 1, o...)
	if err != nil {
		t.Fatalf("RankReduceReconstruct() error = %v", err)
	}
	early, err := RankReduceReconstruct(context.Background(), obs, mask, 20, append(o, WithTolerance(1e9))...)
	if err != nil {
		t.Fatalf("RankReduceReconstruct() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, early.Data, one.Data, 0)
}

func TestReconstructErrors(t *testing.T) {
	vol := pulses(t, 32, []int{6}, 1)
	mask, _ := volume.New(32, 5)
	if _, err := RankReduceReconstruct(context.Background(), vol, mask, 5); !errors.Is(err, core.ErrShape) {
		t.Fatalf("err = %v, want shape error", err)
	}
	full := volume.ZerosLike(vol)
	if _, err := RankReduceReconstruct(context.Background(), vol, full, 0); !errors.Is(err, core.ErrConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
	if _, err := RankReduceReconstruct(context.Background(), vol, full, 3, WithTolerance(-1)); !errors.Is(err, core.ErrConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestReinsertWeight(t *testing.T) {
	tests := []struct {
		r     Reinsert
		it, n int
		want  float64
	}{
		{ReinsertFull, 3, 10, 1},
		{ReinsertLinear, 1, 5, 1},
		{ReinsertLinear, 3, 5, 0.5},
		{ReinsertLinear, 5, 5, 0},
		{ReinsertLinear, 1, 1, 1},
	}
	for _, tt := range tests {
		if got := reinsertWeight(tt.r, tt.it, tt.n); got != tt.want {
			t.Fatalf("reinsertWeight(%v,%d,%d) = %v, want %v", tt.r, tt.it, tt.n, got, tt.want)
		}
	}
}
