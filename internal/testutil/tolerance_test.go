package testutil

import (
	"math"
	"testing"
)

func TestWorstDiff(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		wantIdx int
		want    float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0, 0},
		{"middle", []float64{1, 2, 3}, []float64{1, 2.5, 2.9}, 1, 0.5},
		{"empty", nil, nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, d := worstDiff(tt.a, tt.b)
			if i != tt.wantIdx || math.Abs(d-tt.want) > 1e-15 {
				t.Fatalf("worstDiff = (%d, %v), want (%d, %v)", i, d, tt.wantIdx, tt.want)
			}
		})
	}
}

func TestWorstDiffNaN(t *testing.T) {
	i, d := worstDiff([]float64{0, math.NaN(), 5}, []float64{0, 0, 0})
	if i != 1 || !math.IsNaN(d) {
		t.Fatalf("worstDiff = (%d, %v), want (1, NaN)", i, d)
	}
}

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1 + 1e-10, 2}, 1e-9)
	RequireFinite(t, []float64{0, -1, 1e300})
}
