package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-drr/drr/core"
)

func TestRampComplementary(t *testing.T) {
	for _, taper := range []Taper{TaperLinear, TaperCosine} {
		t.Run(taper.String(), func(t *testing.T) {
			const n = 7
			r := Ramp(taper, n)
			for i := range r {
				if sum := r[i] + r[n-1-i]; math.Abs(sum-1) > 1e-12 {
					t.Fatalf("r[%d]+r[%d] = %v, want 1", i, n-1-i, sum)
				}
				if r[i] <= 0 || r[i] >= 1 {
					t.Fatalf("r[%d] = %v outside (0,1)", i, r[i])
				}
			}
		})
	}
}

func TestRampRectangular(t *testing.T) {
	for i, v := range Ramp(TaperRectangular, 4) {
		if v != 1 {
			t.Fatalf("r[%d] = %v, want 1", i, v)
		}
	}
	if Ramp(TaperLinear, 0) != nil {
		t.Fatal("empty ramp should be nil")
	}
}

func TestProfile(t *testing.T) {
	got := Profile(TaperLinear, 6, 2, 1)
	want := []float64{1.0 / 3, 2.0 / 3, 1, 1, 1, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Profile[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseTaper(t *testing.T) {
	tests := map[string]Taper{
		"":            TaperLinear,
		"Linear":      TaperLinear,
		"cosine":      TaperCosine,
		"rectangular": TaperRectangular,
	}
	for in, want := range tests {
		got, err := ParseTaper(in)
		if err != nil || got != want {
			t.Fatalf("ParseTaper(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTaper("kaiser"); !errors.Is(err, core.ErrConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}
