package volume

import (
	"testing"

	"github.com/cwbudde/algo-drr/drr/core"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
	}{
		{name: "no axes", shape: nil},
		{name: "zero extent", shape: []int{4, 0}},
		{name: "negative extent", shape: []int{-1}},
		{name: "too many axes", shape: []int{2, 2, 2, 2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.shape...); !core.IsConfig(err) {
				t.Fatalf("New(%v) err = %v, want config error", tt.shape, err)
			}
		})
	}
}

func TestFromDataLengthMismatch(t *testing.T) {
	_, err := FromData(make([]float64, 5), 2, 3)
	if !core.IsShape(err) {
		t.Fatalf("err = %v, want shape error", err)
	}
}

func TestColumnMajorOrder(t *testing.T) {
	v, err := New(3, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Time is fastest, then the first spatial axis.
	if got := v.Index(1, 0, 0); got != 1 {
		t.Fatalf("Index(1,0,0) = %d, want 1", got)
	}
	if got := v.Index(0, 1, 0); got != 3 {
		t.Fatalf("Index(0,1,0) = %d, want 3", got)
	}
	if got := v.Index(0, 0, 1); got != 6 {
		t.Fatalf("Index(0,0,1) = %d, want 6", got)
	}

	v.Set(7, 2, 1, 1)
	tr := v.Trace(3)
	if tr[2] != 7 {
		t.Fatalf("trace 3 = %v, want last sample 7", tr)
	}
	if v.Traces() != 4 || v.Samples() != 3 {
		t.Fatalf("Traces=%d Samples=%d", v.Traces(), v.Samples())
	}
}

func TestSpatialShape(t *testing.T) {
	v, _ := New(8)
	if s := v.SpatialShape(); len(s) != 1 || s[0] != 1 {
		t.Fatalf("single trace spatial shape = %v, want [1]", s)
	}
	w, _ := New(8, 3, 4)
	s := w.SpatialShape()
	s[0] = 99
	if w.Shape[1] != 3 {
		t.Fatal("SpatialShape must return a copy")
	}
}

func TestExtract(t *testing.T) {
	v, _ := New(4, 3, 2)
	for i := range v.Data {
		v.Data[i] = float64(i)
	}

	sub, err := v.Extract(Box{Start: []int{1, 1, 1}, Size: []int{2, 2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{
		v.At(1, 1, 1), v.At(2, 1, 1),
		v.At(1, 2, 1), v.At(2, 2, 1),
	}
	for i := range want {
		if sub.Data[i] != want[i] {
			t.Fatalf("sub[%d] = %v, want %v", i, sub.Data[i], want[i])
		}
	}

	if _, err := v.Extract(Box{Start: []int{3, 0, 0}, Size: []int{2, 1, 1}}); !core.IsConfig(err) {
		t.Fatalf("out of bounds extract err = %v, want config error", err)
	}
}

func TestSubAndShapeCheck(t *testing.T) {
	a, _ := FromData([]float64{3, 4}, 2)
	b, _ := FromData([]float64{1, 1}, 2)
	d, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if d.Data[0] != 2 || d.Data[1] != 3 {
		t.Fatalf("Sub = %v", d.Data)
	}

	c, _ := New(2, 1)
	if _, err := Sub(a, c); !core.IsShape(err) {
		t.Fatalf("Sub mismatched err = %v, want shape error", err)
	}
}

func TestNormalize(t *testing.T) {
	v, _ := FromData([]float64{-4, 2, 1}, 3)
	v.Normalize()
	if v.Data[0] != -1 || v.Data[1] != 0.5 {
		t.Fatalf("Normalize = %v", v.Data)
	}

	z, _ := New(3)
	z.Normalize()
	for _, x := range z.Data {
		if x != 0 {
			t.Fatal("zero volume changed by Normalize")
		}
	}
}
