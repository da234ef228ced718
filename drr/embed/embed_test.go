package embed

import (
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-drr/drr/core"
)

func rampSlice(n int) []complex128 {
	s := make([]complex128, n)
	for i := range s {
		s[i] = complex(float64(i+1), -float64(i)/2)
	}
	return s
}

func TestPlanShape(t *testing.T) {
	tests := []struct {
		name       string
		shape      []int
		rows, cols int
	}{
		{name: "1d", shape: []int{20}, rows: 11, cols: 10},
		{name: "2d", shape: []int{5, 4}, rows: 3 * 3, cols: 3 * 2},
		{name: "3d", shape: []int{4, 3, 2}, rows: 3 * 2 * 2, cols: 2 * 2 * 1},
		{name: "4d", shape: []int{3, 3, 2, 2}, rows: 2 * 2 * 2 * 2, cols: 2 * 2 * 1 * 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(tt.shape, nil)
			if err != nil {
				t.Fatal(err)
			}
			if p.Rows() != tt.rows || p.Cols() != tt.cols {
				t.Fatalf("Rows,Cols = %d,%d want %d,%d", p.Rows(), p.Cols(), tt.rows, tt.cols)
			}
		})
	}
}

func TestHankelLayout1D(t *testing.T) {
	p, err := NewPlan([]int{5}, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	s := []complex128{0, 1, 2, 3, 4}
	m := p.Embed(s, nil)
	// rows are lags, columns offsets: m[r][c] = s[r+c]
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if m[r*3+c] != s[r+c] {
				t.Fatalf("m[%d][%d] = %v, want %v", r, c, m[r*3+c], s[r+c])
			}
		}
	}
}

func TestBlockHankelLayout2D(t *testing.T) {
	// Slice n1 x n2 = 4 x 3, first axis fastest.
	shape := []int{4, 3}
	lags := []int{2, 2}
	p, err := NewPlan(shape, lags)
	if err != nil {
		t.Fatal(err)
	}
	s := rampSlice(12)
	m := p.Embed(s, nil)
	cols := p.Cols() // (4-2+1)*(3-2+1) = 6

	for a := 0; a < 2; a++ { // lag on axis 2 (block row)
		for i := 0; i < 2; i++ { // lag on axis 1
			for b := 0; b < 2; b++ { // offset on axis 2 (block column)
				for c := 0; c < 3; c++ { // offset on axis 1
					row := a*2 + i
					col := b*3 + c
					want := s[(i+c)+4*(a+b)]
					if got := m[row*cols+col]; got != want {
						t.Fatalf("m[%d][%d] = %v, want %v", row, col, got, want)
					}
				}
			}
		}
	}
}

func TestFoldInvertsEmbed(t *testing.T) {
	for _, shape := range [][]int{{7}, {6, 5}, {4, 3, 3}, {3, 2, 3, 2}} {
		p, err := NewPlan(shape, nil)
		if err != nil {
			t.Fatal(err)
		}
		s := rampSlice(p.SliceLen())
		got := p.Fold(p.Embed(s, nil), nil)
		for i := range s {
			if cmplx.Abs(got[i]-s[i]) > 1e-12 {
				t.Fatalf("shape %v: fold[%d] = %v, want %v", shape, i, got[i], s[i])
			}
		}
	}
}

func TestFoldAverages(t *testing.T) {
	p, _ := NewPlan([]int{3}, []int{2})
	// m[r][c] maps to s[r+c]; position 1 receives m[0][1] and m[1][0].
	m := []complex128{
		1, 10,
		20, 5,
	}
	got := p.Fold(m, nil)
	want := []complex128{1, 15, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fold[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewPlanErrors(t *testing.T) {
	tests := []struct {
		name        string
		shape, lags []int
	}{
		{name: "no axes", shape: nil},
		{name: "too many axes", shape: []int{2, 2, 2, 2, 2}},
		{name: "lag count", shape: []int{4, 4}, lags: []int{2}},
		{name: "lag too large", shape: []int{4}, lags: []int{5}},
		{name: "lag zero", shape: []int{4}, lags: []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPlan(tt.shape, tt.lags); !core.IsConfig(err) {
				t.Fatalf("err = %v, want config error", err)
			}
		})
	}
}

func TestEmbedReusesBuffer(t *testing.T) {
	p, _ := NewPlan([]int{6}, nil)
	buf := make([]complex128, 0, p.Rows()*p.Cols())
	m := p.Embed(rampSlice(6), buf)
	if &m[0] != &buf[:1][0] {
		t.Fatal("Embed did not reuse the provided buffer")
	}
}

func TestPlanLags(t *testing.T) {
	p, _ := NewPlan([]int{7, 4}, nil)
	lags := p.Lags()
	if len(lags) != 2 || lags[0] != 4 || lags[1] != 3 {
		t.Fatalf("default lags = %v, want [4 3]", lags)
	}
	lags[0] = 1
	if p.Lags()[0] != 4 {
		t.Fatal("Lags must return a copy")
	}
}
