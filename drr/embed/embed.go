// Package embed builds block-Hankel embedding matrices from spatial slices and
// folds them back.
//
// For spatial extents n_d and lags L_d the matrix has prod(L_d) rows and
// prod(n_d-L_d+1) columns. A row is a composite lag index (i_1, ..., i_D) and
// a column a composite offset (c_1, ..., c_D), both with the first spatial
// axis varying fastest, and the entry is slice[i_1+c_1, ..., i_D+c_D]. With
// one spatial axis this is a Hankel matrix; with two it is a Hankel matrix of
// Hankel blocks, and so on up to four axes.
//
// Matrices are dense, row-major []complex128.
package embed

import (
	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// MaxAxes is the largest number of spatial axes supported.
const MaxAxes = 4

// Plan holds the index maps for one slice shape and lag choice. A Plan is
// immutable after construction and safe for concurrent use.
type Plan struct {
	shape  []int
	lags   []int
	rows   int
	cols   int
	rowPos []int
	colPos []int
	inv    []float64
}

// DefaultLags returns floor(n/2)+1 for every extent.
func DefaultLags(shape []int) []int {
	lags := make([]int, len(shape))
	for i, n := range shape {
		lags[i] = n/2 + 1
	}
	return lags
}

// NewPlan validates lags against shape and precomputes the index maps.
// A nil lags selects [DefaultLags].
func NewPlan(shape, lags []int) (*Plan, error) {
	if len(shape) == 0 || len(shape) > MaxAxes {
		return nil, core.Configf("embed", "need 1..%d spatial axes, got %d", MaxAxes, len(shape))
	}
	if lags == nil {
		lags = DefaultLags(shape)
	}
	if len(lags) != len(shape) {
		return nil, core.Configf("embed", "%d lags for %d spatial axes", len(lags), len(shape))
	}
	offs := make([]int, len(shape))
	for d, n := range shape {
		if n <= 0 {
			return nil, core.Configf("embed", "axis %d has extent %d", d, n)
		}
		if lags[d] < 1 || lags[d] > n {
			return nil, core.Configf("embed", "lag %d on axis %d outside [1, %d]", lags[d], d, n)
		}
		offs[d] = n - lags[d] + 1
	}

	strides := volume.Strides(shape)
	p := &Plan{
		shape:  append([]int(nil), shape...),
		lags:   append([]int(nil), lags...),
		rowPos: positions(lags, strides),
		colPos: positions(offs, strides),
	}
	p.rows = len(p.rowPos)
	p.cols = len(p.colPos)

	total := 1
	for _, n := range shape {
		total *= n
	}
	counts := make([]float64, total)
	for _, rp := range p.rowPos {
		for _, cp := range p.colPos {
			counts[rp+cp]++
		}
	}
	p.inv = make([]float64, total)
	for i, c := range counts {
		p.inv[i] = 1 / c
	}
	return p, nil
}

// positions enumerates the slice offset of every composite index over
// extents, first axis fastest.
func positions(extents, strides []int) []int {
	n := 1
	for _, e := range extents {
		n *= e
	}
	out := make([]int, n)
	idx := make([]int, len(extents))
	for k := range out {
		off := 0
		for d, i := range idx {
			off += i * strides[d]
		}
		out[k] = off
		for d := range idx {
			idx[d]++
			if idx[d] < extents[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

// Rows returns the matrix row count.
func (p *Plan) Rows() int { return p.rows }

// Cols returns the matrix column count.
func (p *Plan) Cols() int { return p.cols }

// SliceLen returns the number of slice samples.
func (p *Plan) SliceLen() int { return len(p.inv) }

// Lags returns a copy of the lag vector.
func (p *Plan) Lags() []int { return append([]int(nil), p.lags...) }

// Embed writes the embedding matrix of slice into dst (reused when large
// enough) and returns it.
func (p *Plan) Embed(slice, dst []complex128) []complex128 {
	dst = core.EnsureLenComplex(dst, p.rows*p.cols)
	for r, rp := range p.rowPos {
		row := dst[r*p.cols : (r+1)*p.cols]
		for c, cp := range p.colPos {
			row[c] = slice[rp+cp]
		}
	}
	return dst
}

// Fold anti-embeds m: every slice sample becomes the mean of all matrix
// entries that map to it. Folding an unmodified embedding reproduces the slice.
func (p *Plan) Fold(m, dst []complex128) []complex128 {
	dst = core.EnsureLenComplex(dst, len(p.inv))
	core.ZeroComplex(dst)
	for r, rp := range p.rowPos {
		row := m[r*p.cols : (r+1)*p.cols]
		for c, cp := range p.colPos {
			dst[rp+cp] += row[c]
		}
	}
	for i, w := range p.inv {
		dst[i] *= complex(w, 0)
	}
	return dst
}
