package rank

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-drr/drr/core"
)

// HardTruncation is the damping factor that disables damping.
var HardTruncation = math.Inf(1)

// Reducer applies damped rank reduction to embedding matrices. It holds no
// per-call state and is safe for concurrent use.
type Reducer struct {
	spec    Spec
	sel     Selector
	damping float64
	cfg     core.Config
}

// Result describes one reduction.
type Result struct {
	// Rank is the number of singular values kept.
	Rank int
	// Requested is the rank chosen by the selector before clamping.
	Requested int
	// Clamped is set when Requested exceeded the available rank.
	Clamped bool
	// Values is the complex singular value spectrum, descending.
	Values []float64
}

// NewReducer validates the rank spec, selector and damping factor.
// damping must be > 0; use [HardTruncation] for plain truncated SVD.
func NewReducer(spec Spec, sel Selector, damping float64, opts ...core.Option) (*Reducer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if !(damping > 0) {
		return nil, core.Configf("rank", "damping factor must be > 0, got %v", damping)
	}
	return &Reducer{spec: spec, sel: sel, damping: damping, cfg: core.ApplyOptions(opts...)}, nil
}

// Spec returns the configured rank spec.
func (r *Reducer) Spec() Spec { return r.spec }

// Damping returns the damping factor.
func (r *Reducer) Damping() float64 { return r.damping }

// Reduce replaces the rows x cols row-major matrix m by its damped low-rank
// approximation. A rank above min(rows, cols) is clamped and reported.
// A failed decomposition leaves m untouched and returns a [core.KindNumerical]
// error.
func (r *Reducer) Reduce(m []complex128, rows, cols int) (Result, error) {
	if rows <= 0 || cols <= 0 || len(m) != rows*cols {
		return Result{}, core.Shapef("rank.Reduce", "matrix of %d entries is not %dx%d", len(m), rows, cols)
	}

	rr, rc := 2*rows, 2*cols
	data := make([]float64, rr*rc)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := m[i*cols+j]
			re, im := real(c), imag(c)
			data[i*rc+j] = re
			data[i*rc+cols+j] = -im
			data[(rows+i)*rc+j] = im
			data[(rows+i)*rc+cols+j] = re
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(rr, rc, data), mat.SVDThin); !ok {
		return Result{}, core.Numericalf("rank.Reduce", "SVD failed for %dx%d matrix", rows, cols)
	}
	s := svd.Values(nil)

	avail := min(rows, cols)
	sigma := make([]float64, avail)
	for j := range sigma {
		sigma[j] = s[2*j]
	}

	k := r.sel.Select(r.spec, sigma)
	res := Result{Requested: k, Rank: k, Values: sigma}
	if k > avail {
		res.Rank, res.Clamped = avail, true
		r.cfg.Report.AddRankClamp()
		r.cfg.Logger.Debug().
			Int("requested", k).
			Int("available", avail).
			Msg("rank clamped to matrix size")
	}

	keep := 2 * res.Rank
	next := 0.0
	if keep < len(s) {
		next = s[keep]
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	us := mat.NewDense(rr, keep, nil)
	for col := 0; col < keep; col++ {
		w := dampedValue(s[col], next, r.damping)
		for row := 0; row < rr; row++ {
			us.Set(row, col, u.At(row, col)*w)
		}
	}

	var out mat.Dense
	out.Mul(us, v.Slice(0, rc, 0, keep).T())

	// Average the two copies of each block to stay on the complex structure.
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			re := 0.5 * (out.At(i, j) + out.At(rows+i, cols+j))
			im := 0.5 * (out.At(rows+i, j) - out.At(i, cols+j))
			m[i*cols+j] = complex(re, im)
		}
	}
	return res, nil
}

// dampedValue returns s*(1-(next/s)^n), the damped replacement of a kept
// singular value s given the first discarded value next.
func dampedValue(s, next, n float64) float64 {
	if s <= 0 {
		return 0
	}
	if next <= 0 {
		return s
	}
	ratio := next / s
	if ratio >= 1 {
		return 0
	}
	return s * (1 - math.Pow(ratio, n))
}
