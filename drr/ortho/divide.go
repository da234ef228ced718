package ortho

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// shapingWeight is the regularization weight of the shaping conjugate
// gradient iteration.
const shapingWeight = 0.1

// Options configures shaping-regularized division.
type Options struct {
	// Rect is the triangle smoothing radius per axis, time first. Missing
	// entries and values below 2 leave the axis unsmoothed.
	Rect []int
	// Iterations bounds the conjugate gradient iterations.
	Iterations int
	// Eps stabilizes the division where the denominator is small. Zero
	// disables stabilization.
	Eps float64
	// Tolerance stops the iteration once the squared gradient norm has
	// dropped by this factor.
	Tolerance float64
}

// DefaultOptions returns radius 20 in time and 10 in space, 50 iterations
// and tolerance 1e-6.
func DefaultOptions() Options {
	return Options{
		Rect:       []int{20, 10, 1, 1, 1},
		Iterations: 50,
		Tolerance:  1e-6,
	}
}

func (o Options) validate() error {
	if o.Iterations < 1 {
		return core.Configf("ortho", "iterations must be >= 1: %d", o.Iterations)
	}
	if o.Eps < 0 || math.IsNaN(o.Eps) {
		return core.Configf("ortho", "eps must be >= 0: %v", o.Eps)
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return core.Configf("ortho", "tolerance must be >= 0: %v", o.Tolerance)
	}
	for axis, r := range o.Rect {
		if r < 0 {
			return core.Configf("ortho", "radius on axis %d must be >= 0: %d", axis, r)
		}
	}
	return nil
}

// Divide estimates the smooth ratio num/den. Running out of iterations is
// not an error: the current estimate is returned and counted as unconverged.
func Divide(num, den *volume.Volume, opts Options, extra ...core.Option) (*volume.Volume, error) {
	if err := volume.CheckSameShape("ortho.Divide", num, den); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	cfg := core.ApplyOptions(extra...)

	n := num.Len()
	b := append([]float64(nil), num.Data...)
	w := append([]float64(nil), den.Data...)

	if opts.Eps > 0 {
		for i, d := range w {
			s := 1 / math.Hypot(d, opts.Eps)
			b[i] *= s
			w[i] = d * s
		}
	}

	energy := dot(w, w)
	out := volume.ZerosLike(num)
	if energy == 0 {
		return out, nil
	}
	norm := math.Sqrt(float64(n) / energy)
	vecmath.ScaleBlock(b, b, norm)
	vecmath.ScaleBlock(w, w, norm)

	s := newSmoother(num.Shape, opts.Rect)
	iters, converged := shapingCG(w, b, out.Data, s, opts.Iterations, opts.Tolerance)
	if !converged {
		cfg.Report.AddUnconverged()
		cfg.Logger.Debug().
			Int("iterations", iters).
			Msg("division did not converge")
	}
	return out, nil
}

// shapingCG solves min ||w*x - b|| with x = S p by conjugate gradients in
// the preconditioned variable p, writing x. It returns the iterations run
// and whether the gradient fell below tol.
func shapingCG(w, b, x []float64, s *smoother, niter int, tol float64) (int, bool) {
	n := len(b)
	p := make([]float64, n)
	r := make([]float64, n)
	gp := make([]float64, n)
	gx := make([]float64, n)
	gr := make([]float64, n)
	sp := make([]float64, n)
	sx := make([]float64, n)
	sr := make([]float64, n)

	for i := range r {
		r[i] = -b[i]
	}
	core.Zero(x)

	var g0, gnp float64
	for iter := 0; iter < niter; iter++ {
		// gx = W'r - eps*x ; gp = S'gx + eps*p
		vecmath.MulBlock(gx, w, r)
		for i := range gx {
			gx[i] -= shapingWeight * x[i]
		}
		copy(gp, gx)
		s.apply(gp)
		for i := range gp {
			gp[i] += shapingWeight * p[i]
		}
		// gx = S gp ; gr = W gx
		copy(gx, gp)
		s.apply(gx)
		vecmath.MulBlock(gr, w, gx)

		gn := dot(gp, gp)
		if iter == 0 {
			g0 = gn
			if g0 == 0 {
				return iter, true
			}
			copy(sp, gp)
			copy(sx, gx)
			copy(sr, gr)
		} else {
			alpha := gn / gnp
			if alpha < tol || gn/g0 < tol {
				return iter, true
			}
			for i := range sp {
				sp[i] = gp[i] + alpha*sp[i]
				sx[i] = gx[i] + alpha*sx[i]
				sr[i] = gr[i] + alpha*sr[i]
			}
		}

		beta := dot(sr, sr) + shapingWeight*(dot(sp, sp)-dot(sx, sx))
		if beta == 0 {
			return iter + 1, true
		}
		alpha := -gn / beta
		for i := range p {
			p[i] += alpha * sp[i]
			x[i] += alpha * sx[i]
			r[i] += alpha * sr[i]
		}
		gnp = gn
	}
	return niter, false
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
