package ortho

import "github.com/cwbudde/algo-drr/drr/volume"

// triangle holds normalized triangle weights k[|d|] = (r-|d|)/r^2 for |d| < r.
type triangle []float64

func newTriangle(r int) triangle {
	k := make(triangle, r)
	norm := 1 / float64(r*r)
	for d := range k {
		k[d] = float64(r-d) * norm
	}
	return k
}

// fold maps an index onto [0,n) by half-sample symmetric extension.
func fold(j, n int) int {
	p := 2 * n
	j %= p
	if j < 0 {
		j += p
	}
	if j >= n {
		j = p - 1 - j
	}
	return j
}

// smoother applies separable triangle smoothing to volumes of one shape.
// The operator is symmetric and maps constants to themselves.
type smoother struct {
	shape   []int
	strides []int
	kernels []triangle
	line    []float64
}

func newSmoother(shape, rect []int) *smoother {
	s := &smoother{
		shape:   shape,
		strides: volume.Strides(shape),
		kernels: make([]triangle, len(shape)),
	}
	longest := 0
	for axis, n := range shape {
		r := 1
		if axis < len(rect) && rect[axis] > 1 {
			r = rect[axis]
		}
		if r > 1 && n > 1 {
			s.kernels[axis] = newTriangle(r)
		}
		longest = max(longest, n)
	}
	s.line = make([]float64, longest)
	return s
}

// apply smooths x in place.
func (s *smoother) apply(x []float64) {
	for axis, k := range s.kernels {
		if k == nil {
			continue
		}
		n, stride := s.shape[axis], s.strides[axis]
		lines := len(x) / n
		for l := 0; l < lines; l++ {
			// Offset of the first sample of line l along axis.
			base := (l/stride)*stride*n + l%stride
			s.smoothLine(x, base, stride, n, k)
		}
	}
}

func (s *smoother) smoothLine(x []float64, base, stride, n int, k triangle) {
	line := s.line[:n]
	for i := range line {
		line[i] = x[base+i*stride]
	}
	r := len(k)
	for i := 0; i < n; i++ {
		sum := k[0] * line[i]
		for d := 1; d < r; d++ {
			sum += k[d] * (line[fold(i-d, n)] + line[fold(i+d, n)])
		}
		x[base+i*stride] = sum
	}
}
