package window

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// Spec configures the partition. Sizes and Overlaps are per axis, time first.
// A size of 0 (or a missing entry) covers the whole axis; a missing overlap is 0.
// Entries beyond the volume's axes must be 0 or 1.
type Spec struct {
	Sizes    []int
	Overlaps []float64
	Taper    Taper
}

// Planner holds the partition of one volume shape. It is safe for concurrent use.
type Planner struct {
	shape  []int
	sizes  []int
	starts [][]int
	taper  Taper
	count  int

	mu    sync.Mutex
	cache map[weightKey][]float64
}

type weightKey [2 * volume.MaxDims]int

// NewPlanner validates spec against shape and computes the window starts.
func NewPlanner(shape []int, spec Spec) (*Planner, error) {
	if len(shape) == 0 || len(shape) > volume.MaxDims {
		return nil, core.Configf("window", "volume must have 1..%d axes, got %d", volume.MaxDims, len(shape))
	}
	if err := validateSpec(shape, spec); err != nil {
		return nil, err
	}

	p := &Planner{
		shape:  append([]int(nil), shape...),
		sizes:  make([]int, len(shape)),
		starts: make([][]int, len(shape)),
		taper:  spec.Taper,
		count:  1,
		cache:  make(map[weightKey][]float64),
	}
	for axis, n := range shape {
		w := n
		if axis < len(spec.Sizes) && spec.Sizes[axis] > 0 {
			w = spec.Sizes[axis]
		}
		r := 0.0
		if axis < len(spec.Overlaps) {
			r = spec.Overlaps[axis]
		}
		p.sizes[axis] = w
		p.starts[axis] = axisStarts(n, w, overlapSamples(w, r))
		p.count *= len(p.starts[axis])
	}
	return p, nil
}

func validateSpec(shape []int, spec Spec) error {
	switch spec.Taper {
	case TaperLinear, TaperCosine, TaperRectangular:
	default:
		return core.Configf("window", "unknown taper %d", int(spec.Taper))
	}
	for axis, w := range spec.Sizes {
		if w < 0 {
			return core.Configf("window", "size on axis %d must be >= 0: %d", axis, w)
		}
		if axis >= len(shape) {
			if w > 1 {
				return core.Configf("window", "size %d given for axis %d of a %d-axis volume", w, axis, len(shape))
			}
			continue
		}
		if w > shape[axis] {
			return core.Configf("window", "size %d exceeds extent %d on axis %d", w, shape[axis], axis)
		}
	}
	for axis, r := range spec.Overlaps {
		if math.IsNaN(r) || r < 0 || r >= 1 {
			return core.Configf("window", "overlap on axis %d must be in [0,1): %v", axis, r)
		}
	}
	return nil
}

func overlapSamples(w int, r float64) int {
	ov := int(math.Round(r * float64(w)))
	if ov > w-1 {
		ov = w - 1
	}
	if ov < 0 {
		ov = 0
	}
	return ov
}

// axisStarts lists window starts along one axis; the last one is shifted so
// that it ends exactly at n.
func axisStarts(n, w, ov int) []int {
	step := w - ov
	starts := []int{0}
	for s := 0; s+w < n; {
		s += step
		if s+w > n {
			s = n - w
		}
		starts = append(starts, s)
	}
	return starts
}

// Count returns the number of windows.
func (p *Planner) Count() int { return p.count }

// Sizes returns the window size per axis.
func (p *Planner) Sizes() []int { return append([]int(nil), p.sizes...) }

// Starts returns the window starts along axis.
func (p *Planner) Starts(axis int) []int { return append([]int(nil), p.starts[axis]...) }

// Box returns window i. Windows are numbered with axis 0 varying fastest.
func (p *Planner) Box(i int) volume.Box {
	b := volume.Box{Start: make([]int, len(p.shape)), Size: append([]int(nil), p.sizes...)}
	for axis, st := range p.starts {
		b.Start[axis] = st[i%len(st)]
		i /= len(st)
	}
	return b
}

// Weights returns the taper of window i. The returned slice is shared and
// must not be modified.
func (p *Planner) Weights(i int) []float64 {
	var key weightKey
	for axis, st := range p.starts {
		j := i % len(st)
		i /= len(st)
		w := p.sizes[axis]
		if j > 0 {
			key[2*axis] = st[j-1] + w - st[j]
		}
		if j < len(st)-1 {
			key[2*axis+1] = st[j] + w - st[j+1]
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if wts, ok := p.cache[key]; ok {
		return wts
	}
	wts := p.buildWeights(key)
	p.cache[key] = wts
	return wts
}

// buildWeights forms the outer product of the per-axis profiles.
func (p *Planner) buildWeights(key weightKey) []float64 {
	total := 1
	for _, w := range p.sizes {
		total *= w
	}
	wts := make([]float64, total)
	for i := range wts {
		wts[i] = 1
	}
	stride := 1
	for axis, w := range p.sizes {
		prof := Profile(p.taper, w, key[2*axis], key[2*axis+1])
		line := make([]float64, total)
		for i := range line {
			line[i] = prof[(i/stride)%w]
		}
		vecmath.MulBlockInPlace(wts, line)
		stride *= w
	}
	return wts
}
