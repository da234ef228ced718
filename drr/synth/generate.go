package synth

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// DefaultSeed is the noise seed of the benchmark scenarios.
const DefaultSeed = 201415

// Generator creates deterministic volumes from a shared seed.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise and masks.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator seeded with [DefaultSeed].
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: DefaultSeed}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the configured seed.
func (g *Generator) Seed() int64 { return g.seed }

// Ricker returns a zero-phase Ricker wavelet of the given peak frequency,
// sampled at dt and centred in samples values.
func Ricker(peakHz, dt float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, core.Configf("synth", "wavelet samples must be > 0: %d", samples)
	}
	if !(peakHz > 0) || !(dt > 0) {
		return nil, core.Configf("synth", "wavelet frequency and interval must be > 0: %v, %v", peakHz, dt)
	}
	out := make([]float64, samples)
	mid := float64(samples-1) / 2
	for i := range out {
		a := math.Pi * peakHz * (float64(i) - mid) * dt
		a *= a
		out[i] = (1 - 2*a) * math.Exp(-a)
	}
	return out, nil
}

// Event is a wavelet placed along a traveltime surface, in samples.
//
// Without an apex the traveltime is linear: Time + sum(Slopes[a]*x[a]).
// With an apex it is hyperbolic: sqrt(Time^2 + sum((Slopes[a]*(x[a]-Apex[a]))^2)),
// so Slopes is the asymptotic moveout per trace. Missing slopes are 0.
type Event struct {
	Time      float64
	Slopes    []float64
	Apex      []float64
	Amplitude float64
}

// Traveltime returns the wavelet centre, in samples, at spatial index x.
func (e Event) Traveltime(x []int) float64 {
	if e.Apex == nil {
		t := e.Time
		for a, xa := range x {
			if a < len(e.Slopes) {
				t += e.Slopes[a] * float64(xa)
			}
		}
		return t
	}
	t2 := e.Time * e.Time
	for a, xa := range x {
		if a >= len(e.Slopes) {
			continue
		}
		apex := 0.0
		if a < len(e.Apex) {
			apex = e.Apex[a]
		}
		d := e.Slopes[a] * (float64(xa) - apex)
		t2 += d * d
	}
	return math.Sqrt(t2)
}

// Volume builds a clean volume of shape from events. Each event adds the
// wavelet centred on the nearest sample of its traveltime; samples falling
// outside the trace are dropped.
func Volume(shape []int, wavelet []float64, events ...Event) (*volume.Volume, error) {
	v, err := volume.New(shape...)
	if err != nil {
		return nil, err
	}
	if len(wavelet) == 0 {
		return nil, core.Configf("synth", "wavelet must not be empty")
	}
	nt := v.Samples()
	half := (len(wavelet) - 1) / 2
	spatial := v.SpatialShape()
	x := make([]int, len(spatial))
	if v.Dims() == 1 {
		x = x[:0]
	}

	for j := 0; j < v.Traces(); j++ {
		tr := v.Trace(j)
		for _, ev := range events {
			amp := ev.Amplitude
			if amp == 0 {
				amp = 1
			}
			c := int(math.Round(ev.Traveltime(x)))
			for i, w := range wavelet {
				k := c - half + i
				if k >= 0 && k < nt {
					tr[k] += amp * w
				}
			}
		}
		for a := range x {
			x[a]++
			if x[a] < spatial[a] {
				break
			}
			x[a] = 0
		}
	}
	return v, nil
}

// AddNoise returns v plus Gaussian noise of standard deviation sigma.
func (g *Generator) AddNoise(v *volume.Volume, sigma float64) (*volume.Volume, error) {
	if sigma < 0 || math.IsNaN(sigma) {
		return nil, core.Configf("synth", "noise level must be >= 0: %v", sigma)
	}
	out := v.Clone()
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out.Data {
		out.Data[i] += sigma * rng.NormFloat64()
	}
	return out, nil
}

// maskStream offsets the seed of [Generator.Mask] so the removed traces are
// not drawn from the noise sequence.
const maskStream = 1

// Mask returns a volume of shape holding 1 on kept traces and 0 on
// round(ratio*traces) randomly chosen removed traces.
func (g *Generator) Mask(shape []int, ratio float64) (*volume.Volume, error) {
	if !(ratio >= 0 && ratio < 1) {
		return nil, core.Configf("synth", "decimation ratio must be in [0,1): %v", ratio)
	}
	m, err := volume.New(shape...)
	if err != nil {
		return nil, err
	}
	for i := range m.Data {
		m.Data[i] = 1
	}
	traces := m.Traces()
	removed := int(math.Round(ratio * float64(traces)))
	rng := rand.New(rand.NewSource(g.seed + maskStream))
	for _, j := range rng.Perm(traces)[:removed] {
		tr := m.Trace(j)
		for i := range tr {
			tr[i] = 0
		}
	}
	return m, nil
}
