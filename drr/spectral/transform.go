package spectral

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// Transform converts traces of a fixed length between time and frequency.
// A Transform is not safe for concurrent use.
type Transform struct {
	nt    int
	nf    int
	ilow  int
	ihigh int
	plan  *algofft.Plan[complex128]
	buf   []complex128
}

// NewTransform prepares a transform for traces of nt samples at interval dt
// seconds, keeping bins in the band [lowHz, highHz].
//
// The kept bins are floor(lowHz*dt*nf) .. floor(highHz*dt*nf), clipped to the
// non-negative half spectrum.
func NewTransform(nt int, dt, lowHz, highHz float64) (*Transform, error) {
	if nt <= 0 {
		return nil, core.Configf("spectral", "trace length must be > 0: %d", nt)
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, core.Configf("spectral", "sample interval must be > 0: %v", dt)
	}
	if lowHz < 0 || highHz < lowHz || math.IsNaN(lowHz) || math.IsNaN(highHz) {
		return nil, core.Configf("spectral", "invalid band [%v, %v] Hz", lowHz, highHz)
	}

	nf := core.NextPowerOf2(nt)
	plan, err := algofft.NewPlan64(nf)
	if err != nil {
		return nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
	}

	half := nf / 2
	ilow := int(math.Floor(lowHz * dt * float64(nf)))
	ihigh := half
	if h := highHz * dt * float64(nf); h < float64(half) {
		ihigh = int(math.Floor(h))
	}
	if ilow > half {
		ilow = half + 1 // empty band
	}

	return &Transform{
		nt:    nt,
		nf:    nf,
		ilow:  ilow,
		ihigh: ihigh,
		plan:  plan,
		buf:   make([]complex128, nf),
	}, nil
}

// Len returns the padded transform length nf.
func (t *Transform) Len() int { return t.nf }

// Samples returns the trace length nt.
func (t *Transform) Samples() int { return t.nt }

// Band returns the first and last kept bin. The band is empty when lo > hi.
func (t *Transform) Band() (lo, hi int) { return t.ilow, t.ihigh }

// Forward transforms every trace of v. The result holds nf bins per trace,
// trace-major: bin k of trace j is at j*nf+k.
func (t *Transform) Forward(v *volume.Volume) ([]complex128, error) {
	if v.Samples() != t.nt {
		return nil, core.Shapef("spectral.Forward", "trace length %d, transform expects %d", v.Samples(), t.nt)
	}
	traces := v.Traces()
	fx := make([]complex128, traces*t.nf)
	for j := 0; j < traces; j++ {
		tr := v.Trace(j)
		core.ZeroComplex(t.buf)
		for i, x := range tr {
			t.buf[i] = complex(x, 0)
		}
		if err := t.plan.Forward(fx[j*t.nf:(j+1)*t.nf], t.buf); err != nil {
			return nil, fmt.Errorf("spectral: forward FFT failed: %w", err)
		}
	}
	return fx, nil
}

// Inverse rebuilds bins nf/2+1..nf-1 of every trace from Hermitian symmetry,
// inverse transforms, and writes the real part of the first nt samples into out.
// fx is modified in place.
func (t *Transform) Inverse(fx []complex128, out *volume.Volume) error {
	if out.Samples() != t.nt || len(fx) != out.Traces()*t.nf {
		return core.Shapef("spectral.Inverse", "spectrum of %d bins does not fit volume %v", len(fx), out.Shape)
	}
	half := t.nf / 2
	for j := 0; j < out.Traces(); j++ {
		spec := fx[j*t.nf : (j+1)*t.nf]
		for k := half + 1; k < t.nf; k++ {
			re, im := real(spec[t.nf-k]), imag(spec[t.nf-k])
			spec[k] = complex(re, -im)
		}
		if err := t.plan.Inverse(t.buf, spec); err != nil {
			return fmt.Errorf("spectral: inverse FFT failed: %w", err)
		}
		tr := out.Trace(j)
		for i := range tr {
			tr[i] = real(t.buf[i])
		}
	}
	return nil
}

// Gather copies bin k of every trace into dst (length traces), the spatial
// slice of that frequency.
func (t *Transform) Gather(fx []complex128, k int, dst []complex128) []complex128 {
	traces := len(fx) / t.nf
	dst = core.EnsureLenComplex(dst, traces)
	for j := range dst {
		dst[j] = fx[j*t.nf+k]
	}
	return dst
}

// Scatter writes a spatial slice back into bin k of every trace.
func (t *Transform) Scatter(fx []complex128, k int, slice []complex128) {
	for j, c := range slice {
		fx[j*t.nf+k] = c
	}
}

// Energy returns the summed power |X|^2 of a slice.
func Energy(slice []complex128, scratch []float64) float64 {
	n := len(slice)
	if n == 0 {
		return 0
	}
	scratch = core.EnsureLen(scratch, 3*n)
	re, im, pow := scratch[:n], scratch[n:2*n], scratch[2*n:3*n]
	for i, c := range slice {
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(pow, re, im)
	sum := 0.0
	for _, p := range pow {
		sum += p
	}
	return sum
}
