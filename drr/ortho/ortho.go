package ortho

import (
	"math"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// Result is a refined signal/noise split.
type Result struct {
	Signal *volume.Volume
	Noise  *volume.Volume
	// Weight is the local ratio of noise leakage to signal.
	Weight *volume.Volume
}

// LocalOrthogonalize moves signal leaked into noise back into signal.
// Signal + Noise of the result equals signal + noise of the input.
func LocalOrthogonalize(signal, noise *volume.Volume, opts Options, extra ...core.Option) (Result, error) {
	if err := volume.CheckSameShape("ortho.LocalOrthogonalize", signal, noise); err != nil {
		return Result{}, err
	}
	w, err := Divide(noise, signal, opts, extra...)
	if err != nil {
		return Result{}, err
	}

	s2 := signal.Clone()
	n2 := noise.Clone()
	for i, s := range signal.Data {
		leak := w.Data[i] * s
		s2.Data[i] = s + leak
		n2.Data[i] = noise.Data[i] - leak
	}
	return Result{Signal: s2, Noise: n2, Weight: w}, nil
}

// LocalSimilarity returns sqrt(|divide(a,b)*divide(b,a)|) clamped to [0,1]:
// 1 where a and b agree up to a local scale, near 0 where they are unrelated.
func LocalSimilarity(a, b *volume.Volume, opts Options, extra ...core.Option) (*volume.Volume, error) {
	if err := volume.CheckSameShape("ortho.LocalSimilarity", a, b); err != nil {
		return nil, err
	}
	ab, err := Divide(a, b, opts, extra...)
	if err != nil {
		return nil, err
	}
	ba, err := Divide(b, a, opts, extra...)
	if err != nil {
		return nil, err
	}
	for i := range ab.Data {
		ab.Data[i] = core.Clamp(sqrtAbs(ab.Data[i]*ba.Data[i]), 0, 1)
	}
	return ab, nil
}

func sqrtAbs(x float64) float64 {
	if x < 0 {
		x = -x
	}
	return math.Sqrt(x)
}
