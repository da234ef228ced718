package snr

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drr/drr/core"
	"github.com/cwbudde/algo-drr/drr/volume"
)

// SNR returns the ratio in dB of the reference energy to the residual
// energy. A zero residual gives +Inf, even for an all-zero reference, and a
// zero reference with a residual gives -Inf.
func SNR(ref, est []float64) (float64, error) {
	if len(ref) != len(est) {
		return 0, core.Shapef("snr", "length mismatch: %d vs %d", len(ref), len(est))
	}
	if len(ref) == 0 {
		return 0, core.Shapef("snr", "empty input")
	}
	res := make([]float64, len(ref))
	for i := range res {
		res[i] = ref[i] - est[i]
	}
	return ratio(energy(ref), energy(res)), nil
}

func energy(x []float64) float64 {
	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)
	sum := 0.0
	for _, v := range sq {
		sum += v
	}
	return sum
}

func ratio(sig, noise float64) float64 {
	if noise == 0 {
		return math.Inf(1)
	}
	return core.LinearPowerToDB(sig / noise)
}

// Volume returns the SNR over all samples of two volumes of equal shape.
func Volume(ref, est *volume.Volume) (float64, error) {
	if err := volume.CheckSameShape("snr", ref, est); err != nil {
		return 0, err
	}
	return SNR(ref.Data, est.Data)
}

// Along returns one SNR per index of axis, each computed over the samples
// sharing that index. Axis 1 of a 2-D section gives one value per trace.
func Along(ref, est *volume.Volume, axis int) ([]float64, error) {
	if err := volume.CheckSameShape("snr", ref, est); err != nil {
		return nil, err
	}
	if axis < 0 || axis >= ref.Dims() {
		return nil, core.Configf("snr", "axis %d outside 0..%d", axis, ref.Dims()-1)
	}
	n := ref.Shape[axis]
	stride := ref.Strides()[axis]
	sig := make([]float64, n)
	noise := make([]float64, n)
	for i, r := range ref.Data {
		k := (i / stride) % n
		d := r - est.Data[i]
		sig[k] += r * r
		noise[k] += d * d
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = ratio(sig[k], noise[k])
	}
	return out, nil
}

// Mean returns the average of [Along].
func Mean(ref, est *volume.Volume, axis int) (float64, error) {
	vals, err := Along(ref, est, axis)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals)), nil
}
