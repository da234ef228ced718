// Package testutil provides deterministic test signals and tolerance checks
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*freqHz*i/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude] for a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := newRand(seed)
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// GaussianNoise returns normally distributed noise with standard deviation
// sigma for a fixed seed.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	rng := newRand(seed)
	out := make([]float64, length)
	for i := range out {
		out[i] = sigma * rng.NormFloat64()
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
