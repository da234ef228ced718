// Package spectral maps a time-domain volume to per-frequency spatial slices
// and back.
//
// Every trace is zero-padded to the next power of two and transformed with an
// algo-fft plan. The f-x spectrum is kept trace-major (bin fastest), and
// [Transform.Gather] / [Transform.Scatter] move one frequency bin in and out
// of a spatial slice whose first spatial axis varies fastest, matching the
// volume layout. [Transform.Inverse] rebuilds the negative frequencies from
// Hermitian symmetry, so callers only touch bins 0..nf/2.
package spectral
