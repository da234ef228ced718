// Package synth generates deterministic synthetic seismic volumes: Ricker
// wavelets placed along linear or hyperbolic events, Gaussian noise, and
// trace decimation masks for reconstruction tests.
package synth
