// Package snr measures the signal-to-noise ratio of an estimate against a
// clean reference, 10*log10(||ref||^2 / ||ref-est||^2) in dB.
package snr
