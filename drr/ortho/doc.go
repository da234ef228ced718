// Package ortho refines a signal/noise split by local orthogonalization and
// measures local similarity between two volumes.
//
// Both rest on shaping-regularized division: the ratio num/den is estimated
// as a smooth map w minimizing ||den*w - num|| under a triangle smoothing
// constraint, solved by conjugate gradients. Smoothing radii are given per
// axis; a radius of 1 leaves an axis unsmoothed.
//
// Local orthogonalization moves the part of the noise estimate that is
// locally correlated with the signal back into the signal:
//
//	w      = divide(noise, signal)
//	signal = signal + w*signal
//	noise  = noise  - w*signal
//
// so that signal + noise is unchanged.
package ortho
