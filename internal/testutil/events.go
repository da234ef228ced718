package testutil

import "math"

// ShiftedPulses returns traces*nt samples, trace after trace, holding one
// Gaussian pulse per slope. The pulse of event e is circularly shifted by
// slopes[e] samples per trace, so with nt a power of two every frequency
// slice is an exact sum of len(slopes) complex exponentials.
func ShiftedPulses(nt, traces int, slopes ...int) []float64 {
	out := make([]float64, nt*traces)
	for e, s := range slopes {
		c := nt/4 + e*nt/(len(slopes)+1)
		for j := 0; j < traces; j++ {
			m := c + s*j
			for i := 0; i < nt; i++ {
				d := ((i-m)%nt + nt) % nt
				if d > nt/2 {
					d -= nt
				}
				x := float64(d) / 2.5
				out[j*nt+i] += math.Exp(-x * x)
			}
		}
	}
	return out
}
