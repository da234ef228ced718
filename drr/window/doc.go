// Package window splits a volume into overlapping rectangular windows,
// filters each window independently and blends the results back.
//
// Along every axis a window of size w with overlap ratio r advances by
// w - round(r*w) samples; the last window is shifted inward so that no window
// leaves the volume and nothing is padded. Each filtered window is multiplied
// by a taper that ramps up on the faces it shares with a neighbour and is 1
// elsewhere. The output is the weighted sum divided by the summed weights, so
// a single window covering the whole volume returns the filter's output
// unchanged.
//
// Windows are dispatched to a bounded pool of goroutines. They read private
// copies of the input, and only the final accumulation is serialized.
package window
