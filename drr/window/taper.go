package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-drr/drr/core"
)

// Taper identifies the shape of the blending ramps.
type Taper int

const (
	// TaperLinear ramps linearly; adjacent ramps sum to one.
	TaperLinear Taper = iota
	// TaperCosine ramps with a raised cosine; adjacent ramps sum to one.
	TaperCosine
	// TaperRectangular applies no ramp; overlaps are plain averages.
	TaperRectangular
)

func (t Taper) String() string {
	switch t {
	case TaperLinear:
		return "linear"
	case TaperCosine:
		return "cosine"
	case TaperRectangular:
		return "rectangular"
	default:
		return fmt.Sprintf("Taper(%d)", int(t))
	}
}

// ParseTaper accepts the names returned by [Taper.String]. The empty string is linear.
func ParseTaper(s string) (Taper, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "triangle":
		return TaperLinear, nil
	case "cosine", "hann":
		return TaperCosine, nil
	case "rectangular", "none":
		return TaperRectangular, nil
	}
	return 0, core.Configf("window", "unknown taper %q", s)
}

// Ramp returns the rising edge of length n. Values lie strictly inside (0, 1]
// and a ramp plus its mirror image sums to one for the linear and cosine tapers.
func Ramp(t Taper, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		x := float64(i+1) / float64(n+1)
		switch t {
		case TaperCosine:
			out[i] = 0.5 - 0.5*math.Cos(math.Pi*x)
		case TaperRectangular:
			out[i] = 1
		default:
			out[i] = x
		}
	}
	return out
}

// Profile returns a length-size weight that rises over the first left samples,
// falls over the last right samples, and is 1 in between. Ramps that meet in
// the middle are multiplied.
func Profile(t Taper, size, left, right int) []float64 {
	out := make([]float64, size)
	for i := range out {
		out[i] = 1
	}
	for i, r := range Ramp(t, min(left, size)) {
		out[i] *= r
	}
	for i, r := range Ramp(t, min(right, size)) {
		out[size-1-i] *= r
	}
	return out
}
