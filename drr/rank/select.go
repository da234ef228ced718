package rank

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-drr/drr/core"
)

// Mode selects how a [Range] spec is resolved.
type Mode int

const (
	// ModeFixed keeps the upper bound of a [Range].
	ModeFixed Mode = iota + 1
	// ModeEnergy keeps the smallest rank whose cumulative energy ratio
	// sum(s_i^2, i<=K)/sum(s^2) reaches the selector threshold.
	ModeEnergy
	// ModeGap keeps the rank with the largest ratio s_K/s_{K+1}.
	ModeGap
)

// DefaultEnergyThreshold is the cumulative energy ratio used by [ModeEnergy]
// when none is configured.
const DefaultEnergyThreshold = 0.9

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeEnergy:
		return "energy"
	case ModeGap:
		return "gap"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names returned by [Mode.String], plus "1" and "2"
// for fixed and energy.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "1":
		return ModeFixed, nil
	case "energy", "ratio", "2":
		return ModeEnergy, nil
	case "gap":
		return ModeGap, nil
	}
	return 0, core.Configf("rank", "unknown mode %q", s)
}

// Selector resolves a [Spec] against a singular value spectrum.
type Selector struct {
	Mode      Mode
	Threshold float64
}

// DefaultSelector returns a fixed-mode selector.
func DefaultSelector() Selector {
	return Selector{Mode: ModeFixed, Threshold: DefaultEnergyThreshold}
}

// Validate checks the mode and threshold.
func (s Selector) Validate() error {
	switch s.Mode {
	case ModeFixed, ModeGap:
	case ModeEnergy:
		if !(s.Threshold > 0 && s.Threshold <= 1) {
			return core.Configf("rank", "energy threshold must be in (0, 1], got %v", s.Threshold)
		}
	default:
		return core.Configf("rank", "unknown mode %d", int(s.Mode))
	}
	return nil
}

// Select returns a rank in [kmin, kmax] for the descending spectrum sv.
// It never consults more values than sv holds; clamping to the available
// rank happens in the reducer.
func (s Selector) Select(spec Spec, sv []float64) int {
	kmin, kmax := spec.Bounds()
	if kmin == kmax {
		return kmin
	}
	switch s.Mode {
	case ModeEnergy:
		return selectEnergy(kmin, kmax, s.Threshold, sv)
	case ModeGap:
		return selectGap(kmin, kmax, sv)
	default:
		return kmax
	}
}

func selectEnergy(kmin, kmax int, threshold float64, sv []float64) int {
	total := 0.0
	for _, v := range sv {
		total += v * v
	}
	if total == 0 {
		return kmin
	}
	cum := 0.0
	k := len(sv)
	for i, v := range sv {
		cum += v * v
		if r := cum / total; r >= threshold || core.NearlyEqual(r, threshold, 1e-12) {
			k = i + 1
			break
		}
	}
	return core.ClampInt(k, kmin, kmax)
}

func selectGap(kmin, kmax int, sv []float64) int {
	best, bestRatio := kmin, -1.0
	// The gap after the last value is undefined.
	for k := kmin; k <= kmax && k < len(sv); k++ {
		next := sv[k]
		var ratio float64
		switch {
		case sv[k-1] == 0:
			ratio = 0
		case next == 0:
			ratio = math.Inf(1)
		default:
			ratio = sv[k-1] / next
		}
		if ratio > bestRatio {
			best, bestRatio = k, ratio
		}
	}
	return best
}
