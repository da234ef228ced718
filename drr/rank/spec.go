package rank

import (
	"fmt"

	"github.com/cwbudde/algo-drr/drr/core"
)

// Spec is the requested rank: either one fixed value or an inclusive range
// resolved per slice by a [Selector]. The zero Spec is invalid.
type Spec struct {
	min, max int
	ranged   bool
}

// Fixed requests exactly k retained singular values.
func Fixed(k int) Spec { return Spec{min: k, max: k} }

// Range requests a rank between kmin and kmax inclusive.
func Range(kmin, kmax int) Spec { return Spec{min: kmin, max: kmax, ranged: true} }

// Bounds returns the inclusive rank bounds. For a fixed spec both are K.
func (s Spec) Bounds() (kmin, kmax int) { return s.min, s.max }

// IsRange reports whether s was built with [Range].
func (s Spec) IsRange() bool { return s.ranged }

// Validate checks 1 <= min <= max.
func (s Spec) Validate() error {
	if s.min < 1 {
		return core.Configf("rank", "rank must be >= 1, got %d", s.min)
	}
	if s.max < s.min {
		return core.Configf("rank", "rank range [%d, %d] is empty", s.min, s.max)
	}
	return nil
}

func (s Spec) String() string {
	if s.ranged {
		return fmt.Sprintf("range(%d,%d)", s.min, s.max)
	}
	return fmt.Sprintf("fixed(%d)", s.min)
}
