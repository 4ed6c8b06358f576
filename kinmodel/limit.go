package kinmodel

import (
	"math"

	"github.com/bit-pirate/moveit-core/utils"
)

// Limit represents the limits of motion for one joint variable. A variable
// with Bounded false is topologically circular (angle wraparound), not
// unconstrained: limit checks always pass for it and normalization wraps
// rather than clamps.
type Limit struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Bounded bool    `json:"bounded"`
}

// NewLimit returns a bounded limit over [min, max].
func NewLimit(min, max float64) Limit {
	return Limit{Min: min, Max: max, Bounded: true}
}

// newCircularLimit returns the unbounded limit used for wraparound angles.
// Min and Max carry the natural (-pi, pi] range for midpoint and sampling
// purposes but are not enforced.
func newCircularLimit() Limit {
	return Limit{Min: -math.Pi, Max: math.Pi}
}

// satisfied checks a value against the limit with the given margin on both
// sides.
func (l Limit) satisfied(v, margin float64) bool {
	if !l.Bounded {
		return true
	}
	return v >= l.Min-margin && v <= l.Max+margin
}

// defaultValue picks zero if it is in range, else the midpoint.
func (l Limit) defaultValue() float64 {
	if l.Min <= 0 && l.Max >= 0 {
		return 0
	}
	return (l.Min + l.Max) / 2
}

func limitsAlmostEqual(a, b []Limit) bool {
	if len(a) != len(b) {
		return false
	}

	const epsilon = 1e-5
	for idx, x := range a {
		if x.Bounded != b[idx].Bounded ||
			!utils.Float64AlmostEqual(x.Min, b[idx].Min, epsilon) ||
			!utils.Float64AlmostEqual(x.Max, b[idx].Max, epsilon) {
			return false
		}
	}

	return true
}
