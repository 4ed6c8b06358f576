package kinmodel

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/bit-pirate/moveit-core/spatialmath"
	"github.com/bit-pirate/moveit-core/utils"
)

// revoluteJoint rotates about a fixed unit axis. With continuous set, the
// angle is topologically circular: no limits apply and distance and
// interpolation wrap around (-pi, pi].
type revoluteJoint struct {
	name       string
	axis       r3.Vector
	limit      Limit
	continuous bool
}

// NewRevoluteJoint creates a 1-DoF joint rotating about the given axis within
// the given limit.
func NewRevoluteJoint(name string, axis r3.Vector, limit Limit) (Joint, error) {
	if spatialmath.R3VectorAlmostEqual(r3.Vector{}, axis, 1e-8) {
		return nil, errors.New("cannot use zero vector as rotation axis")
	}
	limit.Bounded = true
	return &revoluteJoint{name: name, axis: axis.Normalize(), limit: limit}, nil
}

// NewContinuousJoint creates a revolute joint with no angular limits,
// topologically a circle.
func NewContinuousJoint(name string, axis r3.Vector) (Joint, error) {
	if spatialmath.R3VectorAlmostEqual(r3.Vector{}, axis, 1e-8) {
		return nil, errors.New("cannot use zero vector as rotation axis")
	}
	return &revoluteJoint{name: name, axis: axis.Normalize(), limit: newCircularLimit(), continuous: true}, nil
}

func (rj *revoluteJoint) Name() string {
	return rj.name
}

func (rj *revoluteJoint) Type() JointType {
	return JointTypeRevolute
}

func (rj *revoluteJoint) VariableNames() []string {
	return []string{rj.name}
}

func (rj *revoluteJoint) Limits() []Limit {
	return []Limit{rj.limit}
}

func (rj *revoluteJoint) DoF() int {
	return 1
}

// MaximumExtent reports the full circle for a continuous joint rather than
// the degenerate Max-Min of its nominal range.
func (rj *revoluteJoint) MaximumExtent() float64 {
	if rj.continuous {
		return 2 * math.Pi
	}
	return rj.limit.Max - rj.limit.Min
}

func (rj *revoluteJoint) DefaultValues() []float64 {
	return []float64{rj.limit.defaultValue()}
}

func (rj *revoluteJoint) RandomValues(rng *rand.Rand) []float64 {
	return []float64{rj.limit.Min + rng.Float64()*(rj.limit.Max-rj.limit.Min)}
}

func (rj *revoluteJoint) RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64 {
	if rj.continuous {
		v := near[0] - distance + rng.Float64()*2*distance
		return []float64{utils.WrapAngle(v)}
	}
	min := math.Max(rj.limit.Min, near[0]-distance)
	max := math.Min(rj.limit.Max, near[0]+distance)
	return []float64{min + rng.Float64()*(max-min)}
}

func (rj *revoluteJoint) Interpolate(from, to []float64, by float64) []float64 {
	out := interpolateLinear(from, to, by)
	if !rj.continuous || by == 0 || by == 1 {
		return out
	}
	diff := to[0] - from[0]
	if math.Abs(diff) > math.Pi {
		// Take the arc through the wraparound instead
		if diff > 0 {
			diff = 2*math.Pi - diff
		} else {
			diff = -2*math.Pi - diff
		}
		out[0] = utils.WrapAngle(from[0] - diff*by)
	}
	return out
}

func (rj *revoluteJoint) Distance(a, b []float64) float64 {
	if rj.continuous {
		return utils.AngleDist(a[0], b[0])
	}
	return math.Abs(a[0] - b[0])
}

func (rj *revoluteJoint) SatisfiesLimits(values []float64, margin float64) bool {
	if rj.continuous {
		return true
	}
	return rj.limit.satisfied(values[0], margin)
}

func (rj *revoluteJoint) EnforceLimits(values []float64) {
	if rj.continuous {
		values[0] = utils.WrapAngle(values[0])
		return
	}
	values[0] = utils.Clamp(values[0], rj.limit.Min, rj.limit.Max)
}

func (rj *revoluteJoint) Transform(values []float64) (spatialmath.Pose, error) {
	if len(values) != 1 {
		return spatialmath.Pose{}, NewIncorrectDoFError(rj.name, len(values), 1)
	}
	aa := spatialmath.R4AA{Theta: values[0], RX: rj.axis.X, RY: rj.axis.Y, RZ: rj.axis.Z}
	return spatialmath.NewPoseFromAxisAngle(r3.Vector{}, aa), nil
}

// VariablesFromTransform recovers the signed rotation angle by projecting the
// quaternion's imaginary part onto the joint axis, exact over (-pi, pi].
func (rj *revoluteJoint) VariablesFromTransform(pose spatialmath.Pose) []float64 {
	q := pose.Orientation()
	sinHalf := q.Imag*rj.axis.X + q.Jmag*rj.axis.Y + q.Kmag*rj.axis.Z
	theta := 2 * math.Atan2(sinHalf, q.Real)
	return []float64{utils.WrapAngle(theta)}
}
