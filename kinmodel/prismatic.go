package kinmodel

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/bit-pirate/moveit-core/spatialmath"
	"github.com/bit-pirate/moveit-core/utils"
)

// prismaticJoint translates along a fixed unit axis.
type prismaticJoint struct {
	name  string
	axis  r3.Vector
	limit Limit
}

// NewPrismaticJoint creates a 1-DoF joint translating along the given axis
// within the given limit.
func NewPrismaticJoint(name string, axis r3.Vector, limit Limit) (Joint, error) {
	if spatialmath.R3VectorAlmostEqual(r3.Vector{}, axis, 1e-8) {
		return nil, errors.New("cannot use zero vector as translation axis")
	}
	limit.Bounded = true
	return &prismaticJoint{name: name, axis: axis.Normalize(), limit: limit}, nil
}

func (pj *prismaticJoint) Name() string {
	return pj.name
}

func (pj *prismaticJoint) Type() JointType {
	return JointTypePrismatic
}

func (pj *prismaticJoint) VariableNames() []string {
	return []string{pj.name}
}

func (pj *prismaticJoint) Limits() []Limit {
	return []Limit{pj.limit}
}

func (pj *prismaticJoint) DoF() int {
	return 1
}

func (pj *prismaticJoint) MaximumExtent() float64 {
	return pj.limit.Max - pj.limit.Min
}

func (pj *prismaticJoint) DefaultValues() []float64 {
	return []float64{pj.limit.defaultValue()}
}

func (pj *prismaticJoint) RandomValues(rng *rand.Rand) []float64 {
	return []float64{pj.limit.Min + rng.Float64()*(pj.limit.Max-pj.limit.Min)}
}

func (pj *prismaticJoint) RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64 {
	min := math.Max(pj.limit.Min, near[0]-distance)
	max := math.Min(pj.limit.Max, near[0]+distance)
	return []float64{min + rng.Float64()*(max-min)}
}

func (pj *prismaticJoint) Interpolate(from, to []float64, by float64) []float64 {
	return interpolateLinear(from, to, by)
}

func (pj *prismaticJoint) Distance(a, b []float64) float64 {
	return math.Abs(a[0] - b[0])
}

func (pj *prismaticJoint) SatisfiesLimits(values []float64, margin float64) bool {
	return pj.limit.satisfied(values[0], margin)
}

func (pj *prismaticJoint) EnforceLimits(values []float64) {
	values[0] = utils.Clamp(values[0], pj.limit.Min, pj.limit.Max)
}

func (pj *prismaticJoint) Transform(values []float64) (spatialmath.Pose, error) {
	if len(values) != 1 {
		return spatialmath.Pose{}, NewIncorrectDoFError(pj.name, len(values), 1)
	}
	return spatialmath.NewPoseFromPoint(pj.axis.Mul(values[0])), nil
}

func (pj *prismaticJoint) VariablesFromTransform(pose spatialmath.Pose) []float64 {
	return []float64{pose.Point().Dot(pj.axis)}
}
