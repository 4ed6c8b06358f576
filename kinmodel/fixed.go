package kinmodel

import (
	"math/rand"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

// fixedJoint is a zero-DoF joint: a rigid attachment with no variables.
type fixedJoint struct {
	name string
}

// NewFixedJoint creates a joint with no degrees of freedom.
func NewFixedJoint(name string) Joint {
	return &fixedJoint{name: name}
}

func (fj *fixedJoint) Name() string {
	return fj.name
}

func (fj *fixedJoint) Type() JointType {
	return JointTypeFixed
}

func (fj *fixedJoint) VariableNames() []string {
	return []string{}
}

func (fj *fixedJoint) Limits() []Limit {
	return []Limit{}
}

func (fj *fixedJoint) DoF() int {
	return 0
}

func (fj *fixedJoint) MaximumExtent() float64 {
	return 0
}

func (fj *fixedJoint) DefaultValues() []float64 {
	return []float64{}
}

func (fj *fixedJoint) RandomValues(rng *rand.Rand) []float64 {
	return []float64{}
}

func (fj *fixedJoint) RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64 {
	return []float64{}
}

func (fj *fixedJoint) Interpolate(from, to []float64, by float64) []float64 {
	return []float64{}
}

func (fj *fixedJoint) Distance(a, b []float64) float64 {
	return 0
}

func (fj *fixedJoint) SatisfiesLimits(values []float64, margin float64) bool {
	return true
}

func (fj *fixedJoint) EnforceLimits(values []float64) {}

func (fj *fixedJoint) Transform(values []float64) (spatialmath.Pose, error) {
	if len(values) != 0 {
		return spatialmath.Pose{}, NewIncorrectDoFError(fj.name, len(values), 0)
	}
	return spatialmath.NewZeroPose(), nil
}

func (fj *fixedJoint) VariablesFromTransform(pose spatialmath.Pose) []float64 {
	return []float64{}
}
