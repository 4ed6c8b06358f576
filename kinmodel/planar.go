package kinmodel

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"github.com/bit-pirate/moveit-core/spatialmath"
	"github.com/bit-pirate/moveit-core/utils"
)

// planarJoint moves in the Z=0 plane: variables are x, y, and a heading
// rotation about +Z. The heading is circular, the translations bounded.
type planarJoint struct {
	name   string
	limits []Limit
}

// NewPlanarJoint creates a 3-DoF joint translating in x and y within the
// given limits and rotating freely about the Z axis.
func NewPlanarJoint(name string, xLimit, yLimit Limit) Joint {
	xLimit.Bounded = true
	yLimit.Bounded = true
	return &planarJoint{
		name:   name,
		limits: []Limit{xLimit, yLimit, newCircularLimit()},
	}
}

func (pj *planarJoint) Name() string {
	return pj.name
}

func (pj *planarJoint) Type() JointType {
	return JointTypePlanar
}

func (pj *planarJoint) VariableNames() []string {
	return []string{pj.name + "/x", pj.name + "/y", pj.name + "/theta"}
}

func (pj *planarJoint) Limits() []Limit {
	return pj.limits
}

func (pj *planarJoint) DoF() int {
	return 3
}

func (pj *planarJoint) MaximumExtent() float64 {
	dx := pj.limits[0].Max - pj.limits[0].Min
	dy := pj.limits[1].Max - pj.limits[1].Min
	return math.Hypot(dx, dy) + math.Pi
}

func (pj *planarJoint) DefaultValues() []float64 {
	return []float64{pj.limits[0].defaultValue(), pj.limits[1].defaultValue(), 0}
}

func (pj *planarJoint) RandomValues(rng *rand.Rand) []float64 {
	out := make([]float64, 3)
	for i, l := range pj.limits {
		out[i] = l.Min + rng.Float64()*(l.Max-l.Min)
	}
	return out
}

func (pj *planarJoint) RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64 {
	out := make([]float64, 3)
	for i := 0; i < 2; i++ {
		min := math.Max(pj.limits[i].Min, near[i]-distance)
		max := math.Min(pj.limits[i].Max, near[i]+distance)
		out[i] = min + rng.Float64()*(max-min)
	}
	out[2] = utils.WrapAngle(near[2] - distance + rng.Float64()*2*distance)
	return out
}

func (pj *planarJoint) Interpolate(from, to []float64, by float64) []float64 {
	out := interpolateLinear(from, to, by)
	if by == 0 || by == 1 {
		return out
	}
	diff := to[2] - from[2]
	if math.Abs(diff) > math.Pi {
		if diff > 0 {
			diff = 2*math.Pi - diff
		} else {
			diff = -2*math.Pi - diff
		}
		out[2] = utils.WrapAngle(from[2] - diff*by)
	}
	return out
}

func (pj *planarJoint) Distance(a, b []float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1]) + utils.AngleDist(a[2], b[2])
}

func (pj *planarJoint) SatisfiesLimits(values []float64, margin float64) bool {
	for i, l := range pj.limits {
		if !l.satisfied(values[i], margin) {
			return false
		}
	}
	return true
}

func (pj *planarJoint) EnforceLimits(values []float64) {
	values[0] = utils.Clamp(values[0], pj.limits[0].Min, pj.limits[0].Max)
	values[1] = utils.Clamp(values[1], pj.limits[1].Min, pj.limits[1].Max)
	values[2] = utils.WrapAngle(values[2])
}

func (pj *planarJoint) Transform(values []float64) (spatialmath.Pose, error) {
	if len(values) != 3 {
		return spatialmath.Pose{}, NewIncorrectDoFError(pj.name, len(values), 3)
	}
	aa := spatialmath.R4AA{Theta: values[2], RZ: 1}
	return spatialmath.NewPoseFromAxisAngle(r3.Vector{X: values[0], Y: values[1], Z: 0}, aa), nil
}

func (pj *planarJoint) VariablesFromTransform(pose spatialmath.Pose) []float64 {
	pt := pose.Point()
	q := pose.Orientation()
	// Yaw about +Z; the planar joint never produces roll or pitch.
	theta := math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
	return []float64{pt.X, pt.Y, utils.WrapAngle(theta)}
}
