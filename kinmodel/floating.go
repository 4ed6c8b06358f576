package kinmodel

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/bit-pirate/moveit-core/spatialmath"
	"github.com/bit-pirate/moveit-core/utils"
)

// floatingJoint parameterizes an unconstrained rigid motion: six physical
// degrees of freedom carried by seven variables, x/y/z translation plus a
// unit quaternion in (qx, qy, qz, qw) order.
type floatingJoint struct {
	name   string
	limits []Limit
}

// NewFloatingJoint creates a free 6-DoF joint whose translation is bounded
// per axis by the given limits and whose orientation is unrestricted.
func NewFloatingJoint(name string, xLimit, yLimit, zLimit Limit) Joint {
	xLimit.Bounded = true
	yLimit.Bounded = true
	zLimit.Bounded = true
	quatLimit := Limit{Min: -1, Max: 1, Bounded: true}
	return &floatingJoint{
		name:   name,
		limits: []Limit{xLimit, yLimit, zLimit, quatLimit, quatLimit, quatLimit, quatLimit},
	}
}

func (fj *floatingJoint) Name() string {
	return fj.name
}

func (fj *floatingJoint) Type() JointType {
	return JointTypeFloating
}

func (fj *floatingJoint) VariableNames() []string {
	return []string{
		fj.name + "/x", fj.name + "/y", fj.name + "/z",
		fj.name + "/qx", fj.name + "/qy", fj.name + "/qz", fj.name + "/qw",
	}
}

func (fj *floatingJoint) Limits() []Limit {
	return fj.limits
}

func (fj *floatingJoint) DoF() int {
	return 7
}

func (fj *floatingJoint) MaximumExtent() float64 {
	dx := fj.limits[0].Max - fj.limits[0].Min
	dy := fj.limits[1].Max - fj.limits[1].Min
	dz := fj.limits[2].Max - fj.limits[2].Min
	return r3.Vector{X: dx, Y: dy, Z: dz}.Norm() + math.Pi
}

func (fj *floatingJoint) DefaultValues() []float64 {
	return []float64{
		fj.limits[0].defaultValue(), fj.limits[1].defaultValue(), fj.limits[2].defaultValue(),
		0, 0, 0, 1,
	}
}

func (fj *floatingJoint) RandomValues(rng *rand.Rand) []float64 {
	out := make([]float64, 7)
	for i := 0; i < 3; i++ {
		l := fj.limits[i]
		out[i] = l.Min + rng.Float64()*(l.Max-l.Min)
	}
	q := spatialmath.RandomQuaternion(rng)
	out[3], out[4], out[5], out[6] = q.Imag, q.Jmag, q.Kmag, q.Real
	return out
}

func (fj *floatingJoint) RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64 {
	out := make([]float64, 7)
	for i := 0; i < 3; i++ {
		min := math.Max(fj.limits[i].Min, near[i]-distance)
		max := math.Min(fj.limits[i].Max, near[i]+distance)
		out[i] = min + rng.Float64()*(max-min)
	}
	var q quat.Number
	if distance >= math.Pi {
		// The whole rotation group is within reach
		q = spatialmath.RandomQuaternion(rng)
	} else {
		nearQ := quatFromValues(near)
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		axis := r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
		angle := (2*rng.Float64() - 1) * distance
		delta := spatialmath.R4AA{Theta: angle, RX: axis.X, RY: axis.Y, RZ: axis.Z}
		q = spatialmath.Normalize(quat.Mul(delta.ToQuat(), nearQ))
	}
	out[3], out[4], out[5], out[6] = q.Imag, q.Jmag, q.Kmag, q.Real
	return out
}

func (fj *floatingJoint) Interpolate(from, to []float64, by float64) []float64 {
	out := make([]float64, 7)
	switch by {
	case 0:
		copy(out, from)
	case 1:
		copy(out, to)
	default:
		for i := 0; i < 3; i++ {
			out[i] = from[i] + (to[i]-from[i])*by
		}
		q := spatialmath.Slerp(quatFromValues(from), quatFromValues(to), by)
		out[3], out[4], out[5], out[6] = q.Imag, q.Jmag, q.Kmag, q.Real
	}
	return out
}

// Distance combines the translational Euclidean distance with the angular
// distance between the two orientations, double-cover aware.
func (fj *floatingJoint) Distance(a, b []float64) float64 {
	trans := r3.Vector{X: a[0] - b[0], Y: a[1] - b[1], Z: a[2] - b[2]}.Norm()
	return trans + spatialmath.AngleBetween(quatFromValues(a), quatFromValues(b))
}

func (fj *floatingJoint) SatisfiesLimits(values []float64, margin float64) bool {
	for i, l := range fj.limits {
		if !l.satisfied(values[i], margin) {
			return false
		}
	}
	return true
}

// EnforceLimits clamps the translation and renormalizes the quaternion. The
// epsilon guard keeps repeated application a no-op.
func (fj *floatingJoint) EnforceLimits(values []float64) {
	for i := 0; i < 3; i++ {
		values[i] = utils.Clamp(values[i], fj.limits[i].Min, fj.limits[i].Max)
	}
	q := quatFromValues(values)
	if length := quat.Abs(q); math.Abs(length-1) > 1e-9 {
		q = spatialmath.Normalize(q)
		values[3], values[4], values[5], values[6] = q.Imag, q.Jmag, q.Kmag, q.Real
	}
}

func (fj *floatingJoint) Transform(values []float64) (spatialmath.Pose, error) {
	if len(values) != 7 {
		return spatialmath.Pose{}, NewIncorrectDoFError(fj.name, len(values), 7)
	}
	pt := r3.Vector{X: values[0], Y: values[1], Z: values[2]}
	return spatialmath.NewPose(pt, quatFromValues(values)), nil
}

// VariablesFromTransform returns the translation and quaternion components,
// sign-canonicalized to qw >= 0 (antipodal quaternions represent the same
// orientation).
func (fj *floatingJoint) VariablesFromTransform(pose spatialmath.Pose) []float64 {
	pt := pose.Point()
	q := pose.Orientation()
	if q.Real < 0 {
		q = spatialmath.Flip(q)
	}
	return []float64{pt.X, pt.Y, pt.Z, q.Imag, q.Jmag, q.Kmag, q.Real}
}

// quatFromValues reads the orientation block of a floating joint value
// vector.
func quatFromValues(values []float64) quat.Number {
	return quat.Number{Real: values[6], Imag: values[3], Jmag: values[4], Kmag: values[5]}
}
