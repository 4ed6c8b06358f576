// Package spatialmath defines the spatial math used to express rigid body
// transforms. Poses are backed by dual quaternions, orientations by unit
// quaternions.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transform in 3D space: a rotation followed by a
// translation. The zero value of this struct is not a valid Pose, since the
// real part of the underlying dual quaternion must be a unit quaternion;
// use NewZeroPose instead.
type Pose struct {
	q dualquat.Number
}

// NewZeroPose returns a pose with no translation or rotation.
func NewZeroPose() Pose {
	return Pose{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewPose returns a pose from a point and an orientation quaternion. The
// quaternion is normalized if it is not already a unit quaternion.
func NewPose(pt r3.Vector, o quat.Number) Pose {
	o = Normalize(o)
	return Pose{dualquat.Number{
		Real: o,
		// The dual part encodes half the translation, rotated into place.
		Dual: quat.Mul(quat.Number{Real: 0, Imag: pt.X / 2, Jmag: pt.Y / 2, Kmag: pt.Z / 2}, o),
	}}
}

// NewPoseFromPoint returns a pose with the given translation and no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return NewPose(pt, quat.Number{Real: 1})
}

// NewPoseFromOrientation returns a pose with the given rotation and no translation.
func NewPoseFromOrientation(o quat.Number) Pose {
	return NewPose(r3.Vector{}, o)
}

// NewPoseFromAxisAngle returns a pose from a point and an R4 axis angle.
func NewPoseFromAxisAngle(pt r3.Vector, aa R4AA) Pose {
	return NewPose(pt, aa.ToQuat())
}

// Point returns the translation of the pose.
func (p Pose) Point() r3.Vector {
	// Multiplying by the combined conjugate moves the full translation into
	// the dual part.
	t := dualquat.Mul(p.q, dualquat.Conj(p.q)).Dual
	return r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}
}

// Orientation returns the rotation of the pose as a unit quaternion.
func (p Pose) Orientation() quat.Number {
	return p.q.Real
}

// AxisAngles returns the rotation of the pose in axis angle representation.
func (p Pose) AxisAngles() R4AA {
	return QuatToR4AA(p.q.Real)
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function
// C(x) = A(B(x)): b is expressed in a's frame. Accumulated floating point
// error is scrubbed from the real part so long chains stay unit-norm.
func Compose(a, b Pose) Pose {
	result := Pose{dualquat.Mul(a.q, b.q)}
	if vecLen := quat.Abs(result.q.Real); vecLen != 1 {
		result.q.Real = quat.Scale(1/vecLen, result.q.Real)
	}
	return result
}

// PoseInverse returns the pose that undoes the given pose:
// Compose(p, PoseInverse(p)) is the zero pose.
func PoseInverse(p Pose) Pose {
	r := quat.Conj(p.q.Real)
	return Pose{dualquat.Number{
		Real: r,
		Dual: quat.Scale(-1, quat.Mul(quat.Mul(r, p.q.Dual), r)),
	}}
}

// PoseBetween returns the difference between two poses: the pose that when
// composed onto a yields b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// Interpolate returns a pose that is the specified fraction of the way from p1
// to p2. Translation is interpolated linearly, orientation along the great
// circle between the two rotations. by=0 returns p1 and by=1 returns p2
// exactly.
func Interpolate(p1, p2 Pose, by float64) Pose {
	switch by {
	case 0:
		return p1
	case 1:
		return p2
	}
	pt1 := p1.Point()
	pt2 := p2.Point()
	pt := pt1.Add(pt2.Sub(pt1).Mul(by))
	return NewPose(pt, Slerp(p1.Orientation(), p2.Orientation(), by))
}

// PoseAlmostEqual returns whether two poses differ by no more than epsilon in
// translation and in orientation angle (radians).
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return a.Point().Sub(b.Point()).Norm() <= epsilon &&
		AngleBetween(a.Orientation(), b.Orientation()) <= epsilon
}
