package spatialmath

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/num/quat"
)

// Norm returns the norm of the imaginary parts of the quaternion, i.e. the
// sqrt of the sum of their squares.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing
// the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// Normalize scales a quaternion to unit length. A zero quaternion normalizes
// to the identity rather than dividing by zero.
func Normalize(q quat.Number) quat.Number {
	length := quat.Abs(q)
	if length == 0 {
		return quat.Number{Real: 1}
	}
	if length == 1 {
		return q
	}
	return quat.Scale(1/length, q)
}

// AngleBetween returns the magnitude of the angle (radians) of the rotation
// taking q1 to q2. Antipodal quaternions represent the same orientation, so
// the result is always in [0, pi].
func AngleBetween(q1, q2 quat.Number) float64 {
	dot := q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	return 2 * math.Acos(dot)
}

// QuaternionAlmostEqual checks whether two quaternions represent nearly the
// same orientation, accounting for the double cover.
func QuaternionAlmostEqual(q1, q2 quat.Number, epsilon float64) bool {
	return AngleBetween(q1, q2) <= epsilon
}

// Slerp interpolates along the great circle between two unit quaternions.
// by=0 returns q1 and by=1 returns q2 exactly. The shorter path is always
// taken.
func Slerp(q1, q2 quat.Number, by float64) quat.Number {
	switch by {
	case 0:
		return q1
	case 1:
		return q2
	}
	dot := q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
	if dot < 0 {
		q2 = Flip(q2)
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	theta := math.Acos(dot)
	if theta < 1e-8 {
		// Nearly parallel, linear interpolation avoids dividing by a tiny sine
		return Normalize(quat.Add(quat.Scale(1-by, q1), quat.Scale(by, q2)))
	}
	sinTheta := math.Sin(theta)
	s1 := math.Sin((1-by)*theta) / sinTheta
	s2 := math.Sin(by*theta) / sinTheta
	return Normalize(quat.Add(quat.Scale(s1, q1), quat.Scale(s2, q2)))
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++
// Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 1, 0, 0}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// RandomQuaternion samples a rotation uniformly distributed over SO(3) using
// the subgroup algorithm (Shoemake). Per-component uniform sampling would
// bias toward the corners of the 4-cube; this does not.
func RandomQuaternion(rng *rand.Rand) quat.Number {
	u1 := rng.Float64()
	u2 := rng.Float64() * 2 * math.Pi
	u3 := rng.Float64() * 2 * math.Pi
	s1 := math.Sqrt(1 - u1)
	s2 := math.Sqrt(u1)
	return quat.Number{
		Real: s2 * math.Cos(u3),
		Imag: s1 * math.Sin(u2),
		Jmag: s1 * math.Cos(u2),
		Kmag: s2 * math.Sin(u3),
	}
}
