package kinmodel

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

func floatingTestValues(theta float64) []float64 {
	q := spatialmath.R4AA{Theta: theta, RX: 1. / 3, RY: 2. / 3, RZ: 2. / 3}.ToQuat()
	return []float64{1, 2, 3, q.Imag, q.Jmag, q.Kmag, q.Real}
}

func TestFloatingBasics(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-1, 1), NewLimit(-1, 1), NewLimit(-1, 1))
	test.That(t, j.Type().String(), test.ShouldEqual, "floating")
	test.That(t, j.DoF(), test.ShouldEqual, 7)
	test.That(t, j.VariableNames(), test.ShouldResemble, []string{
		"free/x", "free/y", "free/z", "free/qx", "free/qy", "free/qz", "free/qw",
	})
	test.That(t, j.MaximumExtent(), test.ShouldAlmostEqual, math.Sqrt(12)+math.Pi)
	test.That(t, j.DefaultValues(), test.ShouldResemble, []float64{0, 0, 0, 0, 0, 0, 1})
	test.That(t, len(j.Limits()), test.ShouldEqual, 7)
}

func TestFloatingTransformRoundTrip(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-5, 5), NewLimit(-5, 5), NewLimit(-5, 5))

	v := floatingTestValues(0.9)
	pose, err := j.Transform(v)
	test.That(t, err, test.ShouldBeNil)
	got := j.VariablesFromTransform(pose)
	for i := range v {
		test.That(t, got[i], test.ShouldAlmostEqual, v[i], 1e-8)
	}

	// the antipodal quaternion is the same orientation; recovery picks qw >= 0
	flipped := floatingTestValues(0.9)
	for i := 3; i < 7; i++ {
		flipped[i] = -flipped[i]
	}
	pose, err = j.Transform(flipped)
	test.That(t, err, test.ShouldBeNil)
	got = j.VariablesFromTransform(pose)
	for i := range v {
		test.That(t, got[i], test.ShouldAlmostEqual, v[i], 1e-8)
	}

	_, err = j.Transform(v[:6])
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFloatingDistance(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-5, 5), NewLimit(-5, 5), NewLimit(-5, 5))
	identity := []float64{0, 0, 0, 0, 0, 0, 1}
	moved := []float64{3, 4, 0, 0, 0, 0, 1}
	test.That(t, j.Distance(identity, moved), test.ShouldAlmostEqual, 5)

	rotZ90 := []float64{0, 0, 0, 0, 0, math.Sin(math.Pi / 4), math.Cos(math.Pi / 4)}
	test.That(t, j.Distance(identity, rotZ90), test.ShouldAlmostEqual, math.Pi/2, 1e-8)

	// flipping the sign of the quaternion does not create distance
	flipped := append([]float64{}, rotZ90...)
	for i := 3; i < 7; i++ {
		flipped[i] = -flipped[i]
	}
	test.That(t, j.Distance(rotZ90, flipped), test.ShouldAlmostEqual, 0, 1e-8)
}

func TestFloatingInterpolate(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-5, 5), NewLimit(-5, 5), NewLimit(-5, 5))
	from := []float64{0, 0, 0, 0, 0, 0, 1}
	to := []float64{2, 4, 6, 0, 0, math.Sin(math.Pi / 4), math.Cos(math.Pi / 4)}

	test.That(t, j.Interpolate(from, to, 0), test.ShouldResemble, from)
	test.That(t, j.Interpolate(from, to, 1), test.ShouldResemble, to)

	mid := j.Interpolate(from, to, 0.5)
	test.That(t, mid[0], test.ShouldAlmostEqual, 1)
	test.That(t, mid[1], test.ShouldAlmostEqual, 2)
	test.That(t, mid[2], test.ShouldAlmostEqual, 3)
	test.That(t, mid[5], test.ShouldAlmostEqual, math.Sin(math.Pi/8), 1e-8)
	test.That(t, mid[6], test.ShouldAlmostEqual, math.Cos(math.Pi/8), 1e-8)
}

func TestFloatingLimits(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-1, 1), NewLimit(-1, 1), NewLimit(-1, 1))
	test.That(t, j.SatisfiesLimits([]float64{0, 0, 0, 0, 0, 0, 1}, 0), test.ShouldBeTrue)
	test.That(t, j.SatisfiesLimits([]float64{2, 0, 0, 0, 0, 0, 1}, 0), test.ShouldBeFalse)
	test.That(t, j.SatisfiesLimits([]float64{2, 0, 0, 0, 0, 0, 1}, 1.5), test.ShouldBeTrue)

	// clamps translation and renormalizes the quaternion
	v := []float64{2, -2, 0.5, 0, 0, 0, 2}
	j.EnforceLimits(v)
	test.That(t, v[0], test.ShouldEqual, 1)
	test.That(t, v[1], test.ShouldEqual, -1)
	test.That(t, v[2], test.ShouldEqual, 0.5)
	test.That(t, v[6], test.ShouldAlmostEqual, 1)
	test.That(t, quat.Abs(quatFromValues(v)), test.ShouldAlmostEqual, 1)

	once := append([]float64{}, v...)
	j.EnforceLimits(v)
	test.That(t, v, test.ShouldResemble, once)
}

func TestFloatingSampling(t *testing.T) {
	j := NewFloatingJoint("free", NewLimit(-1, 1), NewLimit(-1, 1), NewLimit(-1, 1))
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		v := j.RandomValues(rng)
		test.That(t, j.SatisfiesLimits(v, 0), test.ShouldBeTrue)
		test.That(t, quat.Abs(quatFromValues(v)), test.ShouldAlmostEqual, 1, 1e-8)
	}

	near := floatingTestValues(0.4)
	near[0], near[1], near[2] = 0.5, 0.5, 0.5
	for i := 0; i < 50; i++ {
		v := j.RandomValuesNearby(rng, near, 0.3)
		for k := 0; k < 3; k++ {
			test.That(t, v[k], test.ShouldBeBetweenOrEqual, 0.2, 0.8)
		}
		angle := spatialmath.AngleBetween(quatFromValues(v), quatFromValues(near))
		test.That(t, angle, test.ShouldBeLessThanOrEqualTo, 0.3+1e-8)
	}

	// beyond pi the whole rotation group is reachable, sampling must not bias
	for i := 0; i < 10; i++ {
		v := j.RandomValuesNearby(rng, near, 4)
		test.That(t, quat.Abs(quatFromValues(v)), test.ShouldAlmostEqual, 1, 1e-8)
	}
}
