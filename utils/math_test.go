package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(73.5)), test.ShouldAlmostEqual, 73.5)
}

func TestWrapAngle(t *testing.T) {
	test.That(t, WrapAngle(0), test.ShouldEqual, 0)
	test.That(t, WrapAngle(math.Pi), test.ShouldEqual, math.Pi)
	test.That(t, WrapAngle(-math.Pi), test.ShouldEqual, math.Pi)
	test.That(t, WrapAngle(3*math.Pi), test.ShouldAlmostEqual, math.Pi)
	test.That(t, WrapAngle(10), test.ShouldAlmostEqual, 10-4*math.Pi)
	test.That(t, WrapAngle(-10), test.ShouldAlmostEqual, 4*math.Pi-10)

	// applying twice changes nothing
	for _, v := range []float64{0, 1, -1, 3, -3, math.Pi, -math.Pi, 100.7, -55.5} {
		once := WrapAngle(v)
		test.That(t, WrapAngle(once), test.ShouldEqual, once)
	}
}

func TestAngleDist(t *testing.T) {
	test.That(t, AngleDist(0, 1), test.ShouldAlmostEqual, 1)
	test.That(t, AngleDist(1, 0), test.ShouldAlmostEqual, 1)
	// the short way around passes through pi
	test.That(t, AngleDist(3, -3), test.ShouldAlmostEqual, 2*math.Pi-6)
	test.That(t, AngleDist(-3, 3), test.ShouldAlmostEqual, 2*math.Pi-6)
	test.That(t, AngleDist(0, 2*math.Pi), test.ShouldAlmostEqual, 0)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(0.5, 0, 1), test.ShouldEqual, 0.5)
	test.That(t, Clamp(-2, 0, 1), test.ShouldEqual, 0)
	test.That(t, Clamp(2, 0, 1), test.ShouldEqual, 1)
}

func TestMisc(t *testing.T) {
	test.That(t, Square(3), test.ShouldEqual, 9)
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-8), test.ShouldBeFalse)
}
