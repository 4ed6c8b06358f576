package kinstate

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

func TestAttachBody(t *testing.T) {
	s := NewState(testArmModel(t))
	offset := spatialmath.NewPoseFromPoint(r3.Vector{X: 0, Y: 0, Z: 1})

	b, err := s.AttachBody("tool", "link2", offset)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Name(), test.ShouldEqual, "tool")
	test.That(t, b.LinkName(), test.ShouldEqual, "link2")
	test.That(t, spatialmath.PoseAlmostEqual(b.RelativeTransform(), offset, 1e-8), test.ShouldBeTrue)
	test.That(t, s.HasAttachedBody("tool"), test.ShouldBeTrue)

	// rides along with its link
	test.That(t, spatialmath.R3VectorAlmostEqual(b.GlobalTransform().Point(), r3.Vector{X: 2, Y: 0, Z: 1}, 1e-8), test.ShouldBeTrue)
	test.That(t, s.SetValues([]float64{math.Pi / 2, 0, 0}), test.ShouldBeNil)
	s.UpdateLinkTransforms()
	test.That(t, spatialmath.R3VectorAlmostEqual(b.GlobalTransform().Point(), r3.Vector{X: 0, Y: 2, Z: 1}, 1e-8), test.ShouldBeTrue)

	// resolvable as a frame alongside the links
	test.That(t, s.KnowsFrameTransform("tool"), test.ShouldBeTrue)
	pose, err := s.FrameTransform("tool")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(pose, b.GlobalTransform(), 1e-8), test.ShouldBeTrue)

	_, err = s.AttachBody("tool", "link1", offset)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = s.AttachBody("other", "ghost", offset)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAttachedBodyLookup(t *testing.T) {
	s := NewState(testArmModel(t))
	offset := spatialmath.NewZeroPose()

	_, err := s.AttachBody("b", "link1", offset)
	test.That(t, err, test.ShouldBeNil)
	_, err = s.AttachBody("a", "link2", offset)
	test.That(t, err, test.ShouldBeNil)

	b, ok := s.AttachedBody("a")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, b.LinkName(), test.ShouldEqual, "link2")
	_, ok = s.AttachedBody("zzz")
	test.That(t, ok, test.ShouldBeFalse)

	bodies := s.AttachedBodies()
	test.That(t, len(bodies), test.ShouldEqual, 2)
	test.That(t, bodies[0].Name(), test.ShouldEqual, "a")
	test.That(t, bodies[1].Name(), test.ShouldEqual, "b")

	test.That(t, s.RemoveAttachedBody("a"), test.ShouldBeTrue)
	test.That(t, s.RemoveAttachedBody("a"), test.ShouldBeFalse)
	test.That(t, s.HasAttachedBody("a"), test.ShouldBeFalse)

	s.ClearAttachedBodies()
	test.That(t, len(s.AttachedBodies()), test.ShouldEqual, 0)
	test.That(t, s.KnowsFrameTransform("b"), test.ShouldBeFalse)
}

func TestComputeAABBWithAttachedBodies(t *testing.T) {
	s := NewState(testArmModel(t))
	_, err := s.AttachBody("antenna", "base", spatialmath.NewPoseFromPoint(r3.Vector{X: 0, Y: 0, Z: 3}))
	test.That(t, err, test.ShouldBeNil)

	// the box grows to cover attached bodies too
	min, max := s.ComputeAABB()
	test.That(t, spatialmath.R3VectorAlmostEqual(min, r3.Vector{}, 1e-8), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(max, r3.Vector{X: 2, Y: 0, Z: 3}, 1e-8), test.ShouldBeTrue)
}
