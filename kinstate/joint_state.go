// Package kinstate holds the mutable runtime state of one robot
// configuration: per-joint variable values, cached link transforms, planning
// group views and attached bodies, all laid out over a shared immutable
// kinmodel.Model. A State is mutated by at most one goroutine at a time; the
// model may be shared freely.
package kinstate

import (
	"github.com/bit-pirate/moveit-core/kinmodel"
	"github.com/bit-pirate/moveit-core/spatialmath"
)

// JointState is the runtime record of one joint: its current variable values
// and a cached local transform, recomputed lazily when the values change.
type JointState struct {
	joint  kinmodel.Joint
	values []float64
	local  spatialmath.Pose
	dirty  bool
}

// Name returns the name of the underlying joint.
func (js *JointState) Name() string {
	return js.joint.Name()
}

// Joint returns the underlying immutable joint model.
func (js *JointState) Joint() kinmodel.Joint {
	return js.joint
}

// Values returns a copy of the joint's current variable values.
func (js *JointState) Values() []float64 {
	out := make([]float64, len(js.values))
	copy(out, js.values)
	return out
}

// SetValues sets the joint's variable values and marks its cached transform
// stale. The state's values are untouched on a length mismatch.
func (js *JointState) SetValues(values []float64) error {
	if len(values) != len(js.values) {
		return kinmodel.NewIncorrectDoFError(js.joint.Name(), len(values), len(js.values))
	}
	js.setValues(values)
	return nil
}

// setValues copies values in without length checking; callers guarantee the
// length.
func (js *JointState) setValues(values []float64) {
	copy(js.values, values)
	js.dirty = true
}

// SatisfiesLimits checks the current values against the joint's limits with
// the given margin.
func (js *JointState) SatisfiesLimits(margin float64) bool {
	return js.joint.SatisfiesLimits(js.values, margin)
}

// EnforceLimits wraps or clamps the current values into limits in place.
func (js *JointState) EnforceLimits() {
	js.joint.EnforceLimits(js.values)
	js.dirty = true
}

// LocalTransform returns the cached local transform. It is valid only if the
// owning state's UpdateLinkTransforms has run since the last value change.
func (js *JointState) LocalTransform() spatialmath.Pose {
	return js.local
}

// updateTransform recomputes the cached local transform if the values changed
// since the last computation.
func (js *JointState) updateTransform() {
	if !js.dirty {
		return
	}
	// The values slice length is maintained by the setters, so Transform
	// cannot fail here.
	local, err := js.joint.Transform(js.values)
	if err == nil {
		js.local = local
	}
	js.dirty = false
}
