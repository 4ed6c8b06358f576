// Package kinmodel describes the immutable structural model of a robot: the
// per-joint parameterization variants, the link tree they connect, and the
// named planning groups defined over them. A Model is built once from a
// config and is safe to share, read-only, across any number of runtime
// states and goroutines.
package kinmodel

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

// JointType enumerates the supported joint parameterizations.
type JointType int

// The supported joint types.
const (
	JointTypeFixed JointType = iota
	JointTypeRevolute
	JointTypePrismatic
	JointTypePlanar
	JointTypeFloating
)

// String returns the config-file spelling of the joint type.
func (t JointType) String() string {
	switch t {
	case JointTypeFixed:
		return "fixed"
	case JointTypeRevolute:
		return "revolute"
	case JointTypePrismatic:
		return "prismatic"
	case JointTypePlanar:
		return "planar"
	case JointTypeFloating:
		return "floating"
	}
	return "unknown"
}

// Joint is the contract every joint parameterization satisfies. One Joint
// instance exists per joint definition and is shared, immutable, across all
// runtime states of the robot.
//
// Value slices passed to the numeric methods must have length DoF(); the
// methods that cannot otherwise fail assume this rather than returning an
// error on every call, and Transform is the one place length is checked.
type Joint interface {
	// Name returns the name of the joint.
	Name() string

	// Type returns the parameterization variant.
	Type() JointType

	// VariableNames returns the ordered names of the joint's variables,
	// one per degree of freedom.
	VariableNames() []string

	// Limits returns the per-variable limits, index-aligned with
	// VariableNames.
	Limits() []Limit

	// DoF returns the number of variables parameterizing the joint.
	DoF() int

	// MaximumExtent returns the greatest distance the joint can produce
	// between two of its configurations.
	MaximumExtent() float64

	// DefaultValues returns, per variable, zero if zero is within limits and
	// the limit midpoint otherwise.
	DefaultValues() []float64

	// RandomValues samples variable values uniformly within limits.
	RandomValues(rng *rand.Rand) []float64

	// RandomValuesNearby samples within the given distance of near, clipped
	// to limits. Circular variables are sampled unclipped and wrapped
	// instead.
	RandomValuesNearby(rng *rand.Rand, near []float64, distance float64) []float64

	// Interpolate returns values the given fraction of the way from one
	// configuration to the other, taking the shorter arc for circular
	// variables. by=0 and by=1 return copies of the endpoints exactly.
	Interpolate(from, to []float64, by float64) []float64

	// Distance returns a nonnegative distance between two configurations.
	Distance(a, b []float64) float64

	// SatisfiesLimits checks all variables against their limits, allowing
	// the given margin on both sides. Circular variables always pass.
	SatisfiesLimits(values []float64, margin float64) bool

	// EnforceLimits normalizes values in place: circular variables are
	// wrapped into (-pi, pi], bounded variables clamped. Idempotent.
	EnforceLimits(values []float64)

	// Transform maps variable values to the local rigid motion of the joint.
	// Errors only if the value slice length does not match DoF.
	Transform(values []float64) (spatialmath.Pose, error)

	// VariablesFromTransform recovers variable values from a rigid
	// transform: the partial inverse of Transform, exact for values within
	// the variant's natural range, modulo representational ambiguity.
	VariablesFromTransform(pose spatialmath.Pose) []float64
}

// NewIncorrectDoFError returns an error for when a joint is given a value
// slice whose length does not match its degrees of freedom.
func NewIncorrectDoFError(name string, got, want int) error {
	return errors.Errorf("joint %q given %d values, expected %d", name, got, want)
}

// interpolateLinear writes the elementwise linear interpolation of from and
// to into a fresh slice. Endpoints are returned as exact copies so repeated
// interpolation does not drift.
func interpolateLinear(from, to []float64, by float64) []float64 {
	out := make([]float64, len(from))
	switch by {
	case 0:
		copy(out, from)
	case 1:
		copy(out, to)
	default:
		for i := range from {
			out[i] = from[i] + (to[i]-from[i])*by
		}
	}
	return out
}
