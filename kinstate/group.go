package kinstate

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// Group is a view over a named, ordered subset of the state's joints, used
// as one planning group. Operations on a group never touch joints outside
// it. The
// group holds no values of its own; it reads and writes the owning state's
// joint records.
type Group struct {
	name          string
	state         *State
	jointIdx      []int
	variableCount int
}

func newGroup(name string, state *State, jointIdx []int) *Group {
	g := &Group{name: name, state: state, jointIdx: jointIdx}
	for _, idx := range jointIdx {
		g.variableCount += state.joints[idx].joint.DoF()
	}
	return g
}

// Name returns the name of the group.
func (g *Group) Name() string {
	return g.name
}

// JointNames returns the names of the group's joints in group order.
func (g *Group) JointNames() []string {
	names := make([]string, len(g.jointIdx))
	for i, idx := range g.jointIdx {
		names[i] = g.state.joints[idx].joint.Name()
	}
	return names
}

// VariableCount returns the total number of variables across the group's
// joints.
func (g *Group) VariableCount() int {
	return g.variableCount
}

// JointStates returns the group's joint records in group order.
func (g *Group) JointStates() []*JointState {
	out := make([]*JointState, len(g.jointIdx))
	for i, idx := range g.jointIdx {
		out[i] = &g.state.joints[idx]
	}
	return out
}

// SetValues sets the group's joint values from a slice in group order. On a
// length mismatch an error is returned and the state is untouched.
func (g *Group) SetValues(values []float64) error {
	if len(values) != g.variableCount {
		return NewIncorrectVariableCountError(len(values), g.variableCount)
	}
	pos := 0
	for _, idx := range g.jointIdx {
		js := &g.state.joints[idx]
		dof := js.joint.DoF()
		js.setValues(values[pos : pos+dof])
		pos += dof
	}
	return nil
}

// Values returns the group's joint values in group order.
func (g *Group) Values() []float64 {
	out := make([]float64, 0, g.variableCount)
	for _, idx := range g.jointIdx {
		out = append(out, g.state.joints[idx].values...)
	}
	return out
}

// SetToDefaultValues sets every joint in the group to its default values.
func (g *Group) SetToDefaultValues() {
	for _, idx := range g.jointIdx {
		js := &g.state.joints[idx]
		js.setValues(js.joint.DefaultValues())
	}
}

// SetToRandomValues samples every joint in the group uniformly within its
// limits, using the owning state's random number generator.
func (g *Group) SetToRandomValues() {
	rng := g.state.RandSource()
	for _, idx := range g.jointIdx {
		js := &g.state.joints[idx]
		js.setValues(js.joint.RandomValues(rng))
	}
}

// SetToRandomValuesNearby samples every joint in the group within the given
// distance of the corresponding block of near, a value slice in group order.
func (g *Group) SetToRandomValuesNearby(near []float64, distance float64) error {
	if len(near) != g.variableCount {
		return NewIncorrectVariableCountError(len(near), g.variableCount)
	}
	rng := g.state.RandSource()
	pos := 0
	for _, idx := range g.jointIdx {
		js := &g.state.joints[idx]
		dof := js.joint.DoF()
		js.setValues(js.joint.RandomValuesNearby(rng, near[pos:pos+dof], distance))
		pos += dof
	}
	return nil
}

// SatisfiesLimits reports whether every joint in the group is within its
// limits, allowing the given margin.
func (g *Group) SatisfiesLimits(margin float64) bool {
	for _, idx := range g.jointIdx {
		if !g.state.joints[idx].SatisfiesLimits(margin) {
			return false
		}
	}
	return true
}

// CheckBounds reports every joint in the group whose current values are
// outside its limits, aggregated into one error.
func (g *Group) CheckBounds() error {
	var err error
	for _, idx := range g.jointIdx {
		js := &g.state.joints[idx]
		if !js.SatisfiesLimits(0) {
			err = multierr.Combine(err,
				errors.Errorf("joint %q values %v are out of bounds", js.joint.Name(), js.values))
		}
	}
	return err
}

// EnforceLimits wraps or clamps every joint in the group into its limits.
func (g *Group) EnforceLimits() {
	for _, idx := range g.jointIdx {
		g.state.joints[idx].EnforceLimits()
	}
}

// Interpolate writes into dest's joints a configuration the given fraction of
// the way from this group's to to's. All three groups must view states built
// from the same model.
func (g *Group) Interpolate(to *Group, by float64, dest *Group) error {
	if to.state.model != g.state.model || dest.state.model != g.state.model {
		return ErrModelMismatch
	}
	if by < 0 || by > 1 {
		return NewInterpolationRangeError(by)
	}
	for _, idx := range g.jointIdx {
		from := &g.state.joints[idx]
		dest.state.joints[idx].setValues(from.joint.Interpolate(from.values, to.state.joints[idx].values, by))
	}
	return nil
}

// Distance returns the sum of per-joint distances between this group's
// configuration and the same group in another state.
func (g *Group) Distance(other *Group) (float64, error) {
	if other.state.model != g.state.model {
		return 0, ErrModelMismatch
	}
	dists := make([]float64, len(g.jointIdx))
	for i, idx := range g.jointIdx {
		dists[i] = g.state.joints[idx].joint.Distance(g.state.joints[idx].values, other.state.joints[idx].values)
	}
	return floats.Sum(dists), nil
}

// Joint returns the group's view of the named joint, if the joint is part of
// the group.
func (g *Group) Joint(name string) (*JointState, bool) {
	for _, idx := range g.jointIdx {
		if g.state.joints[idx].joint.Name() == name {
			return &g.state.joints[idx], true
		}
	}
	return nil, false
}
