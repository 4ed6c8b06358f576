package kinstate

import (
	"math/rand"
	"sort"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/floats"

	"github.com/bit-pirate/moveit-core/kinmodel"
	"github.com/bit-pirate/moveit-core/spatialmath"
)

// varRef locates one variable inside the joint arena.
type varRef struct {
	jointIdx int
	offset   int
}

// State owns the complete runtime state of one robot configuration. All
// joint and link records live in flat arenas in the model's canonical order;
// the name maps are built once at construction.
//
// A State is not safe for concurrent mutation. The underlying model is
// immutable and may be shared across any number of states and goroutines.
type State struct {
	model *kinmodel.Model

	joints   []JointState
	links    []LinkState
	varIndex map[string]varRef

	groups   map[string]*Group
	attached map[string]*AttachedBody

	// Additional transform applied to the whole tree of links.
	rootTransform spatialmath.Pose

	// Allocated on first use; never read the field directly, go through
	// RandSource.
	rng *rand.Rand
}

// NewState creates a state mirroring the given model, with every joint at its
// default values and link transforms already propagated.
func NewState(model *kinmodel.Model) *State {
	s := &State{
		model:         model,
		varIndex:      map[string]varRef{},
		groups:        map[string]*Group{},
		attached:      map[string]*AttachedBody{},
		rootTransform: spatialmath.NewZeroPose(),
	}

	joints := model.Joints()
	s.joints = make([]JointState, len(joints))
	for i, j := range joints {
		s.joints[i] = JointState{
			joint:  j,
			values: j.DefaultValues(),
			local:  spatialmath.NewZeroPose(),
			dirty:  true,
		}
		for off, name := range j.VariableNames() {
			s.varIndex[name] = varRef{jointIdx: i, offset: off}
		}
	}

	links := model.Links()
	s.links = make([]LinkState, len(links))
	for i, l := range links {
		s.links[i] = LinkState{
			name:      l.Name(),
			origin:    l.Origin(),
			jointIdx:  l.JointIndex(),
			parentIdx: l.ParentIndex(),
			global:    spatialmath.NewZeroPose(),
		}
	}

	for _, name := range model.GroupNames() {
		idx, _ := model.Group(name)
		s.groups[name] = newGroup(name, s, idx)
	}

	s.UpdateLinkTransforms()
	return s
}

// Model returns the structural model this state was built from.
func (s *State) Model() *kinmodel.Model {
	return s.model
}

// VariableCount returns the total number of joint variables in the state.
func (s *State) VariableCount() int {
	return s.model.VariableCount()
}

// SetValues sets all joint values from a slice in canonical joint order. On a
// length mismatch an error is returned and the state is untouched.
func (s *State) SetValues(values []float64) error {
	if len(values) != s.model.VariableCount() {
		return NewIncorrectVariableCountError(len(values), s.model.VariableCount())
	}
	idx := 0
	for i := range s.joints {
		dof := s.joints[i].joint.DoF()
		s.joints[i].setValues(values[idx : idx+dof])
		idx += dof
	}
	return nil
}

// SetValuesFromMap sets the variables named in the map, silently skipping
// nothing that is known, and returns the provided names that matched no
// variable in the model, sorted.
func (s *State) SetValuesFromMap(values map[string]float64) []string {
	var missing []string
	for name, v := range values {
		ref, ok := s.varIndex[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		js := &s.joints[ref.jointIdx]
		js.values[ref.offset] = v
		js.dirty = true
	}
	sort.Strings(missing)
	return missing
}

// SetNamedValues sets variables from parallel name and value slices. On a
// length mismatch an error is returned and the state is untouched; otherwise
// the unmatched names are returned, as with SetValuesFromMap.
func (s *State) SetNamedValues(names []string, values []float64) ([]string, error) {
	if len(names) != len(values) {
		return nil, NewIncorrectVariableCountError(len(values), len(names))
	}
	m := make(map[string]float64, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return s.SetValuesFromMap(m), nil
}

// Values returns all joint values in canonical joint order.
func (s *State) Values() []float64 {
	out := make([]float64, 0, s.model.VariableCount())
	for i := range s.joints {
		out = append(out, s.joints[i].values...)
	}
	return out
}

// ValuesMap returns all joint values keyed by variable name.
func (s *State) ValuesMap() map[string]float64 {
	out := make(map[string]float64, s.model.VariableCount())
	for i := range s.joints {
		for off, name := range s.joints[i].joint.VariableNames() {
			out[name] = s.joints[i].values[off]
		}
	}
	return out
}

// UpdateLinkTransforms performs forward kinematics with the current values:
// stale joint transforms are recomputed, then every link's global transform
// is composed in one parent-before-child pass over the canonical ordering.
// Callers must invoke this after changing values and before reading any
// global transform; no read path recomputes implicitly.
func (s *State) UpdateLinkTransforms() {
	for i := range s.joints {
		s.joints[i].updateTransform()
	}
	for i := range s.links {
		ls := &s.links[i]
		parent := s.rootTransform
		if ls.parentIdx >= 0 {
			parent = s.links[ls.parentIdx].global
		}
		if ls.jointIdx >= 0 {
			parent = spatialmath.Compose(parent, s.joints[ls.jointIdx].local)
		}
		ls.global = spatialmath.Compose(parent, ls.origin)
	}
}

// UpdateStateWithLinkAt sets the named link's global transform to the target
// by solving the one joint connecting the link to its parent, then
// repropagates link transforms. Link transforms must be current on entry.
// Only the immediate joint is solved; resolving a chain through multiple
// joints is out of scope.
func (s *State) UpdateStateWithLinkAt(linkName string, target spatialmath.Pose) error {
	idx, ok := s.model.LinkIndex(linkName)
	if !ok {
		return NewUnknownLinkError(linkName)
	}
	ls := &s.links[idx]
	if ls.jointIdx < 0 {
		return NewUnknownLinkError(linkName + " (root link, no parent joint)")
	}
	parent := s.rootTransform
	if ls.parentIdx >= 0 {
		parent = s.links[ls.parentIdx].global
	}
	// target = parent * joint * origin, solved for the joint transform
	local := spatialmath.Compose(
		spatialmath.Compose(spatialmath.PoseInverse(parent), target),
		spatialmath.PoseInverse(ls.origin),
	)
	js := &s.joints[ls.jointIdx]
	js.setValues(js.joint.VariablesFromTransform(local))
	s.UpdateLinkTransforms()
	return nil
}

// SetToDefaultValues sets every joint to its default values.
func (s *State) SetToDefaultValues() {
	for i := range s.joints {
		s.joints[i].setValues(s.joints[i].joint.DefaultValues())
	}
}

// SetToRandomValues samples every joint uniformly within its limits.
func (s *State) SetToRandomValues() {
	rng := s.RandSource()
	for i := range s.joints {
		s.joints[i].setValues(s.joints[i].joint.RandomValues(rng))
	}
}

// SetToRandomValuesNearby samples every joint within the given distance of
// the corresponding joint in near.
func (s *State) SetToRandomValuesNearby(near *State, distance float64) error {
	if near.model != s.model {
		return ErrModelMismatch
	}
	rng := s.RandSource()
	for i := range s.joints {
		s.joints[i].setValues(s.joints[i].joint.RandomValuesNearby(rng, near.joints[i].values, distance))
	}
	return nil
}

// SatisfiesLimits reports whether every joint is within its limits, allowing
// the given margin.
func (s *State) SatisfiesLimits(margin float64) bool {
	for i := range s.joints {
		if !s.joints[i].SatisfiesLimits(margin) {
			return false
		}
	}
	return true
}

// CheckBounds reports every joint whose current values are outside its
// limits, aggregated into one error. Nil when the whole state is in bounds.
func (s *State) CheckBounds() error {
	var err error
	for i := range s.joints {
		js := &s.joints[i]
		if !js.SatisfiesLimits(0) {
			err = multierr.Combine(err,
				errors.Errorf("joint %q values %v are out of bounds", js.joint.Name(), js.values))
		}
	}
	return err
}

// EnforceLimits wraps or clamps every joint's values into limits.
func (s *State) EnforceLimits() {
	for i := range s.joints {
		s.joints[i].EnforceLimits()
	}
}

// Interpolate writes into dest a state the given fraction of the way from
// this state to another. All three states must be built from the same model.
func (s *State) Interpolate(to *State, by float64, dest *State) error {
	if to.model != s.model || dest.model != s.model {
		return ErrModelMismatch
	}
	if by < 0 || by > 1 {
		return NewInterpolationRangeError(by)
	}
	for i := range s.joints {
		dest.joints[i].setValues(s.joints[i].joint.Interpolate(s.joints[i].values, to.joints[i].values, by))
	}
	return nil
}

// Distance returns the sum over all joints of the per-joint distance between
// the two states. The tree topology is deliberately ignored; both states
// must be built from the same model.
func (s *State) Distance(other *State) (float64, error) {
	if other.model != s.model {
		return 0, ErrModelMismatch
	}
	dists := make([]float64, len(s.joints))
	for i := range s.joints {
		dists[i] = s.joints[i].joint.Distance(s.joints[i].values, other.joints[i].values)
	}
	return floats.Sum(dists), nil
}

// JointState returns the runtime record of the named joint.
func (s *State) JointState(name string) (*JointState, bool) {
	idx, ok := s.model.JointIndex(name)
	if !ok {
		return nil, false
	}
	return &s.joints[idx], true
}

// HasJointState reports whether the named joint is part of this state.
func (s *State) HasJointState(name string) bool {
	_, ok := s.model.JointIndex(name)
	return ok
}

// LinkState returns the runtime record of the named link.
func (s *State) LinkState(name string) (*LinkState, bool) {
	idx, ok := s.model.LinkIndex(name)
	if !ok {
		return nil, false
	}
	return &s.links[idx], true
}

// HasLinkState reports whether the named link is updated by this state.
func (s *State) HasLinkState(name string) bool {
	_, ok := s.model.LinkIndex(name)
	return ok
}

// JointStates returns the joint records in canonical order.
func (s *State) JointStates() []*JointState {
	out := make([]*JointState, len(s.joints))
	for i := range s.joints {
		out[i] = &s.joints[i]
	}
	return out
}

// LinkStates returns the link records in canonical order.
func (s *State) LinkStates() []*LinkState {
	out := make([]*LinkState, len(s.links))
	for i := range s.links {
		out[i] = &s.links[i]
	}
	return out
}

// Group returns the named planning group view.
func (s *State) Group(name string) (*Group, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// HasGroup reports whether the named group exists.
func (s *State) HasGroup(name string) bool {
	_, ok := s.groups[name]
	return ok
}

// GroupNames returns the names of all groups, sorted.
func (s *State) GroupNames() []string {
	names := maps.Keys(s.groups)
	sort.Strings(names)
	return names
}

// FrameTransform resolves a frame id against link names first, then attached
// body names, and returns its current global transform. Transforms must be
// current.
func (s *State) FrameTransform(id string) (spatialmath.Pose, error) {
	if idx, ok := s.model.LinkIndex(id); ok {
		return s.links[idx].global, nil
	}
	if b, ok := s.attached[id]; ok {
		return b.GlobalTransform(), nil
	}
	return spatialmath.Pose{}, NewFrameNotFoundError(id)
}

// KnowsFrameTransform reports whether FrameTransform would resolve the id.
func (s *State) KnowsFrameTransform(id string) bool {
	if _, ok := s.model.LinkIndex(id); ok {
		return true
	}
	_, ok := s.attached[id]
	return ok
}

// RootTransform returns the global transform applied to the entire tree of
// links.
func (s *State) RootTransform() spatialmath.Pose {
	return s.rootTransform
}

// SetRootTransform sets the global transform applied to the entire tree of
// links. Link transforms are stale until the next UpdateLinkTransforms.
func (s *State) SetRootTransform(pose spatialmath.Pose) {
	s.rootTransform = pose
}

// ComputeAABB returns the axis-aligned bounding box over all link and
// attached body origins, as min and max corners. Transforms must be current.
// A model with a single root link collapses to a point.
func (s *State) ComputeAABB() (r3.Vector, r3.Vector) {
	if len(s.links) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	min := s.links[0].global.Point()
	max := min
	grow := func(pt r3.Vector) {
		min = r3.Vector{X: minF(min.X, pt.X), Y: minF(min.Y, pt.Y), Z: minF(min.Z, pt.Z)}
		max = r3.Vector{X: maxF(max.X, pt.X), Y: maxF(max.Y, pt.Y), Z: maxF(max.Z, pt.Z)}
	}
	for i := range s.links[1:] {
		grow(s.links[i+1].global.Point())
	}
	for _, b := range s.attached {
		grow(b.GlobalTransform().Point())
	}
	return min, max
}

// RandSource returns the state's random number generator. Allocating a
// generator for every sampled state up front would be wasteful, so it is
// created on first use.
func (s *State) RandSource() *rand.Rand {
	if s.rng == nil {
		//nolint:gosec
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.rng
}

// SetRandSource replaces the state's random number generator, e.g. to seed
// sampling deterministically.
func (s *State) SetRandSource(rng *rand.Rand) {
	s.rng = rng
}

// Copy deep-copies the state: all joint, link, group and attached body
// records are duplicated and rebound, while the immutable model is shared by
// reference. The random number generator is not carried over.
func (s *State) Copy() *State {
	n := &State{
		model:         s.model,
		varIndex:      s.varIndex,
		groups:        map[string]*Group{},
		attached:      map[string]*AttachedBody{},
		rootTransform: s.rootTransform,
	}
	n.joints = make([]JointState, len(s.joints))
	copy(n.joints, s.joints)
	for i := range n.joints {
		values := make([]float64, len(s.joints[i].values))
		copy(values, s.joints[i].values)
		n.joints[i].values = values
	}
	n.links = make([]LinkState, len(s.links))
	copy(n.links, s.links)
	for name, g := range s.groups {
		n.groups[name] = newGroup(name, n, g.jointIdx)
	}
	for name, b := range s.attached {
		n.attached[name] = &AttachedBody{
			name:     b.name,
			linkName: b.linkName,
			linkIdx:  b.linkIdx,
			relative: b.relative,
			state:    n,
		}
	}
	return n
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a < b {
		return b
	}
	return a
}
