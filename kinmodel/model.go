package kinmodel

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

// World is the reserved parent name marking a root link.
const World = "world"

// Link is an immutable link descriptor: a fixed origin offset hanging off the
// joint that connects the link to its parent. Root links have no joint and no
// parent.
type Link struct {
	name      string
	origin    spatialmath.Pose
	jointIdx  int // index into the model's joints, -1 for root links
	parentIdx int // index into the model's links, -1 for root links
}

// Name returns the name of the link.
func (l Link) Name() string {
	return l.name
}

// Origin returns the link's fixed offset relative to its parent joint frame.
func (l Link) Origin() spatialmath.Pose {
	return l.origin
}

// JointIndex returns the canonical index of the joint connecting this link to
// its parent, or -1 for a root link.
func (l Link) JointIndex() int {
	return l.jointIdx
}

// ParentIndex returns the canonical index of the parent link, or -1 for a
// root link.
func (l Link) ParentIndex() int {
	return l.parentIdx
}

// Model is the immutable tree description of links and joints shared by all
// runtime states of one robot. Joints and links are held in canonical
// parent-before-child order; the name maps are built once at construction and
// never rebuilt.
type Model struct {
	name          string
	joints        []Joint
	jointIndex    map[string]int
	links         []Link
	linkIndex     map[string]int
	groups        map[string][]int
	variableNames []string
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Joints returns the model's joints in canonical order. The returned slice
// must not be modified.
func (m *Model) Joints() []Joint {
	return m.joints
}

// Joint returns the joint with the given name.
func (m *Model) Joint(name string) (Joint, bool) {
	idx, ok := m.jointIndex[name]
	if !ok {
		return nil, false
	}
	return m.joints[idx], true
}

// JointIndex returns the canonical index of the named joint.
func (m *Model) JointIndex(name string) (int, bool) {
	idx, ok := m.jointIndex[name]
	return idx, ok
}

// JointNames returns the joint names in canonical order.
func (m *Model) JointNames() []string {
	names := make([]string, len(m.joints))
	for i, j := range m.joints {
		names[i] = j.Name()
	}
	return names
}

// Links returns the model's links in canonical order, parents before
// children. The returned slice must not be modified.
func (m *Model) Links() []Link {
	return m.links
}

// Link returns the link with the given name.
func (m *Model) Link(name string) (Link, bool) {
	idx, ok := m.linkIndex[name]
	if !ok {
		return Link{}, false
	}
	return m.links[idx], true
}

// LinkIndex returns the canonical index of the named link.
func (m *Model) LinkIndex(name string) (int, bool) {
	idx, ok := m.linkIndex[name]
	return idx, ok
}

// LinkNames returns the link names in canonical order.
func (m *Model) LinkNames() []string {
	names := make([]string, len(m.links))
	for i, l := range m.links {
		names[i] = l.name
	}
	return names
}

// Group returns the canonical joint indices of the named planning group, in
// group order.
func (m *Model) Group(name string) ([]int, bool) {
	idx, ok := m.groups[name]
	if !ok {
		return nil, false
	}
	out := make([]int, len(idx))
	copy(out, idx)
	return out, true
}

// HasGroup reports whether a group with the given name exists.
func (m *Model) HasGroup(name string) bool {
	_, ok := m.groups[name]
	return ok
}

// GroupNames returns the names of all planning groups, sorted.
func (m *Model) GroupNames() []string {
	names := maps.Keys(m.groups)
	sort.Strings(names)
	return names
}

// VariableCount returns the total number of joint variables in the model.
func (m *Model) VariableCount() int {
	return len(m.variableNames)
}

// VariableNames returns the flattened variable names in canonical joint
// order.
func (m *Model) VariableNames() []string {
	out := make([]string, len(m.variableNames))
	copy(out, m.variableNames)
	return out
}
