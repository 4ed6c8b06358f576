package kinstate

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

// AttachedBody is an auxiliary rigid body fixed to a link's frame at runtime
// with an additional fixed offset. It is not part of the structural model;
// the owning state creates and destroys it explicitly.
type AttachedBody struct {
	name     string
	linkName string
	linkIdx  int
	relative spatialmath.Pose
	state    *State
}

// Name returns the name of the attached body, unique within the state.
func (b *AttachedBody) Name() string {
	return b.name
}

// LinkName returns the name of the link the body is fixed to.
func (b *AttachedBody) LinkName() string {
	return b.linkName
}

// RelativeTransform returns the body's fixed offset from its link's frame.
func (b *AttachedBody) RelativeTransform() spatialmath.Pose {
	return b.relative
}

// GlobalTransform returns the body's current global transform. The owning
// state's link transforms must be current.
func (b *AttachedBody) GlobalTransform() spatialmath.Pose {
	return spatialmath.Compose(b.state.links[b.linkIdx].global, b.relative)
}

// AttachBody fixes a new body to the named link with the given offset. The
// name must not already be in use and the link must exist.
func (s *State) AttachBody(name, linkName string, relative spatialmath.Pose) (*AttachedBody, error) {
	if _, ok := s.attached[name]; ok {
		return nil, NewDuplicateAttachedBodyError(name)
	}
	idx, ok := s.model.LinkIndex(linkName)
	if !ok {
		return nil, NewUnknownLinkError(linkName)
	}
	b := &AttachedBody{name: name, linkName: linkName, linkIdx: idx, relative: relative, state: s}
	s.attached[name] = b
	return b, nil
}

// AttachedBody returns the attached body with the given name.
func (s *State) AttachedBody(name string) (*AttachedBody, bool) {
	b, ok := s.attached[name]
	return b, ok
}

// HasAttachedBody reports whether a body with the given name is attached.
func (s *State) HasAttachedBody(name string) bool {
	_, ok := s.attached[name]
	return ok
}

// AttachedBodies returns all attached bodies, sorted by name.
func (s *State) AttachedBodies() []*AttachedBody {
	names := maps.Keys(s.attached)
	sort.Strings(names)
	out := make([]*AttachedBody, len(names))
	for i, name := range names {
		out[i] = s.attached[name]
	}
	return out
}

// RemoveAttachedBody detaches the named body, reporting whether it existed.
func (s *State) RemoveAttachedBody(name string) bool {
	if _, ok := s.attached[name]; !ok {
		return false
	}
	delete(s.attached, name)
	return true
}

// ClearAttachedBodies detaches all bodies.
func (s *State) ClearAttachedBodies() {
	s.attached = map[string]*AttachedBody{}
}
