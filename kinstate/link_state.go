package kinstate

import (
	"github.com/bit-pirate/moveit-core/spatialmath"
)

// LinkState is the runtime record of one link: its cached global transform.
// Parent and joint are referenced by canonical index into the owning state's
// arenas, never by pointer, so deep-copying a state is a flat slice copy.
type LinkState struct {
	name      string
	origin    spatialmath.Pose
	jointIdx  int // -1 for root links
	parentIdx int // -1 for root links
	global    spatialmath.Pose
}

// Name returns the name of the link.
func (ls *LinkState) Name() string {
	return ls.name
}

// GlobalTransform returns the cached global transform of the link. It is
// valid only if the owning state's UpdateLinkTransforms has run since the
// last value change.
func (ls *LinkState) GlobalTransform() spatialmath.Pose {
	return ls.global
}
