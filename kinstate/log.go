package kinstate

import (
	"github.com/edaniels/golog"
)

// LogStateInfo dumps the state's joints, groups and attached bodies at debug
// level. Purely a debugging convenience.
func (s *State) LogStateInfo(logger golog.Logger) {
	logger.Debugf("model %q, %d variables", s.model.Name(), s.model.VariableCount())
	for i := range s.joints {
		js := &s.joints[i]
		logger.Debugf("joint %s (%s): %v", js.joint.Name(), js.joint.Type(), js.values)
	}
	for _, name := range s.GroupNames() {
		logger.Debugf("group %s: %v", name, s.groups[name].JointNames())
	}
	for _, b := range s.AttachedBodies() {
		logger.Debugf("attached body %s on link %s", b.name, b.linkName)
	}
}

// LogTransforms dumps the current global transform of every link at debug
// level. Transforms must be current.
func (s *State) LogTransforms(logger golog.Logger) {
	for i := range s.links {
		ls := &s.links[i]
		pt := ls.global.Point()
		aa := ls.global.AxisAngles()
		logger.Debugf("link %s at [%.4f %.4f %.4f], rotation %.4f about [%.4f %.4f %.4f]",
			ls.name, pt.X, pt.Y, pt.Z, aa.Theta, aa.RX, aa.RY, aa.RZ)
	}
}
