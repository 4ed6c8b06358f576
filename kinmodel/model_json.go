package kinmodel

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/bit-pirate/moveit-core/spatialmath"
)

// JointConfig represents one joint definition in a model config. Min and Max
// bound every translational variable of the joint; they are ignored for
// continuous joints. Axis is required for revolute, continuous and prismatic
// joints.
type JointConfig struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	Parent string                 `json:"parent"`
	Axis   spatialmath.AxisConfig `json:"axis,omitempty"`
	Min    float64                `json:"min,omitempty"`
	Max    float64                `json:"max,omitempty"`
}

// LinkConfig represents one link definition: a fixed offset relative to the
// parent joint frame. Parent names the connecting joint, or "world" for a
// root link.
type LinkConfig struct {
	ID          string                         `json:"id"`
	Parent      string                         `json:"parent"`
	Translation spatialmath.TranslationConfig  `json:"translation,omitempty"`
	Orientation *spatialmath.OrientationConfig `json:"orientation,omitempty"`
}

// GroupConfig names an ordered subset of joints used as one planning group.
type GroupConfig struct {
	Name   string   `json:"name"`
	Joints []string `json:"joints"`
}

// ModelConfig represents all supported fields in a kinematics JSON file.
type ModelConfig struct {
	Name   string        `json:"name"`
	Joints []JointConfig `json:"joints"`
	Links  []LinkConfig  `json:"links"`
	Groups []GroupConfig `json:"groups,omitempty"`
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model.
func UnmarshalModelJSON(jsonData []byte) (*Model, error) {
	// empty data probably means that the robot component has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}

	return cfg.ParseConfig()
}

// ParseModelJSONFile will read a given file and then parse the contained JSON
// data.
func ParseModelJSONFile(filename string) (*Model, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData)
}

// ParseConfig converts the ModelConfig into a full Model, validating names,
// parentage and group membership, and establishing the canonical
// parent-before-child ordering of links and joints.
func (cfg *ModelConfig) ParseConfig() (*Model, error) {
	if len(cfg.Links) == 0 {
		return nil, errors.New("a model requires at least one link")
	}

	jointCfgs := map[string]JointConfig{}
	for _, j := range cfg.Joints {
		if j.ID == World {
			return nil, NewReservedWordError("joint", World)
		}
		if _, ok := jointCfgs[j.ID]; ok {
			return nil, NewDuplicateNameError("joint", j.ID)
		}
		jointCfgs[j.ID] = j
	}

	linkCfgs := map[string]LinkConfig{}
	for _, l := range cfg.Links {
		if l.ID == World {
			return nil, NewReservedWordError("link", World)
		}
		if _, ok := linkCfgs[l.ID]; ok {
			return nil, NewDuplicateNameError("link", l.ID)
		}
		linkCfgs[l.ID] = l
	}

	// Child lookups preserving config order, so the canonical ordering is
	// deterministic for a given config.
	childJoints := map[string][]JointConfig{} // parent link id -> joints
	childLink := map[string]LinkConfig{}      // joint id -> its one child link
	var roots []LinkConfig
	for _, j := range cfg.Joints {
		if _, ok := linkCfgs[j.Parent]; !ok {
			return nil, NewUnknownParentError("joint", j.ID, j.Parent)
		}
		childJoints[j.Parent] = append(childJoints[j.Parent], j)
	}
	for _, l := range cfg.Links {
		if l.Parent == World {
			roots = append(roots, l)
			continue
		}
		if _, ok := jointCfgs[l.Parent]; !ok {
			return nil, NewUnknownParentError("link", l.ID, l.Parent)
		}
		if prev, ok := childLink[l.Parent]; ok {
			return nil, errors.Errorf("joint %q has two child links, %q and %q", l.Parent, prev.ID, l.ID)
		}
		childLink[l.Parent] = l
	}
	for _, j := range cfg.Joints {
		if _, ok := childLink[j.ID]; !ok {
			return nil, NewDanglingJointError(j.ID)
		}
	}

	m := &Model{
		name:       cfg.Name,
		jointIndex: map[string]int{},
		linkIndex:  map[string]int{},
		groups:     map[string][]int{},
	}

	// Walk the tree from the roots, placing each link after its parent. Any
	// element left unplaced is part of a cycle.
	var place func(l LinkConfig, jointIdx, parentIdx int) error
	place = func(l LinkConfig, jointIdx, parentIdx int) error {
		origin, err := linkOrigin(l)
		if err != nil {
			return err
		}
		m.linkIndex[l.ID] = len(m.links)
		m.links = append(m.links, Link{name: l.ID, origin: origin, jointIdx: jointIdx, parentIdx: parentIdx})
		linkIdx := len(m.links) - 1

		for _, jc := range childJoints[l.ID] {
			joint, err := jointFromConfig(jc)
			if err != nil {
				return err
			}
			m.jointIndex[jc.ID] = len(m.joints)
			m.joints = append(m.joints, joint)
			m.variableNames = append(m.variableNames, joint.VariableNames()...)
			if err := place(childLink[jc.ID], len(m.joints)-1, linkIdx); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := place(root, -1, -1); err != nil {
			return nil, err
		}
	}
	if len(m.links) != len(cfg.Links) || len(m.joints) != len(cfg.Joints) {
		return nil, ErrCircularReference
	}

	for _, g := range cfg.Groups {
		if _, ok := m.groups[g.Name]; ok {
			return nil, NewDuplicateNameError("group", g.Name)
		}
		seen := map[string]bool{}
		idx := make([]int, 0, len(g.Joints))
		for _, name := range g.Joints {
			jIdx, ok := m.jointIndex[name]
			if !ok {
				return nil, NewUnknownGroupJointError(g.Name, name)
			}
			if seen[name] {
				return nil, errors.Errorf("group %q lists joint %q twice", g.Name, name)
			}
			seen[name] = true
			idx = append(idx, jIdx)
		}
		m.groups[g.Name] = idx
	}

	return m, nil
}

func linkOrigin(l LinkConfig) (spatialmath.Pose, error) {
	o, err := l.Orientation.ParseConfig()
	if err != nil {
		return spatialmath.Pose{}, errors.Wrapf(err, "parsing link %q", l.ID)
	}
	return spatialmath.NewPose(l.Translation.ParseConfig(), o), nil
}

func jointFromConfig(jc JointConfig) (Joint, error) {
	switch jc.Type {
	case "fixed":
		return NewFixedJoint(jc.ID), nil
	case "revolute":
		return NewRevoluteJoint(jc.ID, jc.Axis.ParseConfig(), NewLimit(jc.Min, jc.Max))
	case "continuous":
		return NewContinuousJoint(jc.ID, jc.Axis.ParseConfig())
	case "prismatic":
		return NewPrismaticJoint(jc.ID, jc.Axis.ParseConfig(), NewLimit(jc.Min, jc.Max))
	case "planar":
		return NewPlanarJoint(jc.ID, NewLimit(jc.Min, jc.Max), NewLimit(jc.Min, jc.Max)), nil
	case "floating":
		l := NewLimit(jc.Min, jc.Max)
		return NewFloatingJoint(jc.ID, l, l, l), nil
	default:
		return nil, NewUnknownJointTypeError(jc.Type)
	}
}
