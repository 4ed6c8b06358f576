package kinmodel

import "github.com/pkg/errors"

// ErrCircularReference is returned when the parentage in a model config does
// not form a tree.
var ErrCircularReference = errors.New("the model config contains a cycle or an element unreachable from a root link")

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// NewReservedWordError returns an error indicating that a reserved word was
// used as an element name.
func NewReservedWordError(category, word string) error {
	return errors.Errorf("reserved word: cannot name a %s %q", category, word)
}

// NewDuplicateNameError returns an error for two model elements of the same
// category sharing a name.
func NewDuplicateNameError(category, name string) error {
	return errors.Errorf("duplicate %s name %q in model config", category, name)
}

// NewUnknownParentError returns an error for an element referencing a parent
// that does not exist in the config.
func NewUnknownParentError(category, name, parent string) error {
	return errors.Errorf("%s %q references unknown parent %q", category, name, parent)
}

// NewUnknownJointTypeError returns an error for an unsupported joint type
// string in a config.
func NewUnknownJointTypeError(jointType string) error {
	return errors.Errorf("unsupported joint type %q, supported types are fixed, revolute, continuous, prismatic, planar and floating", jointType)
}

// NewUnknownGroupJointError returns an error for a group referencing a joint
// that does not exist in the model.
func NewUnknownGroupJointError(group, joint string) error {
	return errors.Errorf("group %q references unknown joint %q", group, joint)
}

// NewDanglingJointError returns an error for a joint with no child link.
func NewDanglingJointError(joint string) error {
	return errors.Errorf("joint %q has no child link", joint)
}
