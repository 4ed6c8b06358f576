package kinstate

import "github.com/pkg/errors"

// ErrModelMismatch is returned when two states that must share a structural
// model were built from different ones.
var ErrModelMismatch = errors.New("states are not built from the same structural model")

// NewIncorrectVariableCountError returns an error for a positional value
// slice whose length does not match the model's variable count.
func NewIncorrectVariableCountError(got, want int) error {
	return errors.Errorf("given %d values, model has %d variables", got, want)
}

// NewFrameNotFoundError returns an error for a frame id matching neither a
// link nor an attached body.
func NewFrameNotFoundError(id string) error {
	return errors.Errorf("frame %q is neither a link nor an attached body", id)
}

// NewUnknownLinkError returns an error for a link name not present in the
// model.
func NewUnknownLinkError(name string) error {
	return errors.Errorf("no link named %q in the model", name)
}

// NewInterpolationRangeError returns an error for an interpolation fraction
// outside [0, 1].
func NewInterpolationRangeError(by float64) error {
	return errors.Errorf("interpolation fraction %f is not between 0 and 1", by)
}

// NewDuplicateAttachedBodyError returns an error for attaching a body under a
// name already in use.
func NewDuplicateAttachedBodyError(name string) error {
	return errors.Errorf("a body named %q is already attached", name)
}
