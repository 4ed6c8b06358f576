package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// TranslationConfig specifies a translation in model JSON files, in the units
// of the model (typically mm).
type TranslationConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewTranslationConfig constructs a config from an r3.Vector.
func NewTranslationConfig(pt r3.Vector) *TranslationConfig {
	return &TranslationConfig{X: pt.X, Y: pt.Y, Z: pt.Z}
}

// ParseConfig converts a TranslationConfig into an r3.Vector.
func (c TranslationConfig) ParseConfig() r3.Vector {
	return r3.Vector{X: c.X, Y: c.Y, Z: c.Z}
}

// AxisConfig specifies a joint axis in model JSON files.
type AxisConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ParseConfig converts an AxisConfig into an r3.Vector. The axis is not
// normalized here; joint constructors normalize and reject zero axes.
func (a AxisConfig) ParseConfig() r3.Vector {
	return r3.Vector{X: a.X, Y: a.Y, Z: a.Z}
}

// OrientationConfig specifies a fixed orientation in model JSON files as an
// R4 axis angle with theta in radians.
type OrientationConfig struct {
	R4AA
}

// ParseConfig converts an OrientationConfig into a unit quaternion.
func (o *OrientationConfig) ParseConfig() (quat.Number, error) {
	if o == nil {
		return quat.Number{Real: 1}, nil
	}
	norm := o.RX*o.RX + o.RY*o.RY + o.RZ*o.RZ
	if o.Theta != 0 && norm == 0 {
		return quat.Number{}, errors.New("orientation has nonzero angle but zero axis")
	}
	return o.ToQuat(), nil
}
