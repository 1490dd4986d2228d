// Package meta holds the typed multidimensional metadata model of the
// host imaging framework and the translator that builds it from a legacy
// reader's flat per-series description.
package meta

// AxisType is the semantic tag of one dimension of a series. The standard
// tags are listed below; channel sub-dimensions carry whatever tag the
// legacy reader declared for them ("Spectra", "Lifetime", ...).
type AxisType string

const (
	AxisX       AxisType = "X"
	AxisY       AxisType = "Y"
	AxisZ       AxisType = "Z"
	AxisTime    AxisType = "Time"
	AxisChannel AxisType = "Channel"
)

// Axis is one dimension of a series' shape.
type Axis struct {
	// Type is the semantic tag of the dimension.
	Type AxisType

	// Calibration is the physical scale per step along the axis.
	Calibration float64

	// Length is the extent of the dimension in samples.
	Length int
}

// NewAxis returns an Axis of the given type and length with the default
// calibration of 1.
func NewAxis(t AxisType, length int) Axis {
	return Axis{Type: t, Calibration: 1, Length: length}
}
