package meta

import "imgbridge/pkg/legacy"

// MetaTable is the free-form key/value side table of one series.
type MetaTable map[string]any

// ImageMetadata is the typed metadata record of one series: an ordered
// axis list describing its shape, plus the scalar properties the host
// framework keys decoding and display on. Records are built once during
// metadata population and not mutated afterwards.
type ImageMetadata struct {
	// Axes is the ordered shape of the series.
	Axes []Axis

	RGB          bool
	PlaneCount   int
	ThumbSizeX   int
	ThumbSizeY   int
	PixelType    legacy.PixelType
	BitsPerPixel int
	OrderCertain bool
	LittleEndian bool
	Interleaved  bool
	Indexed      bool
	FalseColor   bool

	// MetadataComplete reports whether the source format parser claims to
	// have extracted everything the format can express.
	MetadataComplete bool

	// Thumbnail marks the series as a thumbnail of another series.
	Thumbnail bool

	// Table carries the series' key/value metadata verbatim.
	Table MetaTable
}

// AxisLengths returns the lengths of the axes in order.
func (m *ImageMetadata) AxisLengths() []int {
	lengths := make([]int, len(m.Axes))
	for i, a := range m.Axes {
		lengths[i] = a.Length
	}
	return lengths
}
