// Package legacy defines the flat, series-cursor based contract of the
// wrapped legacy image reader library, together with a multiplexed reader
// that selects a concrete implementation by ordered first-match probing.
//
// The legacy model addresses a file as a list of series. Each reader
// instance carries a single mutable "current series" cursor; every
// per-series getter reflects whichever series was selected last. Callers
// that need concurrent access must use one reader instance per goroutine.
package legacy

// PixelType identifies the sample type of a series' pixel data, using the
// legacy library's fixed type enumeration.
type PixelType int

const (
	Int8 PixelType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

// BytesPerSample returns the storage size of one sample of this type.
func (p PixelType) BytesPerSample() int {
	switch p {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (p PixelType) String() string {
	switch p {
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "unknown"
}

// ParsePixelType maps a type name to its PixelType. The boolean reports
// whether the name was recognized.
func ParsePixelType(name string) (PixelType, bool) {
	for _, p := range []PixelType{Int8, UInt8, Int16, UInt16, Int32, UInt32, Float32, Float64} {
		if p.String() == name {
			return p, true
		}
	}
	return 0, false
}

// Region is a rectangular sub-area of a plane, in pixels.
type Region struct {
	X, Y          int
	Width, Height int
}

// ChannelDimension describes one channel sub-dimension of a series.
// Interleaved sub-dimensions have their samples woven into each plane's
// byte layout; non-interleaved ones are stored as separate planes.
type ChannelDimension struct {
	// Length is the extent of the sub-dimension, always positive.
	Length int

	// Type is the semantic tag of the sub-dimension ("Channel",
	// "Spectra", "Lifetime", ...).
	Type string

	// Interleaved reports whether samples along this sub-dimension are
	// interleaved within each plane.
	Interleaved bool
}

// Reader is the flat per-series API exposed by every legacy reader
// implementation.
//
// SetSource binds the reader to a named source and parses enough of it to
// answer the per-series getters. SetSeries moves the shared series cursor;
// all getters below it report on the currently selected series.
type Reader interface {
	// FormatName returns the human-readable name of the format.
	FormatName() string

	// Suffixes returns the file name suffixes recognized by this reader,
	// without leading dots.
	Suffixes() []string

	// IsThisType reports whether the named source belongs to this format.
	// When open is false the decision is made from the name alone; when
	// open is true the reader may open the source and inspect its header.
	IsThisType(name string, open bool) bool

	// IsThisTypeHeader reports whether the given leading block of a
	// source belongs to this format.
	IsThisTypeHeader(block []byte) bool

	// SetSource binds the reader to the named source.
	SetSource(name string) error

	// Close releases any underlying handles. The reader may not be used
	// afterwards.
	Close() error

	// SeriesCount returns the number of series in the bound source.
	SeriesCount() int

	// SetSeries moves the series cursor. The index must be in range; the
	// contract does not defend against violations.
	SetSeries(index int)

	// Series returns the current cursor position.
	Series() int

	SizeX() int
	SizeY() int
	SizeZ() int
	SizeT() int

	// DimensionOrder returns the series' axis order as a string over the
	// codes X, Y, Z, C and T.
	DimensionOrder() string

	// ChannelDimensions returns the channel sub-dimensions of the series
	// in declared order.
	ChannelDimensions() []ChannelDimension

	PixelType() PixelType

	// BitsPerPixel returns the declared significant bits per sample, or 0
	// when the format does not declare them.
	BitsPerPixel() int

	RGB() bool
	LittleEndian() bool
	Interleaved() bool
	Indexed() bool
	FalseColor() bool
	OrderCertain() bool
	MetadataComplete() bool
	ThumbnailSeries() bool
	ThumbSizeX() int
	ThumbSizeY() int

	// PlaneCount returns the number of planes in the current series.
	PlaneCount() int

	// SeriesMetadata returns the key/value metadata of the current series.
	SeriesMetadata() map[string]any

	// ReadPlane reads the given region of plane number plane of the
	// current series into dst. dst must hold at least
	// region.Width*region.Height samples times the sample size (times the
	// interleaved channel count, for interleaved series).
	ReadPlane(plane int, dst []byte, region Region) error

	// LookupTable8 returns the 8-bit palette of the current series, or
	// nil when the series has none.
	LookupTable8() [][]uint8

	// LookupTable16 returns the 16-bit palette of the current series, or
	// nil when the series has none.
	LookupTable16() [][]uint16
}

// Descriptor names a legacy reader implementation and knows how to build a
// fresh instance of it. The Name is the registration identity used for
// exclusion filtering.
type Descriptor struct {
	Name string
	New  func() Reader
}

// DefaultDescriptors returns the stock legacy readers in their fixed probe
// order.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{Name: "Fake", New: func() Reader { return NewFakeReader() }},
		{Name: "PGM", New: func() Reader { return NewPGMReader() }},
		{Name: "BMP", New: func() Reader { return NewBMPReader() }},
	}
}
