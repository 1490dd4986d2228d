package meta

import (
	"strings"

	"imgbridge/pkg/legacy"
)

// Source is the slice of the legacy reader surface the translator
// consumes. legacy.Reader satisfies it.
type Source interface {
	SetSeries(index int)
	SizeX() int
	SizeY() int
	SizeZ() int
	SizeT() int
	DimensionOrder() string
	ChannelDimensions() []legacy.ChannelDimension
	PixelType() legacy.PixelType
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
	PlaneCount() int
	SeriesMetadata() map[string]any
}

// Translate builds the ImageMetadata record of the given series from the
// flat description src exposes.
//
// Translate moves src's series cursor to the requested series and leaves
// it there; on a shared reader instance that mutation is visible to later
// calls. The series index must be in range — the translator passes it to
// src undefended.
//
// Axis order follows the legacy convention: channel sub-dimensions flagged
// interleaved come first, in declared order, wherever 'C' sits in the
// dimension-order string. The remaining axes follow the dimension-order
// string left to right, with non-interleaved channel sub-dimensions
// emitted at the position of 'C'. When the string has no 'C', the
// non-interleaved sub-dimensions are dropped entirely; the legacy formats
// depend on this exact ordering for pixel decoding, so it is preserved
// rather than unified.
func Translate(src Source, series int) ImageMetadata {
	src.SetSeries(series)

	dims := src.ChannelDimensions()
	axes := appendChannelAxes(nil, dims, true)

	order := strings.ToUpper(src.DimensionOrder())
	for _, code := range order {
		switch code {
		case 'X':
			axes = append(axes, NewAxis(AxisX, src.SizeX()))
		case 'Y':
			axes = append(axes, NewAxis(AxisY, src.SizeY()))
		case 'Z':
			axes = append(axes, NewAxis(AxisZ, src.SizeZ()))
		case 'C':
			axes = appendChannelAxes(axes, dims, false)
		case 'T':
			axes = append(axes, NewAxis(AxisTime, src.SizeT()))
		}
	}

	bpp := src.BitsPerPixel()
	if bpp == 0 {
		bpp = src.PixelType().BytesPerSample() * 8
	}

	return ImageMetadata{
		Axes:             axes,
		RGB:              src.RGB(),
		PlaneCount:       src.PlaneCount(),
		ThumbSizeX:       src.ThumbSizeX(),
		ThumbSizeY:       src.ThumbSizeY(),
		PixelType:        src.PixelType(),
		BitsPerPixel:     bpp,
		OrderCertain:     src.OrderCertain(),
		LittleEndian:     src.LittleEndian(),
		Interleaved:      src.Interleaved(),
		Indexed:          src.Indexed(),
		FalseColor:       src.FalseColor(),
		MetadataComplete: src.MetadataComplete(),
		Thumbnail:        src.ThumbnailSeries(),
		Table:            MetaTable(src.SeriesMetadata()),
	}
}

// appendChannelAxes appends one axis per channel sub-dimension whose
// interleaved flag matches, in declared order.
func appendChannelAxes(axes []Axis, dims []legacy.ChannelDimension, interleaved bool) []Axis {
	for _, d := range dims {
		if d.Interleaved != interleaved {
			continue
		}
		t := AxisType(d.Type)
		if t == "" {
			t = AxisChannel
		}
		axes = append(axes, NewAxis(t, d.Length))
	}
	return axes
}
