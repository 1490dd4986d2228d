package legacy

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FakeReader synthesizes deterministic image data from parameters embedded
// in the source name itself, so no file needs to exist on disk. A fake
// source name looks like
//
//	myimage&sizeX=64&sizeY=64&sizeC=3&interleaved=true.fake
//
// with any unset parameter falling back to a default. The sample value at
// (x, y) of plane p, channel c is x+y+p+c truncated to the sample type,
// which makes read results easy to assert on.
//
// Recognized parameters: series, sizeX, sizeY, sizeZ, sizeC, sizeT,
// pixelType, dimOrder, interleaved, indexed, littleEndian, falseColor,
// thumbSizeX, thumbSizeY.
type FakeReader struct {
	source      string
	series      int
	seriesCount int

	sizeX, sizeY, sizeZ, sizeC, sizeT int
	pixelType                         PixelType
	dimOrder                          string
	interleaved                       bool
	indexed                           bool
	littleEndian                      bool
	falseColor                        bool
	thumbX, thumbY                    int

	params map[string]any

	lut8  [][]uint8
	lut16 [][]uint16
}

// NewFakeReader returns an unbound FakeReader.
func NewFakeReader() *FakeReader {
	return &FakeReader{}
}

func (f *FakeReader) FormatName() string { return "Simulated data" }

func (f *FakeReader) Suffixes() []string { return []string{"fake"} }

func (f *FakeReader) IsThisType(name string, open bool) bool {
	return strings.HasSuffix(strings.ToLower(name), ".fake")
}

// IsThisTypeHeader always reports false: fake sources have no bytes.
func (f *FakeReader) IsThisTypeHeader(block []byte) bool { return false }

// SetSource parses the parameter list embedded in the source name. The
// source is never opened.
func (f *FakeReader) SetSource(name string) error {
	f.source = name
	f.series = 0
	f.seriesCount = 1
	f.sizeX, f.sizeY, f.sizeZ, f.sizeC, f.sizeT = 512, 512, 1, 1, 1
	f.pixelType = UInt8
	f.dimOrder = "XYZCT"
	f.interleaved = false
	f.indexed = false
	f.littleEndian = true
	f.falseColor = false
	f.thumbX, f.thumbY = 0, 0
	f.params = make(map[string]any)
	f.lut8, f.lut16 = nil, nil

	spec := strings.TrimSuffix(name, ".fake")
	spec = strings.TrimSuffix(spec, ".FAKE")
	tokens := strings.Split(spec, "&")
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return fmt.Errorf("fake: malformed token %q in %q", tok, name)
		}
		if err := f.setParam(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeReader) setParam(key, value string) error {
	switch key {
	case "pixelType":
		p, ok := ParsePixelType(value)
		if !ok {
			return fmt.Errorf("fake: unknown pixel type %q", value)
		}
		f.pixelType = p
		f.params[key] = value
		return nil
	case "dimOrder":
		f.dimOrder = strings.ToUpper(value)
		f.params[key] = f.dimOrder
		return nil
	case "interleaved", "indexed", "littleEndian", "falseColor":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("fake: bad boolean %s=%q", key, value)
		}
		switch key {
		case "interleaved":
			f.interleaved = b
		case "indexed":
			f.indexed = b
		case "littleEndian":
			f.littleEndian = b
		case "falseColor":
			f.falseColor = b
		}
		f.params[key] = b
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("fake: bad integer %s=%q", key, value)
	}
	switch key {
	case "series":
		f.seriesCount = n
	case "sizeX":
		f.sizeX = n
	case "sizeY":
		f.sizeY = n
	case "sizeZ":
		f.sizeZ = n
	case "sizeC":
		f.sizeC = n
	case "sizeT":
		f.sizeT = n
	case "thumbSizeX":
		f.thumbX = n
	case "thumbSizeY":
		f.thumbY = n
	default:
		return fmt.Errorf("fake: unknown parameter %q", key)
	}
	f.params[key] = n
	return nil
}

func (f *FakeReader) Close() error { return nil }

// All series of a fake source share the same shape, so the cursor only
// matters for its visible position.
func (f *FakeReader) SeriesCount() int { return f.seriesCount }
func (f *FakeReader) SetSeries(index int) { f.series = index }
func (f *FakeReader) Series() int { return f.series }

func (f *FakeReader) SizeX() int { return f.sizeX }
func (f *FakeReader) SizeY() int { return f.sizeY }
func (f *FakeReader) SizeZ() int { return f.sizeZ }
func (f *FakeReader) SizeT() int { return f.sizeT }

func (f *FakeReader) DimensionOrder() string { return f.dimOrder }

func (f *FakeReader) ChannelDimensions() []ChannelDimension {
	return []ChannelDimension{
		{Length: f.sizeC, Type: "Channel", Interleaved: f.interleaved},
	}
}

func (f *FakeReader) PixelType() PixelType { return f.pixelType }
func (f *FakeReader) BitsPerPixel() int { return 0 }

func (f *FakeReader) RGB() bool {
	return f.interleaved && f.sizeC > 1
}

func (f *FakeReader) LittleEndian() bool { return f.littleEndian }
func (f *FakeReader) Interleaved() bool { return f.interleaved }
func (f *FakeReader) Indexed() bool { return f.indexed }
func (f *FakeReader) FalseColor() bool { return f.falseColor }
func (f *FakeReader) OrderCertain() bool { return true }
func (f *FakeReader) MetadataComplete() bool { return true }
func (f *FakeReader) ThumbnailSeries() bool { return false }
func (f *FakeReader) ThumbSizeX() int { return f.thumbX }
func (f *FakeReader) ThumbSizeY() int { return f.thumbY }

func (f *FakeReader) PlaneCount() int {
	if f.interleaved {
		return f.sizeZ * f.sizeT
	}
	return f.sizeZ * f.sizeC * f.sizeT
}

func (f *FakeReader) SeriesMetadata() map[string]any { return f.params }

func (f *FakeReader) ReadPlane(plane int, dst []byte, region Region) error {
	channels := 1
	if f.interleaved {
		channels = f.sizeC
	}
	bps := f.pixelType.BytesPerSample()
	needed := region.Width * region.Height * channels * bps
	if len(dst) < needed {
		return fmt.Errorf("fake: plane buffer holds %d bytes, need %d", len(dst), needed)
	}

	order := f.byteOrder()
	off := 0
	for row := 0; row < region.Height; row++ {
		for col := 0; col < region.Width; col++ {
			for c := 0; c < channels; c++ {
				v := uint64((region.X + col) + (region.Y + row) + plane + c)
				f.putSample(dst[off:], v, order)
				off += bps
			}
		}
	}
	return nil
}

func (f *FakeReader) byteOrder() binary.ByteOrder {
	if f.littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (f *FakeReader) putSample(dst []byte, v uint64, order binary.ByteOrder) {
	switch f.pixelType {
	case Int8, UInt8:
		dst[0] = uint8(v)
	case Int16, UInt16:
		order.PutUint16(dst, uint16(v))
	case Int32, UInt32:
		order.PutUint32(dst, uint32(v))
	case Float32:
		order.PutUint32(dst, math.Float32bits(float32(v)))
	case Float64:
		order.PutUint64(dst, math.Float64bits(float64(v)))
	}
}

// LookupTable8 returns a linear ramp palette for indexed 8-bit fakes.
func (f *FakeReader) LookupTable8() [][]uint8 {
	if !f.indexed || f.pixelType != UInt8 {
		return nil
	}
	if f.lut8 == nil {
		f.lut8 = make([][]uint8, 3)
		for c := range f.lut8 {
			f.lut8[c] = make([]uint8, 256)
			for i := range f.lut8[c] {
				f.lut8[c][i] = uint8(i)
			}
		}
	}
	return f.lut8
}

// LookupTable16 returns a linear ramp palette for indexed 16-bit fakes.
func (f *FakeReader) LookupTable16() [][]uint16 {
	if !f.indexed || f.pixelType != UInt16 {
		return nil
	}
	if f.lut16 == nil {
		f.lut16 = make([][]uint16, 3)
		for c := range f.lut16 {
			f.lut16[c] = make([]uint16, 65536)
			for i := range f.lut16[c] {
				f.lut16[c][i] = uint16(i)
			}
		}
	}
	return f.lut16
}
