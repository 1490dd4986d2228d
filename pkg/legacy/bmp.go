package legacy

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// BMPReader reads uncompressed Windows bitmaps: 8-bit paletted and 24-bit
// BGR. 8-bit files expose their palette through LookupTable8.
//
// The host framework covers BMP natively, so this reader sits on the
// native-format exclusion list by default and only participates when a
// caller registers it explicitly.
type BMPReader struct {
	source string
	series int

	width, height int
	bitCount      int
	raster        []byte // top-down, RGB interleaved for 24-bit
	lut8          [][]uint8
}

// NewBMPReader returns an unbound BMPReader.
func NewBMPReader() *BMPReader {
	return &BMPReader{}
}

func (b *BMPReader) FormatName() string { return "Windows Bitmap" }

func (b *BMPReader) Suffixes() []string { return []string{"bmp"} }

func (b *BMPReader) IsThisType(name string, open bool) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".bmp") {
		return false
	}
	if !open {
		return true
	}
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	var magic [2]byte
	if _, err := f.Read(magic[:]); err != nil {
		return false
	}
	return b.IsThisTypeHeader(magic[:])
}

func (b *BMPReader) IsThisTypeHeader(block []byte) bool {
	return len(block) >= 2 && block[0] == 'B' && block[1] == 'M'
}

func (b *BMPReader) SetSource(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if len(data) < 54 || !b.IsThisTypeHeader(data) {
		return fmt.Errorf("bmp: %s: not a BMP file", name)
	}

	le := binary.LittleEndian
	dataOffset := int(le.Uint32(data[10:]))
	infoSize := int(le.Uint32(data[14:]))
	width := int(int32(le.Uint32(data[18:])))
	height := int(int32(le.Uint32(data[22:])))
	bitCount := int(le.Uint16(data[28:]))
	compression := le.Uint32(data[30:])

	if compression != 0 {
		return fmt.Errorf("bmp: %s: compression %d not supported", name, compression)
	}
	if bitCount != 8 && bitCount != 24 {
		return fmt.Errorf("bmp: %s: %d-bit data not supported", name, bitCount)
	}
	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("bmp: %s: bad dimensions %dx%d", name, width, height)
	}

	var lut [][]uint8
	if bitCount == 8 {
		colors := int(le.Uint32(data[46:]))
		if colors == 0 {
			colors = 256
		}
		palette := data[14+infoSize:]
		if len(palette) < colors*4 {
			return fmt.Errorf("bmp: %s: palette truncated", name)
		}
		lut = make([][]uint8, 3)
		for c := range lut {
			lut[c] = make([]uint8, colors)
		}
		for i := 0; i < colors; i++ {
			// palette entries are stored BGRA
			lut[0][i] = palette[i*4+2]
			lut[1][i] = palette[i*4+1]
			lut[2][i] = palette[i*4]
		}
	}

	// rows are padded to 4-byte boundaries and usually stored bottom-up
	channels := bitCount / 8
	stride := (width*channels + 3) &^ 3
	if len(data)-dataOffset < stride*height {
		return fmt.Errorf("bmp: %s: raster truncated", name)
	}
	raster := make([]byte, width*height*channels)
	for row := 0; row < height; row++ {
		srcRow := height - 1 - row
		if topDown {
			srcRow = row
		}
		src := data[dataOffset+srcRow*stride:]
		dst := raster[row*width*channels:]
		if channels == 1 {
			copy(dst[:width], src[:width])
			continue
		}
		for col := 0; col < width; col++ {
			// BGR on disk, RGB in memory
			dst[col*3] = src[col*3+2]
			dst[col*3+1] = src[col*3+1]
			dst[col*3+2] = src[col*3]
		}
	}

	b.source = name
	b.series = 0
	b.width, b.height = width, height
	b.bitCount = bitCount
	b.raster = raster
	b.lut8 = lut
	return nil
}

func (b *BMPReader) Close() error {
	b.raster = nil
	b.lut8 = nil
	return nil
}

func (b *BMPReader) SeriesCount() int { return 1 }
func (b *BMPReader) SetSeries(index int) { b.series = index }
func (b *BMPReader) Series() int { return b.series }

func (b *BMPReader) SizeX() int { return b.width }
func (b *BMPReader) SizeY() int { return b.height }
func (b *BMPReader) SizeZ() int { return 1 }
func (b *BMPReader) SizeT() int { return 1 }

func (b *BMPReader) DimensionOrder() string { return "XYCZT" }

func (b *BMPReader) channelCount() int {
	if b.bitCount == 24 {
		return 3
	}
	return 1
}

func (b *BMPReader) ChannelDimensions() []ChannelDimension {
	return []ChannelDimension{
		{Length: b.channelCount(), Type: "Channel", Interleaved: b.bitCount == 24},
	}
}

func (b *BMPReader) PixelType() PixelType { return UInt8 }
func (b *BMPReader) BitsPerPixel() int { return 8 }

func (b *BMPReader) RGB() bool { return b.bitCount == 24 }
func (b *BMPReader) LittleEndian() bool { return true }
func (b *BMPReader) Interleaved() bool { return b.bitCount == 24 }
func (b *BMPReader) Indexed() bool { return b.bitCount == 8 }
func (b *BMPReader) FalseColor() bool { return false }
func (b *BMPReader) OrderCertain() bool { return true }
func (b *BMPReader) MetadataComplete() bool { return true }
func (b *BMPReader) ThumbnailSeries() bool { return false }
func (b *BMPReader) ThumbSizeX() int { return 0 }
func (b *BMPReader) ThumbSizeY() int { return 0 }

func (b *BMPReader) PlaneCount() int { return 1 }

func (b *BMPReader) SeriesMetadata() map[string]any {
	return map[string]any{"bitCount": b.bitCount}
}

func (b *BMPReader) ReadPlane(plane int, dst []byte, region Region) error {
	if plane != 0 {
		return fmt.Errorf("bmp: plane %d out of range", plane)
	}
	channels := b.channelCount()
	rowBytes := region.Width * channels
	if len(dst) < region.Height*rowBytes {
		return fmt.Errorf("bmp: plane buffer holds %d bytes, need %d", len(dst), region.Height*rowBytes)
	}
	for row := 0; row < region.Height; row++ {
		src := ((region.Y+row)*b.width + region.X) * channels
		copy(dst[row*rowBytes:(row+1)*rowBytes], b.raster[src:src+rowBytes])
	}
	return nil
}

func (b *BMPReader) LookupTable8() [][]uint8 { return b.lut8 }
func (b *BMPReader) LookupTable16() [][]uint16 { return nil }
