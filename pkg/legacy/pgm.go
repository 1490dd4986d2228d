package legacy

import (
	"fmt"
	"math/bits"
	"os"
	"strconv"
	"strings"
)

// PGMReader reads binary (P5) portable graymap files, 8- and 16-bit.
// A PGM file holds exactly one single-plane grayscale series; 16-bit
// samples are big-endian per the format.
type PGMReader struct {
	source string
	series int

	width, height int
	maxval        int
	raster        []byte
}

// NewPGMReader returns an unbound PGMReader.
func NewPGMReader() *PGMReader {
	return &PGMReader{}
}

func (p *PGMReader) FormatName() string { return "Portable Gray Map" }

func (p *PGMReader) Suffixes() []string { return []string{"pgm"} }

func (p *PGMReader) IsThisType(name string, open bool) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".pgm") {
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
	return p.IsThisTypeHeader(magic[:])
}

func (p *PGMReader) IsThisTypeHeader(block []byte) bool {
	return len(block) >= 2 && block[0] == 'P' && block[1] == '5'
}

// SetSource reads and decodes the whole file. PGM rasters are small
// enough that keeping them resident is cheaper than re-seeking per region
// read.
func (p *PGMReader) SetSource(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if !p.IsThisTypeHeader(data) {
		return fmt.Errorf("pgm: %s: missing P5 magic", name)
	}

	pos := 2
	fields := make([]int, 3)
	for i := range fields {
		tok, err := nextPGMToken(data, &pos)
		if err != nil {
			return fmt.Errorf("pgm: %s: truncated header", name)
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			return fmt.Errorf("pgm: %s: bad header field %q", name, tok)
		}
		fields[i] = n
	}
	p.width, p.height, p.maxval = fields[0], fields[1], fields[2]
	if p.maxval > 65535 {
		return fmt.Errorf("pgm: %s: maxval %d out of range", name, p.maxval)
	}

	// one whitespace byte separates the header from the raster
	pos++
	size := p.width * p.height * p.bytesPerSample()
	if len(data)-pos < size {
		return fmt.Errorf("pgm: %s: raster truncated (%d of %d bytes)", name, len(data)-pos, size)
	}
	p.raster = data[pos : pos+size]
	p.source = name
	p.series = 0
	return nil
}

// nextPGMToken scans the next whitespace-delimited header token, skipping
// '#' comments that run to end of line.
func nextPGMToken(data []byte, pos *int) (string, error) {
	i := *pos
	for i < len(data) {
		switch {
		case data[i] == '#':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case isPGMSpace(data[i]):
			i++
		default:
			start := i
			for i < len(data) && !isPGMSpace(data[i]) && data[i] != '#' {
				i++
			}
			*pos = i
			return string(data[start:i]), nil
		}
	}
	return "", fmt.Errorf("unexpected end of header")
}

func isPGMSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *PGMReader) bytesPerSample() int {
	if p.maxval > 255 {
		return 2
	}
	return 1
}

func (p *PGMReader) Close() error {
	p.raster = nil
	return nil
}

func (p *PGMReader) SeriesCount() int { return 1 }
func (p *PGMReader) SetSeries(index int) { p.series = index }
func (p *PGMReader) Series() int { return p.series }

func (p *PGMReader) SizeX() int { return p.width }
func (p *PGMReader) SizeY() int { return p.height }
func (p *PGMReader) SizeZ() int { return 1 }
func (p *PGMReader) SizeT() int { return 1 }

func (p *PGMReader) DimensionOrder() string { return "XYCZT" }

func (p *PGMReader) ChannelDimensions() []ChannelDimension {
	return []ChannelDimension{{Length: 1, Type: "Channel", Interleaved: false}}
}

func (p *PGMReader) PixelType() PixelType {
	if p.maxval > 255 {
		return UInt16
	}
	return UInt8
}

// BitsPerPixel reports the bits implied by the declared maxval, which may
// be narrower than the storage type (a maxval of 4095 means 12 bits in
// 16-bit samples).
func (p *PGMReader) BitsPerPixel() int { return bits.Len(uint(p.maxval)) }

func (p *PGMReader) RGB() bool { return false }
func (p *PGMReader) LittleEndian() bool { return false }
func (p *PGMReader) Interleaved() bool { return false }
func (p *PGMReader) Indexed() bool { return false }
func (p *PGMReader) FalseColor() bool { return false }
func (p *PGMReader) OrderCertain() bool { return true }
func (p *PGMReader) MetadataComplete() bool { return true }
func (p *PGMReader) ThumbnailSeries() bool { return false }
func (p *PGMReader) ThumbSizeX() int { return 0 }
func (p *PGMReader) ThumbSizeY() int { return 0 }

func (p *PGMReader) PlaneCount() int { return 1 }

func (p *PGMReader) SeriesMetadata() map[string]any {
	return map[string]any{"maxval": p.maxval}
}

func (p *PGMReader) ReadPlane(plane int, dst []byte, region Region) error {
	if plane != 0 {
		return fmt.Errorf("pgm: plane %d out of range", plane)
	}
	bps := p.bytesPerSample()
	rowBytes := region.Width * bps
	if len(dst) < region.Height*rowBytes {
		return fmt.Errorf("pgm: plane buffer holds %d bytes, need %d", len(dst), region.Height*rowBytes)
	}
	for row := 0; row < region.Height; row++ {
		src := ((region.Y+row)*p.width + region.X) * bps
		copy(dst[row*rowBytes:(row+1)*rowBytes], p.raster[src:src+rowBytes])
	}
	return nil
}

func (p *PGMReader) LookupTable8() [][]uint8 { return nil }
func (p *PGMReader) LookupTable16() [][]uint16 { return nil }
