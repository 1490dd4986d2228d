package legacy

// MultiReader multiplexes an ordered list of candidate readers behind the
// Reader interface. Binding a source probes the candidates in list order
// and delegates everything afterwards to the first reader that claimed it.
//
// A MultiReader carries the same single series cursor as any other Reader,
// held by the delegate. It is not safe for concurrent use; callers that
// read several series at once need one MultiReader each.
type MultiReader struct {
	candidates []Descriptor
	current    Reader
	source     string
}

// NewMultiReader returns a MultiReader over the given candidates. The
// slice is used as-is; callers must not mutate it afterwards.
func NewMultiReader(candidates []Descriptor) *MultiReader {
	return &MultiReader{candidates: candidates}
}

// FormatName returns the matched reader's format name, or a generic name
// before a source is bound.
func (m *MultiReader) FormatName() string {
	if m.current == nil {
		return "Legacy Compatibility Reader"
	}
	return m.current.FormatName()
}

// Suffixes returns the union of the candidates' suffixes, first occurrence
// order, duplicates removed.
func (m *MultiReader) Suffixes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range m.candidates {
		for _, s := range d.New().Suffixes() {
			if seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// IsThisType reports whether any candidate recognizes the named source.
func (m *MultiReader) IsThisType(name string, open bool) bool {
	for _, d := range m.candidates {
		if d.New().IsThisType(name, open) {
			return true
		}
	}
	return false
}

// IsThisTypeHeader reports whether any candidate recognizes the leading
// header block.
func (m *MultiReader) IsThisTypeHeader(block []byte) bool {
	for _, d := range m.candidates {
		if d.New().IsThisTypeHeader(block) {
			return true
		}
	}
	return false
}

// SetSource probes the candidates in order and binds the first one that
// recognizes the named source. Failing to find one reports
// ErrUnknownFormat; a failure from the matched reader is wrapped as an
// open failure with the cause preserved.
func (m *MultiReader) SetSource(name string) error {
	for _, d := range m.candidates {
		r := d.New()
		if !r.IsThisType(name, true) {
			continue
		}
		if err := r.SetSource(name); err != nil {
			return &FormatError{Op: "open", Source: name, Err: err}
		}
		m.current = r
		m.source = name
		return nil
	}
	return &FormatError{Op: "open", Source: name, Err: ErrUnknownFormat}
}

// Source returns the bound source name, empty before SetSource.
func (m *MultiReader) Source() string { return m.source }

// Close closes the matched reader, if any.
func (m *MultiReader) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Close()
	m.current = nil
	return err
}

// The per-series surface delegates to the matched reader. Calling any of
// these before a successful SetSource is a caller error.

func (m *MultiReader) SeriesCount() int { return m.current.SeriesCount() }
func (m *MultiReader) SetSeries(index int) { m.current.SetSeries(index) }
func (m *MultiReader) Series() int { return m.current.Series() }
func (m *MultiReader) SizeX() int { return m.current.SizeX() }
func (m *MultiReader) SizeY() int { return m.current.SizeY() }
func (m *MultiReader) SizeZ() int { return m.current.SizeZ() }
func (m *MultiReader) SizeT() int { return m.current.SizeT() }
func (m *MultiReader) DimensionOrder() string {
	return m.current.DimensionOrder()
}
func (m *MultiReader) ChannelDimensions() []ChannelDimension {
	return m.current.ChannelDimensions()
}
func (m *MultiReader) PixelType() PixelType { return m.current.PixelType() }
func (m *MultiReader) BitsPerPixel() int { return m.current.BitsPerPixel() }
func (m *MultiReader) RGB() bool { return m.current.RGB() }
func (m *MultiReader) LittleEndian() bool { return m.current.LittleEndian() }
func (m *MultiReader) Interleaved() bool { return m.current.Interleaved() }
func (m *MultiReader) Indexed() bool { return m.current.Indexed() }
func (m *MultiReader) FalseColor() bool { return m.current.FalseColor() }
func (m *MultiReader) OrderCertain() bool { return m.current.OrderCertain() }
func (m *MultiReader) MetadataComplete() bool {
	return m.current.MetadataComplete()
}
func (m *MultiReader) ThumbnailSeries() bool { return m.current.ThumbnailSeries() }
func (m *MultiReader) ThumbSizeX() int { return m.current.ThumbSizeX() }
func (m *MultiReader) ThumbSizeY() int { return m.current.ThumbSizeY() }
func (m *MultiReader) PlaneCount() int { return m.current.PlaneCount() }
func (m *MultiReader) SeriesMetadata() map[string]any {
	return m.current.SeriesMetadata()
}
func (m *MultiReader) ReadPlane(plane int, dst []byte, region Region) error {
	return m.current.ReadPlane(plane, dst, region)
}
func (m *MultiReader) LookupTable8() [][]uint8 { return m.current.LookupTable8() }
func (m *MultiReader) LookupTable16() [][]uint16 { return m.current.LookupTable16() }
