package bridge

import (
	"go.uber.org/zap"

	"imgbridge/pkg/legacy"
	"imgbridge/pkg/meta"
)

// Format is the bridge's entry point for the host framework. It owns the
// filtered candidate reader list and a cached suffix list, hands out fresh
// multiplexed reader instances, and populates typed metadata.
//
// Reader instances returned by CreateReader carry their own series cursor;
// concurrent callers must each create their own instead of sharing one.
type Format struct {
	candidates []legacy.Descriptor
	suffixes   []string
	lggr       *zap.SugaredLogger
}

// Option configures a Format.
type Option func(*Format)

// WithLogger attaches a logger for probe and parse diagnostics. The
// default is a nop logger.
func WithLogger(lggr *zap.SugaredLogger) Option {
	return func(f *Format) { f.lggr = lggr }
}

// WithExclusions replaces the native-format exclusion list applied to the
// default descriptors.
func WithExclusions(excluded []string) Option {
	return func(f *Format) {
		f.candidates = BuildCandidates(legacy.DefaultDescriptors(), excluded)
	}
}

// New returns a Format over the default legacy readers minus the
// NativeFormats exclusions.
func New(opts ...Option) *Format {
	f := &Format{
		candidates: BuildCandidates(legacy.DefaultDescriptors(), NativeFormats),
		lggr:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.recomputeSuffixes()
	return f
}

// Name returns the format name the bridge registers under.
func (f *Format) Name() string { return "Legacy Compatibility Format" }

// Suffixes returns the cached recognized file name suffixes.
func (f *Format) Suffixes() []string { return f.suffixes }

// Candidates returns the current candidate descriptors in probe order.
func (f *Format) Candidates() []legacy.Descriptor { return f.candidates }

// CreateReader returns a fresh multiplexed reader over the current
// candidate list.
func (f *Format) CreateReader() *legacy.MultiReader {
	return legacy.NewMultiReader(f.candidates)
}

// AddReader appends a reader descriptor to the candidate list and
// recomputes the suffix cache.
func (f *Format) AddReader(d legacy.Descriptor) {
	f.candidates = append(f.candidates, d)
	f.recomputeSuffixes()
	f.lggr.Debugw("registered legacy reader", "name", d.Name, "suffixes", f.suffixes)
}

func (f *Format) recomputeSuffixes() {
	f.suffixes = f.CreateReader().Suffixes()
}

// IsFormat reports whether the named source belongs to any candidate
// reader. When open is true the readers may open the source to decide.
func (f *Format) IsFormat(name string, open bool) bool {
	return f.CreateReader().IsThisType(name, open)
}

// CheckHeader reports whether the leading header block belongs to any
// candidate reader.
func (f *Format) CheckHeader(block []byte) bool {
	return f.CreateReader().IsThisTypeHeader(block)
}

// Metadata is the parsed form of one source: the reader bound to it and
// one ImageMetadata record per series. The Metadata owns the reader;
// closing the Metadata closes it.
type Metadata struct {
	reader *legacy.MultiReader

	// Images holds one record per series, in series order.
	Images []meta.ImageMetadata
}

// Parse binds a fresh reader to the named source and translates every
// series' metadata. Failures from the legacy layer surface as open
// failures with the cause preserved.
func (f *Format) Parse(name string) (*Metadata, error) {
	r := f.CreateReader()
	if err := r.SetSource(name); err != nil {
		return nil, err
	}
	m := &Metadata{reader: r}
	for s := 0; s < r.SeriesCount(); s++ {
		m.Images = append(m.Images, meta.Translate(r, s))
	}
	f.lggr.Debugw("parsed legacy source",
		"source", name, "format", r.FormatName(), "series", len(m.Images))
	return m, nil
}

// Reader returns the legacy reader bound to this source.
func (m *Metadata) Reader() legacy.Reader { return m.reader }

// ReadPlane reads a plane region through this source's reader.
func (m *Metadata) ReadPlane(req PlaneRequest, dst []byte) (*Plane, error) {
	return ReadPlane(m.reader, req, dst)
}

// Close releases the underlying reader.
func (m *Metadata) Close() error {
	return m.reader.Close()
}
