package meta

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"imgbridge/pkg/legacy"
)

// stubSource is a canned flat series description with a recorded series
// cursor.
type stubSource struct {
	setCalls []int

	sizeX, sizeY, sizeZ, sizeT int
	dimOrder                   string
	dims                       []legacy.ChannelDimension
	pixelType                  legacy.PixelType
	bitsPerPixel               int

	rgb, littleEndian, interleaved  bool
	indexed, falseColor             bool
	orderCertain, metadataComplete  bool
	thumbnailSeries                 bool
	thumbX, thumbY, planeCount      int
	table                           map[string]any
}

func (s *stubSource) SetSeries(index int) { s.setCalls = append(s.setCalls, index) }

func (s *stubSource) SizeX() int { return s.sizeX }
func (s *stubSource) SizeY() int { return s.sizeY }
func (s *stubSource) SizeZ() int { return s.sizeZ }
func (s *stubSource) SizeT() int { return s.sizeT }
func (s *stubSource) DimensionOrder() string { return s.dimOrder }
func (s *stubSource) ChannelDimensions() []legacy.ChannelDimension { return s.dims }
func (s *stubSource) PixelType() legacy.PixelType { return s.pixelType }
func (s *stubSource) BitsPerPixel() int { return s.bitsPerPixel }
func (s *stubSource) RGB() bool { return s.rgb }
func (s *stubSource) LittleEndian() bool { return s.littleEndian }
func (s *stubSource) Interleaved() bool { return s.interleaved }
func (s *stubSource) Indexed() bool { return s.indexed }
func (s *stubSource) FalseColor() bool { return s.falseColor }
func (s *stubSource) OrderCertain() bool { return s.orderCertain }
func (s *stubSource) MetadataComplete() bool { return s.metadataComplete }
func (s *stubSource) ThumbnailSeries() bool { return s.thumbnailSeries }
func (s *stubSource) ThumbSizeX() int { return s.thumbX }
func (s *stubSource) ThumbSizeY() int { return s.thumbY }
func (s *stubSource) PlaneCount() int { return s.planeCount }
func (s *stubSource) SeriesMetadata() map[string]any { return s.table }

// baseStub is the shared shape of the axis-order cases: 512x256, single Z
// and T, dimension order XYCZT.
func baseStub() *stubSource {
	return &stubSource{
		sizeX:    512,
		sizeY:    256,
		sizeZ:    1,
		sizeT:    1,
		dimOrder: "XYCZT",
	}
}

func channelDims(interleaved bool, lengths ...int) []legacy.ChannelDimension {
	dims := make([]legacy.ChannelDimension, len(lengths))
	for i, n := range lengths {
		dims[i] = legacy.ChannelDimension{Length: n, Type: "Channel", Interleaved: interleaved}
	}
	return dims
}

func TestTranslateAxisOrder(t *testing.T) {
	cases := []struct {
		name     string
		dimOrder string
		dims     []legacy.ChannelDimension
		want     []Axis
	}{
		{
			// non-interleaved channel axes land exactly at the 'C'
			// position
			name:     "NonInterleavedAtC",
			dimOrder: "XYCZT",
			dims:     channelDims(false, 1, 1, 1),
			want: []Axis{
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisChannel, 1), NewAxis(AxisChannel, 1), NewAxis(AxisChannel, 1),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			// interleaved channel axes always come first, wherever 'C'
			// sits
			name:     "InterleavedAlwaysFirst",
			dimOrder: "XYCZT",
			dims:     channelDims(true, 1, 1, 1),
			want: []Axis{
				NewAxis(AxisChannel, 1), NewAxis(AxisChannel, 1), NewAxis(AxisChannel, 1),
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			name:     "SingleChannelDimensionKeepsLength",
			dimOrder: "XYCZT",
			dims:     channelDims(false, 3),
			want: []Axis{
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisChannel, 3),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			// no 'C' in the order string: non-interleaved channel
			// dimensions are dropped, not relocated
			name:     "MissingCDropsNonInterleaved",
			dimOrder: "XYZT",
			dims:     channelDims(false, 3),
			want: []Axis{
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			// interleaved ones survive a missing 'C'
			name:     "MissingCKeepsInterleaved",
			dimOrder: "XYZT",
			dims:     channelDims(true, 3),
			want: []Axis{
				NewAxis(AxisChannel, 3),
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			// mixed flags: interleaved entries first in declared order,
			// the rest at 'C' in declared order
			name:     "MixedInterleaving",
			dimOrder: "XYCZT",
			dims: []legacy.ChannelDimension{
				{Length: 2, Type: "Channel", Interleaved: false},
				{Length: 4, Type: "Spectra", Interleaved: true},
				{Length: 5, Type: "Lifetime", Interleaved: false},
			},
			want: []Axis{
				NewAxis("Spectra", 4),
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisChannel, 2), NewAxis("Lifetime", 5),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
		{
			name:     "LowercaseOrderString",
			dimOrder: "xyczt",
			dims:     channelDims(false, 1),
			want: []Axis{
				NewAxis(AxisX, 512), NewAxis(AxisY, 256),
				NewAxis(AxisChannel, 1),
				NewAxis(AxisZ, 1), NewAxis(AxisTime, 1),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := baseStub()
			src.dimOrder = tc.dimOrder
			src.dims = tc.dims
			got := Translate(src, 0)
			if diff := cmp.Diff(tc.want, got.Axes); diff != "" {
				t.Errorf("Axis sequence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateSetsSeriesCursor(t *testing.T) {
	src := baseStub()
	Translate(src, 2)
	if diff := cmp.Diff([]int{2}, src.setCalls); diff != "" {
		t.Errorf("Series cursor calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateBitsPerPixel(t *testing.T) {
	cases := []struct {
		name     string
		declared int
		pt       legacy.PixelType
		want     int
	}{
		{"DerivedUint8", 0, legacy.UInt8, 8},
		{"DerivedInt16", 0, legacy.Int16, 16},
		{"DerivedFloat32", 0, legacy.Float32, 32},
		{"DerivedFloat64", 0, legacy.Float64, 64},
		{"DeclaredWins", 12, legacy.UInt16, 12},
		{"DeclaredOddValueUntouched", 7, legacy.UInt8, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := baseStub()
			src.pixelType = tc.pt
			src.bitsPerPixel = tc.declared
			got := Translate(src, 0)
			if got.BitsPerPixel != tc.want {
				t.Errorf("Expected %d bits per pixel, got %d", tc.want, got.BitsPerPixel)
			}
		})
	}
}

func TestTranslateScalarsAndTable(t *testing.T) {
	src := baseStub()
	src.dims = channelDims(false, 2)
	src.pixelType = legacy.UInt16
	src.rgb = true
	src.littleEndian = true
	src.interleaved = true
	src.indexed = true
	src.falseColor = true
	src.orderCertain = true
	src.metadataComplete = true
	src.thumbnailSeries = true
	src.thumbX, src.thumbY = 128, 64
	src.planeCount = 42
	src.table = map[string]any{"acquisition": "2024-05-01", "gain": 2}

	got := Translate(src, 0)

	if !got.RGB || !got.LittleEndian || !got.Interleaved || !got.Indexed ||
		!got.FalseColor || !got.OrderCertain || !got.MetadataComplete || !got.Thumbnail {
		t.Errorf("Boolean scalars not copied: %+v", got)
	}
	if got.PixelType != legacy.UInt16 {
		t.Errorf("Expected uint16, got %s", got.PixelType)
	}
	if got.ThumbSizeX != 128 || got.ThumbSizeY != 64 {
		t.Errorf("Thumb sizes not copied: %dx%d", got.ThumbSizeX, got.ThumbSizeY)
	}
	if got.PlaneCount != 42 {
		t.Errorf("Plane count not copied: %d", got.PlaneCount)
	}
	if got.Table["gain"] != 2 || got.Table["acquisition"] != "2024-05-01" {
		t.Errorf("Side table not passed through: %v", got.Table)
	}
}

func TestTranslateCalibrationDefaults(t *testing.T) {
	src := baseStub()
	got := Translate(src, 0)
	for _, a := range got.Axes {
		if a.Calibration != 1 {
			t.Errorf("Axis %s calibration should default to 1, got %g", a.Type, a.Calibration)
		}
	}
}

func TestAxisLengths(t *testing.T) {
	src := baseStub()
	src.dims = channelDims(false, 3)
	got := Translate(src, 0)
	want := []int{512, 256, 3, 1, 1}
	if diff := cmp.Diff(want, got.AxisLengths()); diff != "" {
		t.Errorf("AxisLengths mismatch (-want +got):\n%s", diff)
	}
}
