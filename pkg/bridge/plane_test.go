package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imgbridge/pkg/legacy"
)

func fakeSource(t *testing.T, name string) legacy.Reader {
	t.Helper()
	f := legacy.NewFakeReader()
	require.NoError(t, f.SetSource(name))
	return f
}

func TestReadPlaneSetsSeriesCursor(t *testing.T) {
	src := fakeSource(t, "t&series=4&sizeX=4&sizeY=4.fake")
	dst := make([]byte, 16)

	_, err := ReadPlane(src, PlaneRequest{Series: 2, Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Series())

	// a second request against a different series must re-set the cursor
	_, err = ReadPlane(src, PlaneRequest{Series: 3, Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, src.Series())
}

func TestReadPlaneFillsDestination(t *testing.T) {
	src := fakeSource(t, "t&sizeX=16&sizeY=16.fake")
	dst := make([]byte, 2*2)

	p, err := ReadPlane(src, PlaneRequest{Plane: 1, Region: legacy.Region{X: 3, Y: 5, Width: 2, Height: 2}}, dst)
	require.NoError(t, err)
	// sample at (3, 5) of plane 1
	assert.Equal(t, byte(3+5+1), p.Bytes[0])
	assert.Same(t, &dst[0], &p.Bytes[0], "result must alias the caller's buffer")
}

func TestReadPlaneAttaches8BitPalette(t *testing.T) {
	src := fakeSource(t, "t&sizeX=4&sizeY=4&indexed=true.fake")
	dst := make([]byte, 16)

	p, err := ReadPlane(src, PlaneRequest{Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	require.NotNil(t, p.ColorTable)
	assert.Equal(t, 8, p.ColorTable.Bits())
	assert.Equal(t, 3, p.ColorTable.ComponentCount())
	assert.Equal(t, 256, p.ColorTable.Length())
}

func TestReadPlaneAttaches16BitPalette(t *testing.T) {
	src := fakeSource(t, "t&sizeX=4&sizeY=4&indexed=true&pixelType=uint16.fake")
	dst := make([]byte, 32)

	p, err := ReadPlane(src, PlaneRequest{Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	require.NotNil(t, p.ColorTable)
	assert.Equal(t, 16, p.ColorTable.Bits())
}

func TestReadPlanePrefers8BitPalette(t *testing.T) {
	src := &bothPaletteReader{fakeSource(t, "t&sizeX=4&sizeY=4&indexed=true.fake")}
	dst := make([]byte, 16)

	p, err := ReadPlane(src, PlaneRequest{Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	require.NotNil(t, p.ColorTable)
	assert.Equal(t, 8, p.ColorTable.Bits(), "at most one palette, 8-bit first")
}

func TestReadPlaneNoPalette(t *testing.T) {
	src := fakeSource(t, "t&sizeX=4&sizeY=4.fake")
	dst := make([]byte, 16)

	p, err := ReadPlane(src, PlaneRequest{Region: legacy.Region{Width: 4, Height: 4}}, dst)
	require.NoError(t, err)
	assert.Nil(t, p.ColorTable)
}

func TestReadPlaneWrapsFailure(t *testing.T) {
	src := fakeSource(t, "t&sizeX=8&sizeY=8.fake")
	dst := make([]byte, 1) // far too small

	_, err := ReadPlane(src, PlaneRequest{Region: legacy.Region{Width: 8, Height: 8}}, dst)
	require.Error(t, err)

	var fe *legacy.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "read", fe.Op)
	assert.NotNil(t, fe.Err, "original cause must be preserved")
}

// bothPaletteReader exposes both palette depths so the precedence rule is
// observable.
type bothPaletteReader struct {
	legacy.Reader
}

func (b *bothPaletteReader) LookupTable16() [][]uint16 {
	return [][]uint16{make([]uint16, 65536), make([]uint16, 65536), make([]uint16, 65536)}
}
