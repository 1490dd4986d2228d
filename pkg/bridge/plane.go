package bridge

import (
	"imgbridge/pkg/legacy"
	"imgbridge/pkg/meta"
)

// PlaneRequest addresses one rectangular region of one plane of one
// series.
type PlaneRequest struct {
	// Series selects the series the plane belongs to.
	Series int

	// Plane is the plane index within the series.
	Plane int

	// Region is the rectangle to read, in plane pixel coordinates.
	Region legacy.Region
}

// Plane is the result of a plane read: the caller's buffer, filled, plus
// the series' palette when the source has one.
type Plane struct {
	// Bytes is the caller-allocated destination buffer.
	Bytes []byte

	// ColorTable is the 8- or 16-bit palette of the series, nil when the
	// source exposes neither.
	ColorTable meta.ColorTable
}

// ReadPlane executes a plane read against src. It moves src's series
// cursor to the requested series before reading; the cursor stays there
// afterwards, so sequential requests against different series on one
// reader each re-set it for themselves. A read failure from the legacy
// layer is re-signaled as a FormatError with the cause preserved.
//
// When the source exposes an 8-bit palette the result carries it; failing
// that, a 16-bit palette if exposed; at most one of the two.
func ReadPlane(src legacy.Reader, req PlaneRequest, dst []byte) (*Plane, error) {
	src.SetSeries(req.Series)

	if err := src.ReadPlane(req.Plane, dst, req.Region); err != nil {
		return nil, &legacy.FormatError{Op: "read", Source: sourceName(src), Err: err}
	}

	p := &Plane{Bytes: dst}
	if lut := src.LookupTable8(); lut != nil {
		p.ColorTable = meta.ColorTable8(lut)
	} else if lut := src.LookupTable16(); lut != nil {
		p.ColorTable = meta.ColorTable16(lut)
	}
	return p, nil
}

func sourceName(src legacy.Reader) string {
	type sourced interface{ Source() string }
	if s, ok := src.(sourced); ok {
		return s.Source()
	}
	return ""
}
