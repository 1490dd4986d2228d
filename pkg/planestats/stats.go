// Package planestats summarizes decoded plane buffers. The host uses the
// summary to seed display scaling before a full histogram is available.
package planestats

import (
	"encoding/binary"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"imgbridge/pkg/legacy"
)

// Stats holds the sample statistics of one plane buffer.
type Stats struct {
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
	Samples int
}

// Summarize decodes data according to the pixel type and endianness and
// returns its sample statistics. The buffer length must be a whole number
// of samples.
func Summarize(data []byte, pt legacy.PixelType, littleEndian bool) (Stats, error) {
	bps := pt.BytesPerSample()
	if bps == 0 {
		return Stats{}, fmt.Errorf("planestats: unknown pixel type %d", pt)
	}
	if len(data)%bps != 0 {
		return Stats{}, fmt.Errorf("planestats: %d bytes is not a whole number of %d-byte samples", len(data), bps)
	}
	n := len(data) / bps
	if n == 0 {
		return Stats{}, fmt.Errorf("planestats: empty plane")
	}

	var order binary.ByteOrder = binary.BigEndian
	if littleEndian {
		order = binary.LittleEndian
	}

	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		samples[i] = decodeSample(data[i*bps:], pt, order)
	}

	return Stats{
		Min:     floats.Min(samples),
		Max:     floats.Max(samples),
		Mean:    stat.Mean(samples, nil),
		StdDev:  stat.StdDev(samples, nil),
		Samples: n,
	}, nil
}

func decodeSample(b []byte, pt legacy.PixelType, order binary.ByteOrder) float64 {
	switch pt {
	case legacy.Int8:
		return float64(int8(b[0]))
	case legacy.UInt8:
		return float64(b[0])
	case legacy.Int16:
		return float64(int16(order.Uint16(b)))
	case legacy.UInt16:
		return float64(order.Uint16(b))
	case legacy.Int32:
		return float64(int32(order.Uint32(b)))
	case legacy.UInt32:
		return float64(order.Uint32(b))
	case legacy.Float32:
		return float64(math.Float32frombits(order.Uint32(b)))
	case legacy.Float64:
		return math.Float64frombits(order.Uint64(b))
	}
	return 0
}
