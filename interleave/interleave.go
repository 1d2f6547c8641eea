// Package interleave defines the pixel interleave arrangements understood by
// the round-trip harness and the buffer transforms between them.
//
// Reference anymap files always store multi-component images
// sample-interleaved (R0 G0 B0 R1 G1 B1 ...). An encoder configured for
// planar operation expects the components regrouped into contiguous planes
// (R0..Rn G0..Gn B0..Bn), so the harness transforms the buffer before
// encoding and maps decoded planar output back before comparison.
package interleave

import "fmt"

// Mode identifies how multi-component pixel data is arranged for the codec.
type Mode int

const (
	// None stores each component as a separate contiguous plane.
	None Mode = iota
	// Line interleaves components per scanline.
	Line
	// Sample interleaves components per pixel.
	Sample
)

// String returns the display name used in reports and output filenames.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Line:
		return "line"
	case Sample:
		return "sample"
	default:
		return "unknown"
	}
}

// Modes returns all interleave modes in the order color images are tested.
func Modes() []Mode {
	return []Mode{None, Line, Sample}
}

// TripletToPlanar regroups a sample-interleaved 3-component buffer into three
// contiguous planes. The result is a new buffer of the same length; the input
// is not modified. Samples are 1 byte for bitsPerSample <= 8, otherwise
// 2 bytes (little-endian, moved as opaque byte pairs).
func TripletToPlanar(buf []byte, width, height, bitsPerSample int) ([]byte, error) {
	if err := checkTripletSize(buf, width, height, bitsPerSample); err != nil {
		return nil, err
	}

	samplesPerPlane := width * height
	work := make([]byte, len(buf))

	if bitsPerSample > 8 {
		// 2-byte samples: move each sample as a byte pair.
		for i := 0; i < samplesPerPlane; i++ {
			src := i * 3 * 2
			copy(work[i*2:], buf[src:src+2])
			copy(work[(i+samplesPerPlane)*2:], buf[src+2:src+4])
			copy(work[(i+2*samplesPerPlane)*2:], buf[src+4:src+6])
		}
		return work, nil
	}

	for i := 0; i < samplesPerPlane; i++ {
		work[i] = buf[i*3+0]
		work[i+samplesPerPlane] = buf[i*3+1]
		work[i+2*samplesPerPlane] = buf[i*3+2]
	}
	return work, nil
}

// PlanarToTriplet is the inverse of TripletToPlanar: it regroups three
// contiguous component planes back into sample-interleaved order.
func PlanarToTriplet(buf []byte, width, height, bitsPerSample int) ([]byte, error) {
	if err := checkTripletSize(buf, width, height, bitsPerSample); err != nil {
		return nil, err
	}

	samplesPerPlane := width * height
	work := make([]byte, len(buf))

	if bitsPerSample > 8 {
		for i := 0; i < samplesPerPlane; i++ {
			dst := i * 3 * 2
			copy(work[dst:], buf[i*2:i*2+2])
			copy(work[dst+2:], buf[(i+samplesPerPlane)*2:(i+samplesPerPlane)*2+2])
			copy(work[dst+4:], buf[(i+2*samplesPerPlane)*2:(i+2*samplesPerPlane)*2+2])
		}
		return work, nil
	}

	for i := 0; i < samplesPerPlane; i++ {
		work[i*3+0] = buf[i]
		work[i*3+1] = buf[i+samplesPerPlane]
		work[i*3+2] = buf[i+2*samplesPerPlane]
	}
	return work, nil
}

func checkTripletSize(buf []byte, width, height, bitsPerSample int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("interleave: invalid dimensions %dx%d", width, height)
	}
	if bitsPerSample < 1 || bitsPerSample > 16 {
		return fmt.Errorf("interleave: invalid bits per sample %d", bitsPerSample)
	}

	sampleSize := 1
	if bitsPerSample > 8 {
		sampleSize = 2
	}
	want := width * height * 3 * sampleSize
	if len(buf) != want {
		return fmt.Errorf("interleave: buffer length %d, want %d for %dx%d %d-bit triplets",
			len(buf), want, width, height, bitsPerSample)
	}
	return nil
}
