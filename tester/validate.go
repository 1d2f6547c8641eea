package tester

import (
	"encoding/binary"
	"time"

	"github.com/malaterre/charls-image-test/anymap"
	"github.com/malaterre/charls-image-test/interleave"
)

// Outcome is the result of validating one decoded bitstream against its
// reference image.
type Outcome struct {
	OK         bool
	Reason     string
	DecodeTime time.Duration
}

// validate decodes the bitstream and compares it against the untransformed
// reference pixels. Size is checked before any value comparison: a size
// mismatch means frame metadata did not survive the round trip. Decoded
// planar output is regrouped to sample order first, so the ground truth is
// always the reference file layout. Lossless streams must match byte for
// byte; near-lossless streams must stay within the bound recovered from the
// stream header. A codec-reported decode error is an operational fault, not
// a validation outcome, and is returned to abort the run.
func (r *Runner) validate(encoded []byte, ref *anymap.Image, mode interleave.Mode) (Outcome, error) {
	start := time.Now()
	result, err := r.codec.Decode(encoded)
	decodeTime := time.Since(start)

	if err != nil {
		return Outcome{DecodeTime: decodeTime}, err
	}

	decoded := result.PixelData
	if len(decoded) != len(ref.Pixels) {
		r.puts("Pixel data size doesn't match")
		return Outcome{Reason: "size mismatch", DecodeTime: decodeTime}, nil
	}

	if mode == interleave.None && ref.Components == 3 {
		decoded, err = interleave.PlanarToTriplet(decoded, ref.Width, ref.Height, ref.BitsPerSample)
		if err != nil {
			return Outcome{DecodeTime: decodeTime}, err
		}
	}

	if result.NearLossless == 0 {
		for i := range ref.Pixels {
			if decoded[i] != ref.Pixels[i] {
				r.puts("Pixel data value doesn't match")
				return Outcome{Reason: "value mismatch", DecodeTime: decodeTime}, nil
			}
		}
		return Outcome{OK: true, DecodeTime: decodeTime}, nil
	}

	if !withinBound(decoded, ref.Pixels, ref.SampleSize(), result.NearLossless) {
		r.puts("Pixel data value exceeds near-lossless bound")
		return Outcome{Reason: "value mismatch", DecodeTime: decodeTime}, nil
	}
	return Outcome{OK: true, DecodeTime: decodeTime}, nil
}

// withinBound reports whether every decoded sample is within near of the
// reference sample. Samples are one byte, or two little-endian bytes when
// the bit depth exceeds 8.
func withinBound(decoded, reference []byte, sampleSize, near int) bool {
	if sampleSize == 1 {
		for i := range reference {
			if absDiff(int(decoded[i]), int(reference[i])) > near {
				return false
			}
		}
		return true
	}

	for i := 0; i+1 < len(reference); i += 2 {
		d := int(binary.LittleEndian.Uint16(decoded[i:]))
		s := int(binary.LittleEndian.Uint16(reference[i:]))
		if absDiff(d, s) > near {
			return false
		}
	}
	return true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
