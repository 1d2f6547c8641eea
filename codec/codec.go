// Package codec defines the capability interface the round-trip harness uses
// to talk to the image codec under test. The harness never carries an entropy
// coder of its own: concrete implementations adapt published codec modules.
package codec

import (
	"github.com/malaterre/charls-image-test/interleave"
)

// FrameInfo describes the uncompressed frame handed to an encoder.
type FrameInfo struct {
	Width         int // Image width in pixels
	Height        int // Image height in pixels
	BitsPerSample int // Bits per sample (2-16)
	Components    int // Number of color components (1=grayscale, 3=RGB)
}

// SampleSize returns the in-memory size of one sample in bytes.
func (f FrameInfo) SampleSize() int {
	if f.BitsPerSample > 8 {
		return 2
	}
	return 1
}

// BufferSize returns the expected length of the raw pixel buffer.
func (f FrameInfo) BufferSize() int {
	return f.Width * f.Height * f.Components * f.SampleSize()
}

// EncodeParams contains the parameters for one encode operation.
type EncodeParams struct {
	Frame FrameInfo

	// Interleave records the layout of the source buffer. The caller is
	// responsible for supplying the buffer in this arrangement; planar
	// sources must be regrouped with interleave.TripletToPlanar first.
	Interleave interleave.Mode

	// NearLossless is the maximum allowed per-sample reconstruction error.
	// 0 requests lossless operation.
	NearLossless int
}

// Validate checks the parameters against the frame constraints shared by all
// codecs; adapters may impose further restrictions.
func (p EncodeParams) Validate() error {
	if p.Frame.Width <= 0 || p.Frame.Height <= 0 {
		return ErrInvalidDimensions
	}
	if p.Frame.Components != 1 && p.Frame.Components != 3 {
		return ErrInvalidComponents
	}
	if p.Frame.BitsPerSample < 2 || p.Frame.BitsPerSample > 16 {
		return ErrInvalidBitDepth
	}
	if p.NearLossless < 0 || p.NearLossless > 255 {
		return ErrInvalidNear
	}
	switch p.Interleave {
	case interleave.None, interleave.Line, interleave.Sample:
	default:
		return ErrInvalidParameter
	}
	return nil
}

// DecodeResult contains the result of decoding one bitstream.
type DecodeResult struct {
	PixelData []byte    // Decoded pixel data, in the layout the encoder consumed
	Frame     FrameInfo // Frame metadata recovered from the stream header

	// NearLossless is the error bound recovered from the stream header;
	// 0 means the stream was encoded losslessly.
	NearLossless int
}

// Codec is the capability interface for one image codec under test.
type Codec interface {
	// Encode compresses src, which must match params.Frame.BufferSize()
	// and be laid out according to params.Interleave. The returned slice
	// length is the logical bitstream size.
	Encode(src []byte, params EncodeParams) ([]byte, error)

	// Decode decompresses a bitstream produced by Encode.
	Decode(data []byte) (*DecodeResult, error)

	// UID returns the unique identifier (typically DICOM Transfer Syntax UID)
	UID() string

	// Name returns a human-readable name
	Name() string

	// FileExtension returns the extension for persisted bitstreams,
	// including the leading dot.
	FileExtension() string
}
