// Package jpegls adapts the JPEG-LS engine from
// github.com/cocosip/go-dicom-codec to the harness codec interface.
//
// The nearlossless package implements the full ITU-T T.87 coder: with
// NEAR=0 it is exactly lossless, so one engine serves both modes and the
// decoder always recovers the bound from the SOS header.
package jpegls

import (
	"fmt"

	"github.com/cocosip/go-dicom-codec/jpegls/nearlossless"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"

	"github.com/malaterre/charls-image-test/codec"
)

// Codec implements codec.Codec backed by the go-dicom-codec JPEG-LS engine.
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// New creates a JPEG-LS codec adapter.
func New() *Codec {
	return &Codec{}
}

// Encode compresses src to a JPEG-LS bitstream. The engine codes the buffer
// sample stream as given; params.Interleave records the layout the caller
// chose, and the decoder reproduces that layout exactly.
func (c *Codec) Encode(src []byte, params codec.EncodeParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(src) != params.Frame.BufferSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			codec.ErrBufferSize, len(src), params.Frame.BufferSize())
	}

	encoded, err := nearlossless.Encode(src,
		params.Frame.Width, params.Frame.Height,
		params.Frame.Components, params.Frame.BitsPerSample,
		params.NearLossless)
	if err != nil {
		return nil, fmt.Errorf("jpegls: encode: %w", err)
	}
	return encoded, nil
}

// Decode decompresses a JPEG-LS bitstream. The NEAR value is read back from
// the stream header, so the caller can tell lossless from near-lossless
// output without out-of-band state.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	pixels, width, height, components, bitDepth, near, err := nearlossless.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("jpegls: decode: %w", err)
	}

	return &codec.DecodeResult{
		PixelData: pixels,
		Frame: codec.FrameInfo{
			Width:         width,
			Height:        height,
			BitsPerSample: bitDepth,
			Components:    components,
		},
		NearLossless: near,
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for JPEG-LS Lossless
func (c *Codec) UID() string {
	return transfer.JPEGLSLossless.UID().UID()
}

// Name returns a human-readable name for this codec
func (c *Codec) Name() string {
	return "JPEG-LS"
}

// FileExtension returns the conventional extension for JPEG-LS bitstreams.
func (c *Codec) FileExtension() string {
	return ".jls"
}

func init() {
	codec.Register(New())
}
