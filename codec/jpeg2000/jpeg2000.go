// Package jpeg2000 adapts github.com/mrjoshuak/go-jpeg2000 (reversible 5-3
// wavelet path) to the harness codec interface, proving the harness is not
// tied to one codec.
//
// Restrictions: only 8-bit frames are accepted. The upstream 5-3 path is
// bit-exact at 8 bits but reconstructs 16-bit gradients with off-by-one
// sample errors, and rescales other precisions outright, so deeper frames
// cannot honor the lossless contract. JPEG 2000 has no NEAR parameter; a
// non-zero near-lossless bound is rejected.
package jpeg2000

import (
	"bytes"
	"fmt"
	"image"
	"math/bits"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	j2k "github.com/mrjoshuak/go-jpeg2000"

	"github.com/malaterre/charls-image-test/codec"
)

// Codec implements codec.Codec backed by the go-jpeg2000 lossless encoder.
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// New creates a JPEG 2000 codec adapter.
func New() *Codec {
	return &Codec{}
}

// Encode compresses src to a lossless JPEG 2000 codestream.
func (c *Codec) Encode(src []byte, params codec.EncodeParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.NearLossless != 0 {
		return nil, fmt.Errorf("%w: JPEG 2000 adapter is lossless only", codec.ErrInvalidNear)
	}
	if params.Frame.BitsPerSample != 8 {
		return nil, fmt.Errorf("%w: JPEG 2000 adapter supports 8 bits per sample",
			codec.ErrInvalidBitDepth)
	}
	if len(src) != params.Frame.BufferSize() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			codec.ErrBufferSize, len(src), params.Frame.BufferSize())
	}

	img := bufferToImage(src, params.Frame)

	opts := j2k.DefaultOptions()
	opts.Format = j2k.FormatJP2
	opts.Lossless = true
	opts.NumResolutions = resolutionsFor(params.Frame.Width, params.Frame.Height)

	var buf bytes.Buffer
	if err := j2k.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("jpeg2000: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses a JPEG 2000 codestream back to a raw pixel buffer in
// the layout the encoder consumed.
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	img, err := j2k.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("jpeg2000: decode: %w", err)
	}

	pixels, frame, err := imageToBuffer(img)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:    pixels,
		Frame:        frame,
		NearLossless: 0,
	}, nil
}

// UID returns the DICOM Transfer Syntax UID for JPEG 2000 Lossless Only
func (c *Codec) UID() string {
	return transfer.JPEG2000Lossless.UID().UID()
}

// Name returns a human-readable name for this codec
func (c *Codec) Name() string {
	return "JPEG 2000"
}

// FileExtension returns the conventional extension for JP2 files.
func (c *Codec) FileExtension() string {
	return ".jp2"
}

// resolutionsFor caps the decomposition depth so the smallest resolution
// level never drops below one pixel on small test images.
func resolutionsFor(width, height int) int {
	min := width
	if height < min {
		min = height
	}
	n := bits.Len(uint(min))
	if n > 6 {
		n = 6
	}
	if n < 1 {
		n = 1
	}
	return n
}

// bufferToImage wraps a raw sample buffer in the std image type matching the
// frame. The buffer sample order (triplet or plane grouping) is preserved
// pixel-for-pixel, so whatever layout the caller chose survives the round
// trip unchanged.
func bufferToImage(src []byte, frame codec.FrameInfo) image.Image {
	w, h := frame.Width, frame.Height
	rect := image.Rect(0, 0, w, h)

	if frame.Components == 1 {
		img := image.NewGray(rect)
		copy(img.Pix, src)
		return img
	}

	img := image.NewRGBA(rect)
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = src[i*3+0]
		img.Pix[i*4+1] = src[i*3+1]
		img.Pix[i*4+2] = src[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// imageToBuffer converts a decoded std image back to the raw sample buffer
// and its frame metadata.
func imageToBuffer(m image.Image) ([]byte, codec.FrameInfo, error) {
	bounds := m.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch img := m.(type) {
	case *image.Gray:
		frame := codec.FrameInfo{Width: w, Height: h, BitsPerSample: 8, Components: 1}
		pixels := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(pixels[y*w:], img.Pix[y*img.Stride:y*img.Stride+w])
		}
		return pixels, frame, nil

	case *image.RGBA:
		frame := codec.FrameInfo{Width: w, Height: h, BitsPerSample: 8, Components: 3}
		pixels := make([]byte, w*h*3)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*img.Stride + x*4
				o := (y*w + x) * 3
				pixels[o+0] = img.Pix[i+0]
				pixels[o+1] = img.Pix[i+1]
				pixels[o+2] = img.Pix[i+2]
			}
		}
		return pixels, frame, nil

	default:
		return nil, codec.FrameInfo{}, fmt.Errorf("jpeg2000: unexpected decoded image type %T", m)
	}
}

func init() {
	codec.Register(New())
}
