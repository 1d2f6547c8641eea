// Package anymap reads and writes binary portable-anymap reference images
// (P5 grayscale / P6 color). These are the ground-truth inputs of the
// round-trip harness: the raster is kept as a flat sample-interleaved byte
// buffer, with 16-bit samples stored little-endian in memory (anymap files
// store them big-endian on disk).
//
// Reference corpora are often distributed gzip-compressed, so files ending
// in .gz are decompressed transparently.
package anymap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrFormat is returned when a file is not a binary P5 or P6 anymap.
var ErrFormat = errors.New("anymap: unsupported format")

// maxRasterBytes bounds the raster allocation so a malformed header with
// huge dimensions fails with ErrFormat instead of exhausting memory.
const maxRasterBytes = 1 << 30

// Image is a decoded reference image. The pixel buffer always satisfies
// len(Pixels) == Width*Height*Components*bytesPerSample, where samples
// occupy one byte up to 8 bits per sample and two bytes above.
type Image struct {
	Width         int
	Height        int
	BitsPerSample int
	Components    int
	Pixels        []byte
}

// SampleSize returns the in-memory size of one sample in bytes.
func (img *Image) SampleSize() int {
	if img.BitsPerSample > 8 {
		return 2
	}
	return 1
}

// FormatComponents reports the component count implied by a file name:
// 1 for .pgm, 3 for .ppm (optionally .gz compressed), 0 for anything else.
func FormatComponents(name string) int {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(name) {
	case ".pgm":
		return 1
	case ".ppm":
		return 3
	}
	return 0
}

// ReadFile loads a P5 or P6 reference file, decompressing .gz transparently.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("anymap: open %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	img, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("anymap: read %s: %w", path, err)
	}
	return img, nil
}

// Read decodes a binary anymap from r.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}

	var components int
	switch magic {
	case "P5":
		components = 1
	case "P6":
		components = 3
	default:
		return nil, fmt.Errorf("%w: magic %q", ErrFormat, magic)
	}

	width, err := readNumber(br)
	if err != nil {
		return nil, err
	}
	height, err := readNumber(br)
	if err != nil {
		return nil, err
	}
	maxVal, err := readNumber(br)
	if err != nil {
		return nil, err
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrFormat, width, height)
	}
	if maxVal <= 0 || maxVal > 65535 {
		return nil, fmt.Errorf("%w: maxval %d", ErrFormat, maxVal)
	}

	bitsPerSample := bits.Len(uint(maxVal))
	sampleSize := 1
	if bitsPerSample > 8 {
		sampleSize = 2
	}

	rasterSize := int64(width) * int64(height) * int64(components) * int64(sampleSize)
	if rasterSize > maxRasterBytes {
		return nil, fmt.Errorf("%w: raster size %d exceeds limit", ErrFormat, rasterSize)
	}

	pixels := make([]byte, rasterSize)
	if _, err := io.ReadFull(br, pixels); err != nil {
		return nil, fmt.Errorf("anymap: raster: %w", err)
	}

	// Anymap stores 16-bit samples big-endian; the codecs expect
	// little-endian, so swap once here.
	if sampleSize == 2 {
		for i := 0; i < len(pixels); i += 2 {
			pixels[i], pixels[i+1] = pixels[i+1], pixels[i]
		}
	}

	return &Image{
		Width:         width,
		Height:        height,
		BitsPerSample: bitsPerSample,
		Components:    components,
		Pixels:        pixels,
	}, nil
}

// WriteFile stores img as a binary P5 or P6 file.
func WriteFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Write(w, img); err != nil {
		return fmt.Errorf("anymap: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// Write encodes img as a binary anymap on w.
func Write(w io.Writer, img *Image) error {
	var magic string
	switch img.Components {
	case 1:
		magic = "P5"
	case 3:
		magic = "P6"
	default:
		return fmt.Errorf("%w: %d components", ErrFormat, img.Components)
	}
	if img.BitsPerSample < 1 || img.BitsPerSample > 16 {
		return fmt.Errorf("%w: %d bits per sample", ErrFormat, img.BitsPerSample)
	}

	maxVal := 1<<uint(img.BitsPerSample) - 1
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n%d\n", magic, img.Width, img.Height, maxVal); err != nil {
		return err
	}

	if img.SampleSize() == 1 {
		_, err := w.Write(img.Pixels)
		return err
	}

	// Swap little-endian memory order back to big-endian file order.
	raster := make([]byte, len(img.Pixels))
	for i := 0; i < len(raster); i += 2 {
		raster[i] = img.Pixels[i+1]
		raster[i+1] = img.Pixels[i]
	}
	_, err := w.Write(raster)
	return err
}

// readToken skips whitespace and # comments, then reads one token.
func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}

		switch {
		case b == '#' && sb.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func readNumber(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: header token %q", ErrFormat, tok)
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, fmt.Errorf("%w: header token %q", ErrFormat, tok)
		}
	}
	return n, nil
}
