// Package tester implements the round-trip conformance harness: it loads
// portable-anymap reference images, encodes each one through the codec under
// test in every interleave arrangement, decodes the result back and verifies
// the codec is lossless (or within the near-lossless bound), reporting
// compression ratio and timing along the way.
package tester

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/malaterre/charls-image-test/anymap"
	"github.com/malaterre/charls-image-test/codec"
	"github.com/malaterre/charls-image-test/interleave"
)

// Report holds the per-file, per-mode metrics printed after each run.
type Report struct {
	OriginalSize int
	EncodedSize  int
	Mode         interleave.Mode
	Ratio        float64
	EncodeTime   time.Duration
	DecodeTime   time.Duration
	Passed       bool
}

// Runner drives encode/decode cycles for one codec configuration.
type Runner struct {
	codec codec.Codec
	near  int
	out   io.Writer
}

// NewRunner creates a Runner for the given codec. near is the near-lossless
// bound passed to every encode (0 = lossless). Output defaults to stdout.
func NewRunner(c codec.Codec, near int, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{codec: c, near: near, out: out}
}

func (r *Runner) puts(s string) {
	fmt.Fprintln(r.out, s)
}

// loadReference reads the reference file and prepares the encoder input for
// the requested mode: planar targets regroup 3-component images into planes,
// everything else is encoded straight from the file layout.
func (r *Runner) loadReference(path string, mode interleave.Mode) (*anymap.Image, []byte, error) {
	img, err := anymap.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	source := img.Pixels
	if mode == interleave.None && img.Components == 3 {
		source, err = interleave.TripletToPlanar(img.Pixels, img.Width, img.Height, img.BitsPerSample)
		if err != nil {
			return nil, nil, err
		}
	}
	return img, source, nil
}

// outputPath derives the persisted bitstream name: the source stem plus the
// interleave mode label and the codec extension, alongside the source.
func outputPath(source string, mode interleave.Mode, ext string) string {
	stem := filepath.Base(source)
	if strings.HasSuffix(strings.ToLower(stem), ".gz") {
		stem = stem[:len(stem)-len(".gz")]
	}
	if e := filepath.Ext(stem); e != "" {
		stem = stem[:len(stem)-len(e)]
	}
	return filepath.Join(filepath.Dir(source), stem+"-"+mode.String()+ext)
}

// CheckFile runs one full encode, persist, decode, compare cycle for one
// reference file and one interleave mode. A validation mismatch yields
// (false, nil); operational faults (I/O, codec errors) are returned as
// errors and abort the whole run.
func (r *Runner) CheckFile(path string, mode interleave.Mode) (bool, error) {
	img, source, err := r.loadReference(path, mode)
	if err != nil {
		return false, err
	}

	params := codec.EncodeParams{
		Frame: codec.FrameInfo{
			Width:         img.Width,
			Height:        img.Height,
			BitsPerSample: img.BitsPerSample,
			Components:    img.Components,
		},
		Interleave:   mode,
		NearLossless: r.near,
	}

	start := time.Now()
	encoded, err := r.codec.Encode(source, params)
	encodeTime := time.Since(start)
	if err != nil {
		return false, fmt.Errorf("encode %s (%s): %w", path, mode, err)
	}

	dest := outputPath(path, mode, r.codec.FileExtension())
	if err := os.WriteFile(dest, encoded, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", dest, err)
	}

	outcome, err := r.validate(encoded, img, mode)
	if err != nil {
		return false, fmt.Errorf("decode %s (%s): %w", path, mode, err)
	}

	report := Report{
		OriginalSize: len(img.Pixels),
		EncodedSize:  len(encoded),
		Mode:         mode,
		Ratio:        float64(len(img.Pixels)) / float64(len(encoded)),
		EncodeTime:   encodeTime,
		DecodeTime:   outcome.DecodeTime,
		Passed:       outcome.OK,
	}
	r.report(report, img.Components == 3)

	return outcome.OK, nil
}

// CheckColorFile runs CheckFile for each interleave mode in fixed order,
// stopping at the first failing mode.
func (r *Runner) CheckColorFile(path string) (bool, error) {
	for _, mode := range interleave.Modes() {
		ok, err := r.CheckFile(path, mode)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (r *Runner) report(rep Report, color bool) {
	modeWidth := 4
	if color {
		modeWidth = 6
	}
	r.puts(fmt.Sprintf(
		" Info: original size = %d, encoded size = %d, interleave mode = %-*s, compression ratio = %.2f:1, encode time = %.4f ms, decode time = %.4f ms",
		rep.OriginalSize, rep.EncodedSize, modeWidth, rep.Mode,
		rep.Ratio,
		rep.EncodeTime.Seconds()*1000, rep.DecodeTime.Seconds()*1000))
}
