package tester

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/malaterre/charls-image-test/anymap"
	"github.com/malaterre/charls-image-test/interleave"
)

// ErrTestFailed is returned by Run when a reference file fails validation.
// It marks a codec conformance failure rather than an operational fault.
var ErrTestFailed = errors.New("conformance test failed")

// Run walks root recursively and tests every reference file it finds:
// grayscale files run planar mode only, color files run all three interleave
// modes. The walk stops at the first failing file or operational fault.
func (r *Runner) Run(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		components := anymap.FormatComponents(d.Name())
		if components == 0 {
			return nil
		}

		r.puts(fmt.Sprintf("Checking file: %s", path))

		var ok bool
		if components == 1 {
			ok, err = r.CheckFile(path, interleave.None)
		} else {
			ok, err = r.CheckColorFile(path)
		}
		if err != nil {
			return err
		}

		if ok {
			r.puts(" Status: Passed")
			return nil
		}
		r.puts(" Status: Failed")
		return fmt.Errorf("%w: %s", ErrTestFailed, path)
	})
}
