// Command image-tester walks a directory of portable-anymap reference images
// and verifies that the selected codec round-trips every file under every
// interleave arrangement. It exits non-zero on the first failing file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/malaterre/charls-image-test/codec"
	"github.com/malaterre/charls-image-test/tester"

	_ "github.com/malaterre/charls-image-test/codec/jpeg2000"
	_ "github.com/malaterre/charls-image-test/codec/jpegls"
)

func main() {
	os.Exit(run())
}

func run() int {
	codecName := flag.String("codec", "JPEG-LS", "codec under test (registry name or transfer syntax UID)")
	near := flag.Int("near", 0, "near-lossless error bound (0 = lossless)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("usage: image-tester [-codec name] [-near bound] <directory-to-test>")
		return 1
	}

	c, err := codec.Get(*codecName)
	if err != nil {
		fmt.Printf("Unknown codec %q, available codecs:\n", *codecName)
		for _, known := range codec.List() {
			fmt.Printf("  %s (%s)\n", known.Name(), known.UID())
		}
		return 1
	}

	runner := tester.NewRunner(c, *near, os.Stdout)
	if err := runner.Run(flag.Arg(0)); err != nil {
		if !errors.Is(err, tester.ErrTestFailed) {
			fmt.Printf("Unexpected failure: %v\n", err)
		}
		return 1
	}
	return 0
}
