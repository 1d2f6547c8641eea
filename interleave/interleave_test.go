package interleave

import (
	"bytes"
	"testing"
)

// TestModeString verifies the display names used in reports and filenames.
func TestModeString(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{None, "none"},
		{Line, "line"},
		{Sample, "sample"},
		{Mode(42), "unknown"},
	}

	for _, c := range cases {
		if got := c.mode.String(); got != c.want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(c.mode), got, c.want)
		}
	}
}

func TestModesOrder(t *testing.T) {
	modes := Modes()
	want := []Mode{None, Line, Sample}
	if len(modes) != len(want) {
		t.Fatalf("Modes() returned %d modes, want %d", len(modes), len(want))
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("Modes()[%d] = %v, want %v", i, modes[i], want[i])
		}
	}
}

// TestTripletToPlanar8Bit checks the 4x2 RGB example: interleaved
// R0 G0 B0 ... R7 G7 B7 must become R0..R7 G0..G7 B0..B7.
func TestTripletToPlanar8Bit(t *testing.T) {
	width, height := 4, 2
	interleaved := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		interleaved[i*3+0] = byte(0x10 + i) // R
		interleaved[i*3+1] = byte(0x40 + i) // G
		interleaved[i*3+2] = byte(0x80 + i) // B
	}

	planar, err := TripletToPlanar(interleaved, width, height, 8)
	if err != nil {
		t.Fatalf("TripletToPlanar failed: %v", err)
	}

	want := []byte{
		0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17,
		0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47,
		0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
	}
	if !bytes.Equal(planar, want) {
		t.Errorf("planar buffer mismatch:\ngot  %v\nwant %v", planar, want)
	}
}

// TestTripletToPlanar16Bit checks that 2-byte samples move as whole pairs.
func TestTripletToPlanar16Bit(t *testing.T) {
	width, height := 2, 1
	// Two pixels, samples written little-endian: R0=0x0102, G0=0x0304,
	// B0=0x0506, R1=0x1112, G1=0x1314, B1=0x1516.
	interleaved := []byte{
		0x02, 0x01, 0x04, 0x03, 0x06, 0x05,
		0x12, 0x11, 0x14, 0x13, 0x16, 0x15,
	}

	planar, err := TripletToPlanar(interleaved, width, height, 12)
	if err != nil {
		t.Fatalf("TripletToPlanar failed: %v", err)
	}

	want := []byte{
		0x02, 0x01, 0x12, 0x11, // R plane
		0x04, 0x03, 0x14, 0x13, // G plane
		0x06, 0x05, 0x16, 0x15, // B plane
	}
	if !bytes.Equal(planar, want) {
		t.Errorf("planar buffer mismatch:\ngot  %v\nwant %v", planar, want)
	}
}

// TestTransformRoundTrip verifies the transform is a bijection: planarizing
// then regrouping reproduces the original buffer for 8- and 16-bit data.
func TestTransformRoundTrip(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		bitsPerSample int
	}{
		{"3x3 8-bit", 3, 3, 8},
		{"16x9 8-bit", 16, 9, 8},
		{"1x1 8-bit", 1, 1, 8},
		{"5x4 12-bit", 5, 4, 12},
		{"7x2 16-bit", 7, 2, 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sampleSize := 1
			if c.bitsPerSample > 8 {
				sampleSize = 2
			}
			original := make([]byte, c.width*c.height*3*sampleSize)
			for i := range original {
				original[i] = byte(i*7 + 3)
			}

			planar, err := TripletToPlanar(original, c.width, c.height, c.bitsPerSample)
			if err != nil {
				t.Fatalf("TripletToPlanar failed: %v", err)
			}
			if len(planar) != len(original) {
				t.Fatalf("transform changed buffer length: got %d, want %d", len(planar), len(original))
			}

			back, err := PlanarToTriplet(planar, c.width, c.height, c.bitsPerSample)
			if err != nil {
				t.Fatalf("PlanarToTriplet failed: %v", err)
			}
			if !bytes.Equal(back, original) {
				t.Errorf("round trip did not reproduce the original buffer")
			}
		})
	}
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	original := []byte{1, 2, 3, 4, 5, 6}
	saved := append([]byte(nil), original...)

	if _, err := TripletToPlanar(original, 2, 1, 8); err != nil {
		t.Fatalf("TripletToPlanar failed: %v", err)
	}
	if !bytes.Equal(original, saved) {
		t.Errorf("TripletToPlanar mutated its input")
	}
}

func TestTransformRejectsBadBuffers(t *testing.T) {
	cases := []struct {
		name          string
		buf           []byte
		width, height int
		bitsPerSample int
	}{
		{"short buffer", make([]byte, 5), 2, 1, 8},
		{"long buffer", make([]byte, 7), 2, 1, 8},
		{"8-bit size for 16-bit depth", make([]byte, 6), 2, 1, 16},
		{"zero width", nil, 0, 1, 8},
		{"zero height", nil, 2, 0, 8},
		{"bad bit depth", make([]byte, 6), 2, 1, 17},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := TripletToPlanar(c.buf, c.width, c.height, c.bitsPerSample); err == nil {
				t.Errorf("TripletToPlanar accepted invalid input")
			}
			if _, err := PlanarToTriplet(c.buf, c.width, c.height, c.bitsPerSample); err == nil {
				t.Errorf("PlanarToTriplet accepted invalid input")
			}
		})
	}
}
