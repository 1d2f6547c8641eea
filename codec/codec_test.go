package codec

import (
	"errors"
	"testing"

	"github.com/malaterre/charls-image-test/interleave"
)

// fakeCodec is a minimal Codec implementation for registry tests.
type fakeCodec struct {
	name string
	uid  string
}

func (f *fakeCodec) Encode(src []byte, params EncodeParams) ([]byte, error) {
	return append([]byte(nil), src...), nil
}

func (f *fakeCodec) Decode(data []byte) (*DecodeResult, error) {
	return &DecodeResult{PixelData: append([]byte(nil), data...)}, nil
}

func (f *fakeCodec) UID() string           { return f.uid }
func (f *fakeCodec) Name() string          { return f.name }
func (f *fakeCodec) FileExtension() string { return ".fake" }

func TestRegistryGetByNameAndUID(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	c := &fakeCodec{name: "Fake", uid: "1.2.3.4"}
	r.Register(c)

	got, err := r.Get("Fake")
	if err != nil {
		t.Fatalf("Get by name failed: %v", err)
	}
	if got != Codec(c) {
		t.Errorf("Get by name returned wrong codec")
	}

	got, err = r.Get("1.2.3.4")
	if err != nil {
		t.Fatalf("Get by UID failed: %v", err)
	}
	if got != Codec(c) {
		t.Errorf("Get by UID returned wrong codec")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	if _, err := r.Get("missing"); !errors.Is(err, ErrCodecNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrCodecNotFound", err)
	}
}

func TestRegistryListDeduplicates(t *testing.T) {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register(&fakeCodec{name: "B", uid: "2"})
	r.Register(&fakeCodec{name: "A", uid: "1"})

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("List returned %d codecs, want 2", len(list))
	}
	if list[0].Name() != "A" || list[1].Name() != "B" {
		t.Errorf("List not sorted by name: %s, %s", list[0].Name(), list[1].Name())
	}
}

func TestFrameInfoBufferSize(t *testing.T) {
	cases := []struct {
		frame FrameInfo
		want  int
	}{
		{FrameInfo{Width: 4, Height: 2, BitsPerSample: 8, Components: 1}, 8},
		{FrameInfo{Width: 4, Height: 2, BitsPerSample: 8, Components: 3}, 24},
		{FrameInfo{Width: 4, Height: 2, BitsPerSample: 12, Components: 3}, 48},
		{FrameInfo{Width: 1, Height: 1, BitsPerSample: 16, Components: 1}, 2},
	}

	for _, c := range cases {
		if got := c.frame.BufferSize(); got != c.want {
			t.Errorf("BufferSize(%+v) = %d, want %d", c.frame, got, c.want)
		}
	}
}

func TestEncodeParamsValidate(t *testing.T) {
	valid := EncodeParams{
		Frame:      FrameInfo{Width: 4, Height: 4, BitsPerSample: 8, Components: 3},
		Interleave: interleave.Sample,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate rejected valid params: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*EncodeParams)
		want   error
	}{
		{"zero width", func(p *EncodeParams) { p.Frame.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(p *EncodeParams) { p.Frame.Height = -1 }, ErrInvalidDimensions},
		{"two components", func(p *EncodeParams) { p.Frame.Components = 2 }, ErrInvalidComponents},
		{"bit depth 1", func(p *EncodeParams) { p.Frame.BitsPerSample = 1 }, ErrInvalidBitDepth},
		{"bit depth 17", func(p *EncodeParams) { p.Frame.BitsPerSample = 17 }, ErrInvalidBitDepth},
		{"negative near", func(p *EncodeParams) { p.NearLossless = -1 }, ErrInvalidNear},
		{"near too large", func(p *EncodeParams) { p.NearLossless = 256 }, ErrInvalidNear},
		{"bad interleave", func(p *EncodeParams) { p.Interleave = interleave.Mode(9) }, ErrInvalidParameter},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := valid
			c.mutate(&p)
			if err := p.Validate(); !errors.Is(err, c.want) {
				t.Errorf("Validate() error = %v, want %v", err, c.want)
			}
		})
	}
}
