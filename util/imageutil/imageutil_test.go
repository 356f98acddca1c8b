package imageutil

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPixelFormat(t *testing.T) {
	c := color.NRGBA{1, 2, 3, 4}
	tests := []struct {
		pf  PixelFormat
		v   uint32
		pix []uint8
	}{
		{FormatBGRA, 0x04010203, []uint8{3, 2, 1, 4}},
		{FormatRGBA, 0x04030201, []uint8{1, 2, 3, 4}},
		{FormatBGR24, 0x010203, []uint8{3, 2, 1}},
	}
	for _, tt := range tests {
		if v := tt.pf.Pack(c); v != tt.v {
			t.Fatalf("%x", v)
		}
		s := NewSurface(1, 1, tt.pf)
		s.SetNRGBA(0, 0, c)
		if diff := cmp.Diff(tt.pix, s.Pix); diff != "" {
			t.Fatal(diff)
		}
		c2 := s.NRGBAAt(0, 0)
		if tt.pf.AMask == 0 {
			if c2 != (color.NRGBA{1, 2, 3, 0xff}) {
				t.Fatal(c2)
			}
			continue
		}
		if c2 != c {
			t.Fatal(c2)
		}
	}
}

func TestSurfaceRGBALayout(t *testing.T) {
	// same bytes as image.RGBA
	r := image.Rect(0, 0, 5, 3)
	img := image.NewRGBA(r)
	s, err := NewSurfaceFromBuffer(img.Pix, 5, 3, img.Stride, FormatRGBA)
	if err != nil {
		t.Fatal(err)
	}
	var dst draw.Image = s
	c := color.NRGBA{10, 20, 30, 255}
	dst.Set(2, 1, c)
	if c2 := img.RGBAAt(2, 1); c2 != (color.RGBA{10, 20, 30, 255}) {
		t.Fatal(c2)
	}
	// out of bounds
	dst.Set(5, 0, c)
	if c2 := s.At(5, 0); c2 != (color.NRGBA{}) {
		t.Fatal(c2)
	}
}

func TestSurfaceFromBufferErrors(t *testing.T) {
	if _, err := NewSurfaceFromBuffer(make([]uint8, 10), 2, 2, 8, FormatBGRA); err == nil {
		t.Fatal("expecting error")
	}
	if _, err := NewSurfaceFromBuffer(make([]uint8, 100), 4, 2, 8, FormatBGRA); err == nil {
		t.Fatal("expecting error")
	}
	// padded rows
	s, err := NewSurfaceFromBuffer(make([]uint8, 24), 2, 2, 12, FormatBGRA)
	if err != nil {
		t.Fatal(err)
	}
	s.SetNRGBA(1, 1, color.NRGBA{A: 7})
	if s.Pix[12+4+3] != 7 {
		t.Fatal(s.Pix)
	}

	// resized buffer keeps the format
	if err := s.Reset(make([]uint8, 3*4*2), 3, 2, 12); err != nil {
		t.Fatal(err)
	}
	if s.Width != 3 || s.Height != 2 || s.Format != FormatBGRA {
		t.Fatal(s.Width, s.Height)
	}
	if err := s.Reset(make([]uint8, 4), 3, 2, 12); err == nil {
		t.Fatal("expecting error")
	}
	if s.Width != 3 {
		t.Fatal(s.Width)
	}
}

//----------

func TestFillRectOpaque(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 4, 4))
	c := color.NRGBA{200, 100, 50, 0xff}
	FillRect(s, image.Rect(1, 1, 10, 3), s.Bounds(), c)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			in := x >= 1 && y >= 1 && y < 3
			c2 := s.NRGBAAt(x, y)
			if in && c2 != c {
				t.Fatal(x, y, c2)
			}
			if !in && c2 != (color.NRGBA{}) {
				t.Fatal(x, y, c2)
			}
		}
	}
}

func TestFillRectTransparent(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 4, 4))
	for i := range s.Pix {
		s.Pix[i] = uint8(i)
	}
	pix := append([]uint8(nil), s.Pix...)
	FillRect(s, s.Bounds(), s.Bounds(), color.NRGBA{255, 255, 255, 0})
	if diff := cmp.Diff(pix, s.Pix); diff != "" {
		t.Fatal(diff)
	}
}

func TestFillRectClip(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 4, 4))
	pix := append([]uint8(nil), s.Pix...)
	c := color.NRGBA{255, 255, 255, 255}
	FillRect(s, image.Rect(0, 0, 2, 2), image.Rect(2, 2, 4, 4), c)
	FillRect(s, image.Rect(-5, -5, -1, -1), s.Bounds(), c)
	if diff := cmp.Diff(pix, s.Pix); diff != "" {
		t.Fatal(diff)
	}
}

func TestFillRectBlend(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 2, 1))
	s.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0x80})
	s.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 0x10})
	FillRect(s, s.Bounds(), s.Bounds(), color.NRGBA{255, 0, 255, 128})

	c1 := s.NRGBAAt(0, 0)
	if c1 != (color.NRGBA{127, 0, 127, 0x80}) {
		t.Fatal(c1)
	}
	c2 := s.NRGBAAt(1, 0)
	if c2 != (color.NRGBA{254, 126, 254, 0x10}) {
		t.Fatal(c2)
	}
}

//----------

func TestBlendCoverage(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		s.SetNRGBA(x, 0, color.NRGBA{0, 0, 255, 0x33})
	}
	red := color.NRGBA{255, 0, 0, 255}
	BlendCoverage(s, 0, 0, red, [3]uint8{255, 255, 255})
	BlendCoverage(s, 1, 0, red, [3]uint8{0, 0, 0})
	BlendCoverage(s, 2, 0, red, [3]uint8{128, 0, 255})

	want := []color.NRGBA{
		{255, 0, 0, 0x33},
		{0, 0, 255, 0x33},
		{128, 0, 0, 0x33},
	}
	for x, w := range want {
		if c := s.NRGBAAt(x, 0); c != w {
			t.Fatalf("%v: %v", x, c)
		}
	}
}

func TestBlendCoverageAlpha(t *testing.T) {
	s := NewBGRA(image.Rect(0, 0, 1, 1))
	s.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	// full coverage with half alpha: 255*255*128/65025 rounded
	BlendCoverage(s, 0, 0, color.NRGBA{255, 255, 255, 128}, [3]uint8{255, 255, 255})
	if c := s.NRGBAAt(0, 0); c != (color.NRGBA{128, 128, 128, 255}) {
		t.Fatal(c)
	}
}

//----------

func TestParseColor(t *testing.T) {
	tests := []struct {
		s string
		c color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 255}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
		{"Red", color.NRGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.s)
		if err != nil {
			t.Fatal(err)
		}
		if c != tt.c {
			t.Fatalf("%v: %v", tt.s, c)
		}
	}
	for _, s := range []string{"#12", "#gggggg", "nocolor"} {
		if _, err := ParseColor(s); err == nil {
			t.Fatalf("%v: expecting error", s)
		}
	}

	var cf ColorFlag
	if err := cf.Set("#10203040"); err != nil {
		t.Fatal(err)
	}
	if s := cf.String(); s != "#10203040" {
		t.Fatal(s)
	}
}

//----------

func BenchmarkFillRectOpaque(b *testing.B) {
	s := NewBGRA(image.Rect(0, 0, 400, 400))
	c := color.NRGBA{255, 255, 255, 255}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FillRect(s, s.Bounds(), s.Bounds(), c)
	}
}

func BenchmarkFillRectBlend(b *testing.B) {
	s := NewBGRA(image.Rect(0, 0, 400, 400))
	c := color.NRGBA{255, 255, 255, 100}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FillRect(s, s.Bounds(), s.Bounds(), c)
	}
}
