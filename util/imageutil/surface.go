package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// Channel layout of a packed pixel, stored little endian in BytesPerPixel
// bytes. Channels are 8 bits wide.
type PixelFormat struct {
	BytesPerPixel int

	RShift, GShift, BShift, AShift uint
	RMask, GMask, BMask, AMask     uint32 // AMask=0: no alpha channel
}

var (
	// bytes in memory: b,g,r,a
	FormatBGRA = PixelFormat{
		BytesPerPixel: 4,
		RShift:        16, GShift: 8, BShift: 0, AShift: 24,
		RMask: 0xff0000, GMask: 0xff00, BMask: 0xff, AMask: 0xff000000,
	}
	// bytes in memory: r,g,b,a (same as image.RGBA)
	FormatRGBA = PixelFormat{
		BytesPerPixel: 4,
		RShift:        0, GShift: 8, BShift: 16, AShift: 24,
		RMask: 0xff, GMask: 0xff00, BMask: 0xff0000, AMask: 0xff000000,
	}
	// bytes in memory: b,g,r
	FormatBGR24 = PixelFormat{
		BytesPerPixel: 3,
		RShift:        16, GShift: 8, BShift: 0,
		RMask: 0xff0000, GMask: 0xff00, BMask: 0xff,
	}
)

func (pf *PixelFormat) Pack(c color.NRGBA) uint32 {
	v := uint32(c.R)<<pf.RShift&pf.RMask |
		uint32(c.G)<<pf.GShift&pf.GMask |
		uint32(c.B)<<pf.BShift&pf.BMask
	return v | uint32(c.A)<<pf.AShift&pf.AMask
}

func (pf *PixelFormat) Unpack(v uint32) color.NRGBA {
	c := color.NRGBA{
		R: uint8(v & pf.RMask >> pf.RShift),
		G: uint8(v & pf.GMask >> pf.GShift),
		B: uint8(v & pf.BMask >> pf.BShift),
		A: 0xff,
	}
	if pf.AMask != 0 {
		c.A = uint8(v & pf.AMask >> pf.AShift)
	}
	return c
}

//----------

// Pixel buffer owned by the caller (ex: a window back buffer). Implements
// draw.Image with straight alpha colors.
type Surface struct {
	Pix    []uint8
	Width  int
	Height int
	Stride int // bytes per row
	Format PixelFormat
}

func NewSurface(w, h int, pf PixelFormat) *Surface {
	stride := w * pf.BytesPerPixel
	return &Surface{
		Pix:    make([]uint8, stride*h),
		Width:  w,
		Height: h,
		Stride: stride,
		Format: pf,
	}
}

func NewSurfaceFromBuffer(pix []uint8, w, h, stride int, pf PixelFormat) (*Surface, error) {
	if w < 0 || h < 0 || stride < w*pf.BytesPerPixel {
		return nil, fmt.Errorf("bad surface layout: w=%v h=%v stride=%v bpp=%v", w, h, stride, pf.BytesPerPixel)
	}
	if n := stride * h; len(pix) < n {
		return nil, fmt.Errorf("surface buffer too small: %v < %v", len(pix), n)
	}
	s := &Surface{Pix: pix, Width: w, Height: h, Stride: stride, Format: pf}
	return s, nil
}

func NewBGRA(r image.Rectangle) *Surface {
	return NewSurface(r.Dx(), r.Dy(), FormatBGRA)
}

//----------

func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

func (s *Surface) PixOffset(x, y int) int {
	return y*s.Stride + x*s.Format.BytesPerPixel
}

// Packed pixel value. No bounds check.
func (s *Surface) Pixel(x, y int) uint32 {
	i := s.PixOffset(x, y)
	v := uint32(0)
	for k := 0; k < s.Format.BytesPerPixel; k++ {
		v |= uint32(s.Pix[i+k]) << (8 * uint(k))
	}
	return v
}

func (s *Surface) SetPixel(x, y int, v uint32) {
	i := s.PixOffset(x, y)
	for k := 0; k < s.Format.BytesPerPixel; k++ {
		s.Pix[i+k] = uint8(v >> (8 * uint(k)))
	}
}

//----------

func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}

func (s *Surface) At(x, y int) color.Color {
	return s.NRGBAAt(x, y)
}

func (s *Surface) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return color.NRGBA{}
	}
	return s.Format.Unpack(s.Pixel(x, y))
}

func (s *Surface) Set(x, y int, c color.Color) {
	s.SetNRGBA(x, y, NRGBAColor(c))
}

func (s *Surface) SetNRGBA(x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return
	}
	s.SetPixel(x, y, s.Format.Pack(c))
}

// Adjusts to a new buffer of the same format (ex: window resized).
func (s *Surface) Reset(pix []uint8, w, h, stride int) error {
	s2, err := NewSurfaceFromBuffer(pix, w, h, stride, s.Format)
	if err != nil {
		return err
	}
	*s = *s2
	return nil
}
