package imageutil

import (
	"image"
	"image/color"
)

// Fills r (clipped to clip and to the surface) with c.
// Alpha 0 does nothing. An opaque color is written as is, including the
// alpha channel. Otherwise each color channel is blended with
// (src*a + dst*(255-a)) >> 8 and the destination alpha is kept.
func FillRect(s *Surface, r, clip image.Rectangle, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r = r.Intersect(clip).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	if c.A == 0xff {
		fillOpaque(s, r, s.Format.Pack(c))
		return
	}

	pf := &s.Format
	a := uint32(c.A)
	keep := pf.AMask
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v := s.Pixel(x, y)
			d := pf.Unpack(v)
			d.R = uint8((uint32(c.R)*a + uint32(d.R)*(255-a)) >> 8)
			d.G = uint8((uint32(c.G)*a + uint32(d.G)*(255-a)) >> 8)
			d.B = uint8((uint32(c.B)*a + uint32(d.B)*(255-a)) >> 8)
			s.SetPixel(x, y, pf.Pack(d)&^keep|v&keep)
		}
	}
}

func fillOpaque(s *Surface, r image.Rectangle, v uint32) {
	// first row, then copy it to the others
	for x := r.Min.X; x < r.Max.X; x++ {
		s.SetPixel(x, r.Min.Y, v)
	}
	i0 := s.PixOffset(r.Min.X, r.Min.Y)
	i1 := s.PixOffset(r.Max.X, r.Min.Y)
	row := s.Pix[i0:i1]
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		i := s.PixOffset(r.Min.X, y)
		copy(s.Pix[i:], row)
	}
}

//----------

// Blends c into the pixel at x,y with a coverage value per color channel
// (r,g,b). Each channel becomes
// (c*cov*a + dst*(65025-cov*a) + 32767) / 65025, rounding to nearest.
// The destination alpha is kept. No bounds check.
func BlendCoverage(s *Surface, x, y int, c color.NRGBA, cov [3]uint8) {
	pf := &s.Format
	v := s.Pixel(x, y)
	d := pf.Unpack(v)
	a := uint32(c.A)
	d.R = blendCoverage(c.R, d.R, uint32(cov[0])*a)
	d.G = blendCoverage(c.G, d.G, uint32(cov[1])*a)
	d.B = blendCoverage(c.B, d.B, uint32(cov[2])*a)
	keep := pf.AMask
	s.SetPixel(x, y, pf.Pack(d)&^keep|v&keep)
}

func blendCoverage(src, dst uint8, sa uint32) uint8 {
	return uint8((uint32(src)*sa + uint32(dst)*(65025-sa) + 32767) / 65025)
}
