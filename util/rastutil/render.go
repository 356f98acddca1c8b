package rastutil

import (
	"image"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"
)

// Loaded glyph slot.
type Glyph struct {
	Outline Outline
	Advance fixed.Int26_6
	Flags   LoadFlags // flags used to load the glyph
}

// Rendered glyph bitmap.
//
// Width is in bytes per row: pixels for normal/light, 3*pixels for lcd,
// and packed bytes (8 pixels each, msb first) for mono.
type Bitmap struct {
	Mode  RenderMode
	Width int
	Rows  int
	Pitch int
	Left  int // pixels from the origin to the left edge
	Top   int // pixels from the baseline to the top row
	Buf   []uint8
}

// Rasterizes the glyph outline. Glyphs loaded with LoadBitmapMetricsOnly
// get the bitmap dimensions without a buffer.
func Render(g *Glyph, opt RenderOptions) (*Bitmap, error) {
	b := &Bitmap{Mode: opt.Mode}
	if g.Outline.Empty() {
		return b, nil
	}

	cb := g.Outline.Bounds()
	x0, x1 := cb.Min.X.Floor(), cb.Max.X.Ceil()
	y0, y1 := cb.Min.Y.Floor(), cb.Max.Y.Ceil()
	lcd := opt.Mode == RenderLCD
	if lcd && !opt.Filter.IsZero() {
		// room for the filter spread
		x0--
		x1++
	}
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return b, nil
	}

	b.Left, b.Top, b.Rows = x0, y1, h
	switch opt.Mode {
	case RenderLCD:
		b.Width = w * 3
	case RenderMono:
		b.Width = (w + 7) / 8
	default:
		b.Width = w
	}
	b.Pitch = b.Width
	if g.Flags.Has(LoadBitmapMetricsOnly) {
		return b, nil
	}

	// coverage at full (sub)pixel resolution
	xmul := fixed.Int26_6(1)
	sw := w
	if lcd {
		xmul, sw = 3, w*3
	}
	alpha := image.NewAlpha(image.Rect(0, 0, sw, h))
	r := raster.NewRasterizer(sw, h)
	r.UseNonZeroWinding = true
	ox, oy := fixed.I(x0), fixed.I(y1)
	g.Outline.decompose(r, func(p fixed.Point26_6) fixed.Point26_6 {
		return fixed.Point26_6{X: (p.X - ox) * xmul, Y: oy - p.Y}
	})
	var painter raster.Painter = raster.NewAlphaSrcPainter(alpha)
	if opt.Mode == RenderMono {
		painter = raster.NewMonochromePainter(painter)
	}
	r.Rasterize(painter)

	switch opt.Mode {
	case RenderMono:
		b.Buf = packBits(alpha.Pix, sw, h, b.Pitch)
	case RenderLCD:
		for y := 0; y < h; y++ {
			opt.Filter.apply(alpha.Pix[y*alpha.Stride : y*alpha.Stride+sw])
		}
		b.Buf = alpha.Pix
	default:
		b.Buf = alpha.Pix
	}
	return b, nil
}

func packBits(pix []uint8, w, h, pitch int) []uint8 {
	buf := make([]uint8, pitch*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pix[y*w+x] >= 0x80 {
				buf[y*pitch+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return buf
}
