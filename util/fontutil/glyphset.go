package fontutil

import (
	"image"
	"image/color"

	"github.com/jmigpin/glyphren/util/rastutil"
	"golang.org/x/image/math/fixed"
)

type GlyphMetric struct {
	X0, X1, Y0, Y1 int // box inside the glyph set bitmap
	BitmapLeft     int
	BitmapTop      int
	XAdvance       float32 // device pixels
	Loaded         bool
}

// Bitmap with up to glyphSetSize glyphs side by side, plus their metrics.
// Written once when the block is first needed, read-only after (except the
// tab advance).
type GlyphSet struct {
	Pix     []uint8 // nil if the block has no visible glyphs
	Stride  int
	Width   int
	Height  int
	Depth   int // bytes per pixel: 1, or 3 for subpixel (r,g,b coverage)
	Metrics [glyphSetSize]GlyphMetric
}

// Coverage bitmap as an image (gray, or rgb for subpixel sets).
func (gs *GlyphSet) Image() image.Image {
	r := image.Rect(0, 0, gs.Width, gs.Height)
	if gs.Depth == 1 {
		return &image.Gray{Pix: gs.Pix, Stride: gs.Stride, Rect: r}
	}
	img := image.NewRGBA(r)
	for y := 0; y < gs.Height; y++ {
		for x := 0; x < gs.Width; x++ {
			k := y*gs.Stride + x*3
			img.SetRGBA(x, y, color.RGBA{gs.Pix[k], gs.Pix[k+1], gs.Pix[k+2], 0xff})
		}
	}
	return img
}

//----------

// Set of the block containing ru, rasterizing the block on first access.
func (f *Font) glyphSet(ru rune, phase int) *GlyphSet {
	if f.Opt.Antialiasing != AntialiasingSubpixel {
		phase = 0
	}
	block := int(ru / glyphSetSize)
	gs, ok := f.sets[phase][block]
	if !ok {
		f.loadGlyphSets(block)
		gs = f.sets[phase][block]
	}
	return gs
}

// Metric of ru at subpixel phase 0.
func (f *Font) GlyphMetric(ru rune) GlyphMetric {
	return f.glyphSet(ru, 0).Metrics[ru%glyphSetSize]
}

func (f *Font) GlyphSet(ru rune, phase int) *GlyphSet {
	return f.glyphSet(ru, foldPhase(phase))
}

func (f *Font) loadGlyphSets(block int) {
	lopt := f.LoadOptions()
	ropt := f.RenderOptions()
	depth := 1
	if f.Opt.Antialiasing == AntialiasingSubpixel {
		depth = 3
	}
	first := rune(block * glyphSetSize)

	for j := 0; j < f.phaseCount(); j++ {
		gs := &GlyphSet{Depth: depth}
		f.sets[j][block] = gs
		xt := fixed.Int26_6(j * (64 / subpixelPhases))

		// pass 1: metrics and atlas layout
		penX := 0
		for i := 0; i < glyphSetSize; i++ {
			gi := f.face.Index(first + rune(i))
			if gi == 0 {
				continue
			}
			bm, adv, err := f.rasterize(gi, lopt|rastutil.LoadBitmapMetricsOnly, ropt, xt)
			if err != nil {
				continue
			}
			w := bm.Width
			switch f.Opt.Antialiasing {
			case AntialiasingSubpixel:
				w /= 3
			case AntialiasingNone:
				w *= 8
			}
			gs.Metrics[i] = GlyphMetric{
				X0: penX, X1: penX + w,
				Y0: 0, Y1: bm.Rows,
				BitmapLeft: bm.Left,
				BitmapTop:  bm.Top,
				XAdvance:   adv,
				Loaded:     true,
			}
			penX += w
			if bm.Rows > f.MaxHeight {
				f.MaxHeight = bm.Rows
			}

			// hinting misreports the advance of some monospace fonts
			ulopt := (lopt | rastutil.LoadBitmapMetricsOnly | rastutil.LoadNoHinting) &^ rastutil.LoadForceAutohint
			if _, uadv, err := f.rasterize(gi, ulopt, ropt, xt); err == nil {
				gs.Metrics[i].XAdvance = uadv
			}
		}
		if penX == 0 {
			continue
		}

		gs.Width, gs.Height = penX, f.MaxHeight
		gs.Stride = penX * depth
		gs.Pix = make([]uint8, gs.Stride*gs.Height)

		// pass 2: paint
		for i := 0; i < glyphSetSize; i++ {
			m := &gs.Metrics[i]
			if !m.Loaded {
				continue
			}
			gi := f.face.Index(first + rune(i))
			bm, _, err := f.rasterize(gi, lopt, ropt, xt)
			if err != nil {
				continue
			}
			gs.paint(m, bm)
		}
		logger.V(1).Info("glyph set", "font", f.Path, "block", block, "phase", j, "w", gs.Width, "h", gs.Height)
	}
}

func (f *Font) rasterize(gi rastutil.GlyphIndex, lopt rastutil.LoadFlags, ropt rastutil.RenderOptions, xt fixed.Int26_6) (*rastutil.Bitmap, float32, error) {
	g, err := f.face.Load(gi, lopt)
	if err != nil {
		return nil, 0, err
	}
	ApplyStyle(&g.Outline, xt, f.Opt.Style)
	bm, err := rastutil.Render(g, ropt)
	if err != nil {
		return nil, 0, err
	}
	return bm, float32(Fixed266ToFloat64(g.Advance)), nil
}

func (gs *GlyphSet) paint(m *GlyphMetric, bm *rastutil.Bitmap) {
	if bm.Buf == nil {
		return
	}
	for row := 0; row < bm.Rows && row < gs.Height; row++ {
		k := row * gs.Stride
		dst := gs.Pix[k+m.X0*gs.Depth : k+m.X1*gs.Depth]
		src := bm.Buf[row*bm.Pitch : row*bm.Pitch+bm.Width]
		if bm.Mode == rastutil.RenderMono {
			// one byte per bit
			for col := 0; col < len(dst) && col < len(src)*8; col++ {
				bit := (src[col/8] >> (7 - uint(col%8))) & 1
				dst[col] = bit << 7
			}
			continue
		}
		copy(dst, src)
	}
}
