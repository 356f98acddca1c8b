package drawutil

import (
	"image"
	"image/color"
	"math"

	"github.com/jmigpin/glyphren/util/fontutil"
	"github.com/jmigpin/glyphren/util/imageutil"
)

// Draws text and rectangles into a surface. Arguments are in logical units,
// multiplied by the scale to get device pixels.
type Renderer struct {
	surface *imageutil.Surface
	scale   int
	clip    image.Rectangle // device pixels, inside the surface
}

func NewRenderer(s *imageutil.Surface, scale int) *Renderer {
	if scale < 1 {
		scale = 1
	}
	r := &Renderer{surface: s, scale: scale}
	r.ClipToSurface()
	return r
}

func (r *Renderer) Surface() *imageutil.Surface { return r.surface }
func (r *Renderer) Scale() int                  { return r.scale }

// Surface size in logical units.
func (r *Renderer) Size() (int, int) {
	return r.surface.Width / r.scale, r.surface.Height / r.scale
}

// New surface (ex: window resized). The clip is reset to the surface.
func (r *Renderer) Resize(s *imageutil.Surface) {
	r.surface = s
	r.ClipToSurface()
	logger.V(1).Info("resize", "w", s.Width, "h", s.Height)
}

//----------

// Clip in logical units, limited to the surface.
func (r *Renderer) SetClip(rect image.Rectangle) {
	r.clip = r.toDevice(rect).Intersect(r.surface.Bounds())
}

// Current clip in device pixels.
func (r *Renderer) Clip() image.Rectangle {
	return r.clip
}

func (r *Renderer) ClipToSurface() {
	r.clip = r.surface.Bounds()
}

func (r *Renderer) toDevice(rect image.Rectangle) image.Rectangle {
	rect.Min = rect.Min.Mul(r.scale)
	rect.Max = rect.Max.Mul(r.scale)
	return rect
}

//----------

func (r *Renderer) DrawRect(rect image.Rectangle, c color.NRGBA) {
	imageutil.FillRect(r.surface, r.toDevice(rect), r.clip, c)
}

// Draws text with its top left corner at x,y. Returns the pen position
// after the text.
func (r *Renderer) DrawText(fg fontutil.FontGroup, text string, x float64, y int, c color.NRGBA) float64 {
	scale := r.scale
	penX := x * float64(scale)
	y *= scale
	primary := fg.Primary()
	if primary == nil {
		return x
	}

	for len(text) > 0 {
		ru, n := fontutil.DecodeRuneInString(text)
		text = text[n:]

		_, frac := math.Modf(penX)
		phase := int(frac * 3)
		gs, m, f := fg.Glyph(ru, phase)
		startX := int(math.Floor(penX)) + m.BitmapLeft

		if !m.Loaded {
			if ru > 0xff {
				logger.V(2).Info("missing glyph", "rune", ru)
				box := image.Rect(0, 0, int(f.SpaceAdvance)-1, fg.Height()*scale)
				box = box.Add(image.Point{startX + 1, y})
				imageutil.FillRect(r.surface, box, r.clip, c)
			}
		} else if gs.Pix != nil && c.A > 0 {
			r.drawGlyph(gs, m, startX, y+f.Baseline*scale, c)
		}

		if m.XAdvance != 0 {
			penX += float64(m.XAdvance)
		} else {
			penX += float64(f.SpaceAdvance)
		}
	}

	if primary.Opt.Style.Has(fontutil.StyleUnderline) {
		x0 := int(x * float64(scale))
		uy := y + fg.Height()*scale - 1
		ur := image.Rect(x0, uy, int(penX), uy+1)
		imageutil.FillRect(r.surface, ur, r.clip, c)
	}
	return penX / float64(scale)
}

// Blends the glyph coverage with its origin at startX and the baseline at
// baseY (device pixels).
func (r *Renderer) drawGlyph(gs *fontutil.GlyphSet, m *fontutil.GlyphMetric, startX, baseY int, c color.NRGBA) {
	clip := r.clip

	// horizontal clip
	sx0, sx1 := m.X0, m.X1
	dx := startX
	if dx < clip.Min.X {
		sx0 += clip.Min.X - dx
		dx = clip.Min.X
	}
	if dx+(sx1-sx0) > clip.Max.X {
		sx1 = sx0 + (clip.Max.X - dx)
	}
	if sx1 <= sx0 {
		return
	}

	for line := m.Y0; line < m.Y1; line++ {
		ty := line + baseY - m.BitmapTop
		if ty < clip.Min.Y {
			continue
		}
		if ty >= clip.Max.Y {
			break
		}
		k := line*gs.Stride + sx0*gs.Depth
		for x := 0; x < sx1-sx0; x++ {
			var cov [3]uint8
			if gs.Depth == 3 {
				cov = [3]uint8{gs.Pix[k], gs.Pix[k+1], gs.Pix[k+2]}
			} else {
				v := gs.Pix[k]
				cov = [3]uint8{v, v, v}
			}
			k += gs.Depth
			imageutil.BlendCoverage(r.surface, dx+x, ty, c, cov)
		}
	}
}
