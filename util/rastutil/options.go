package rastutil

import "golang.org/x/image/font"

// Glyph load flags. The zero value loads a hinted outline for the normal
// target.
type LoadFlags uint32

const (
	LoadNoHinting LoadFlags = 1 << iota
	LoadForceAutohint
	LoadBitmapMetricsOnly
	LoadTargetLight
	LoadTargetMono
)

func (fl LoadFlags) Has(fl2 LoadFlags) bool { return fl&fl2 != 0 }

func (fl LoadFlags) hinting() font.Hinting {
	switch {
	case fl.Has(LoadNoHinting):
		return font.HintingNone
	case fl.Has(LoadTargetLight):
		return font.HintingVertical
	}
	return font.HintingFull
}

//----------

type RenderMode int

const (
	RenderNormal RenderMode = iota
	RenderLight
	RenderMono
	RenderLCD // horizontal, 3 subpixels per pixel
)

func (m RenderMode) String() string {
	switch m {
	case RenderNormal:
		return "normal"
	case RenderLight:
		return "light"
	case RenderMono:
		return "mono"
	case RenderLCD:
		return "lcd"
	}
	return "?"
}

//----------

// 5-tap horizontal filter applied to LCD renders. The zero value disables
// filtering.
type LCDFilter [5]uint8

var LCDFilterDefault = LCDFilter{0x10, 0x40, 0x70, 0x40, 0x10}

func (f LCDFilter) IsZero() bool {
	return f == LCDFilter{}
}

// filters one row of subpixels in place
func (f LCDFilter) apply(row []uint8) {
	if f.IsZero() || len(row) == 0 {
		return
	}
	src := make([]uint8, len(row))
	copy(src, row)
	for i := range row {
		v := uint32(0)
		for k, w := range f {
			j := i + k - 2
			if j < 0 || j >= len(src) {
				continue
			}
			v += uint32(w) * uint32(src[j])
		}
		v >>= 8
		if v > 0xff {
			v = 0xff
		}
		row[i] = uint8(v)
	}
}

//----------

// Options for Render. Passed on every call, there is no global rasterizer
// state.
type RenderOptions struct {
	Mode   RenderMode
	Filter LCDFilter // only used with RenderLCD
}
