package fontutil

import (
	"errors"
	"fmt"

	"github.com/jmigpin/glyphren/util/rastutil"
)

var ErrFontOpen = errors.New("font open failure")

// Codepoints per glyph set.
const glyphSetSize = 256

// Glyph sets cached per block when antialiasing is subpixel, each one
// rasterized at a different horizontal offset.
const subpixelPhases = 3

type Font struct {
	Path string // kept to load copies at other sizes
	Size float64
	Opt  FontOptions

	SpaceAdvance float32 // device pixels
	TabAdvance   float32 // device pixels
	MaxHeight    int     // tallest glyph rasterized so far, device pixels
	Baseline     int     // logical units
	Height       int     // logical units

	face rastutil.Face
	sets [subpixelPhases]map[int]*GlyphSet // [phase][block]
}

// Opens the font at path with a pixel size of size*opt.Scale.
func LoadFont(path string, size float64, opt FontOptions) (*Font, error) {
	ff, err := FontsMan.FontFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrFontOpen, path, err)
	}
	face, err := ff.NewFace(size * float64(opt.scale()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrFontOpen, path, err)
	}
	f := NewFont(face, size, opt)
	f.Path = path
	return f, nil
}

// The font takes ownership of the face.
func NewFont(face rastutil.Face, size float64, opt FontOptions) *Font {
	f := &Font{face: face, Size: size, Opt: opt}
	for i := range f.sets {
		f.sets[i] = map[int]*GlyphSet{}
	}

	m := face.Metrics()
	upe := float64(m.UnitsPerEm)
	if upe <= 0 {
		upe = 1
	}
	f.Height = int(float64(m.Height) / upe * size)
	f.Baseline = int(float64(m.YMax) / upe * size)

	f.SpaceAdvance = f.glyphSet(' ', 0).Metrics[' '].XAdvance
	f.TabAdvance = f.SpaceAdvance * 2
	return f
}

// Independent instance at another size, no cache state is shared.
func (f *Font) Copy(size float64) (*Font, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("%w: font has no path", ErrFontOpen)
	}
	return LoadFont(f.Path, size, f.Opt)
}

func (f *Font) Close() error {
	for i := range f.sets {
		f.sets[i] = nil
	}
	return f.face.Close()
}

//----------

func (f *Font) phaseCount() int {
	if f.Opt.Antialiasing == AntialiasingSubpixel {
		return subpixelPhases
	}
	return 1
}

func (f *Font) String() string {
	return fmt.Sprintf("%v@%v(%v,%v,%v)", f.Path, f.Size, f.Opt.Antialiasing, f.Opt.Hinting, f.Opt.Style)
}
