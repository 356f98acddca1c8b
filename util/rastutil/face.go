// Font rasterization service: opens font files, loads glyph outlines at a
// pixel size with hinting, and renders them to coverage bitmaps.
package rastutil

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/exp/mmap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var ErrNoGlyph = errors.New("no glyph")
var ErrUnsupportedFont = errors.New("unsupported font")
var ErrPixelSize = errors.New("invalid pixel size")

type GlyphIndex uint32

// Face at a fixed pixel size.
type Face interface {
	// Returns zero if the font has no glyph for the rune.
	Index(ru rune) GlyphIndex
	Load(gi GlyphIndex, flags LoadFlags) (*Glyph, error)
	Metrics() Metrics
	Close() error
}

// Vertical metrics in font units.
type Metrics struct {
	UnitsPerEm int
	Height     int // ascender - descender + line gap
	YMax       int // top of the font bounding box
}

//----------

// Parsed font file. Truetype outlines are used when possible (they carry
// hinting instructions), other sfnt flavours go through x/image/font/sfnt.
type FontFile struct {
	tt *truetype.Font
	sf *sfnt.Font
	ra io.Closer
}

func OpenFontFile(filename string) (*FontFile, error) {
	ra, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	// truetype needs the whole font in memory
	b := make([]byte, ra.Len())
	if _, err := ra.ReadAt(b, 0); err != nil && err != io.EOF {
		ra.Close()
		return nil, err
	}
	if tt, err := truetype.Parse(b); err == nil {
		ra.Close()
		ff := &FontFile{tt: tt}
		ff.sf, _ = opentype.Parse(b) // metrics only, optional
		return ff, nil
	}
	sf, err := opentype.ParseReaderAt(ra)
	if err != nil {
		ra.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}
	return &FontFile{sf: sf, ra: ra}, nil
}

func ParseFontFile(b []byte) (*FontFile, error) {
	if tt, err := truetype.Parse(b); err == nil {
		ff := &FontFile{tt: tt}
		ff.sf, _ = opentype.Parse(b)
		return ff, nil
	}
	sf, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFont, err)
	}
	return &FontFile{sf: sf}, nil
}

func (ff *FontFile) Close() error {
	if ff.ra != nil {
		return ff.ra.Close()
	}
	return nil
}

// New face with the given pixels per em.
func (ff *FontFile) NewFace(ppem float64) (Face, error) {
	if !(ppem > 0) || math.IsInf(ppem, 0) || ppem > 0x7fff {
		return nil, fmt.Errorf("%w: %v", ErrPixelSize, ppem)
	}
	scale := fixed.Int26_6(math.Round(ppem * 64))
	m, err := ff.metrics()
	if err != nil {
		return nil, err
	}
	if ff.tt != nil {
		return &ttFace{f: ff.tt, scale: scale, metrics: m}, nil
	}
	return &sfntFace{f: ff.sf, ppem: scale, metrics: m}, nil
}

func (ff *FontFile) metrics() (Metrics, error) {
	if ff.sf != nil {
		var buf sfnt.Buffer
		upe := int(ff.sf.UnitsPerEm())
		// at ppem=upe, 26.6 pixel values are font units
		ppem := fixed.I(upe)
		fm, err := ff.sf.Metrics(&buf, ppem, font.HintingNone)
		if err != nil {
			return Metrics{}, err
		}
		bounds, err := ff.sf.Bounds(&buf, ppem, font.HintingNone)
		if err != nil {
			return Metrics{}, err
		}
		return Metrics{
			UnitsPerEm: upe,
			Height:     fm.Height.Round(),
			YMax:       (-bounds.Min.Y).Round(), // sfnt y axis points down
		}, nil
	}

	upe := int(ff.tt.FUnitsPerEm())
	// at size=upe, 26.6 pixel values are font units
	face := truetype.NewFace(ff.tt, &truetype.Options{Size: float64(upe), DPI: 72})
	defer face.Close()
	fm := face.Metrics()
	bounds := ff.tt.Bounds(fixed.Int26_6(upe))
	return Metrics{
		UnitsPerEm: upe,
		Height:     (fm.Ascent + fm.Descent).Round(),
		YMax:       int(bounds.Max.Y),
	}, nil
}

//----------

type ttFace struct {
	f       *truetype.Font
	scale   fixed.Int26_6
	buf     truetype.GlyphBuf
	metrics Metrics
}

func (fc *ttFace) Index(ru rune) GlyphIndex {
	return GlyphIndex(fc.f.Index(ru))
}

func (fc *ttFace) Load(gi GlyphIndex, flags LoadFlags) (*Glyph, error) {
	if gi == 0 {
		return nil, ErrNoGlyph
	}
	if err := fc.buf.Load(fc.f, fc.scale, truetype.Index(gi), flags.hinting()); err != nil {
		return nil, err
	}
	g := &Glyph{Advance: fc.buf.AdvanceWidth, Flags: flags}
	o := &g.Outline
	o.Points = make([]fixed.Point26_6, len(fc.buf.Points))
	o.Tags = make([]uint8, len(fc.buf.Points))
	for i, p := range fc.buf.Points {
		o.Points[i] = fixed.Point26_6{X: p.X, Y: p.Y}
		if p.Flags&0x01 != 0 {
			o.Tags[i] = TagOn
		}
	}
	o.Ends = append([]int(nil), fc.buf.Ends...)
	return g, nil
}

func (fc *ttFace) Metrics() Metrics { return fc.metrics }

func (fc *ttFace) Close() error {
	fc.buf = truetype.GlyphBuf{}
	return nil
}

//----------

type sfntFace struct {
	f       *sfnt.Font
	ppem    fixed.Int26_6
	buf     sfnt.Buffer
	metrics Metrics
}

func (fc *sfntFace) Index(ru rune) GlyphIndex {
	gi, err := fc.f.GlyphIndex(&fc.buf, ru)
	if err != nil {
		return 0
	}
	return GlyphIndex(gi)
}

// No hinting instructions are run; hinted loads only round the advance.
func (fc *sfntFace) Load(gi GlyphIndex, flags LoadFlags) (*Glyph, error) {
	if gi == 0 {
		return nil, ErrNoGlyph
	}
	x := sfnt.GlyphIndex(gi)
	adv, err := fc.f.GlyphAdvance(&fc.buf, x, fc.ppem, flags.hinting())
	if err != nil {
		return nil, err
	}
	segs, err := fc.f.LoadGlyph(&fc.buf, x, fc.ppem, nil)
	if err != nil {
		return nil, err
	}
	g := &Glyph{Advance: adv, Flags: flags}
	o := &g.Outline
	add := func(p fixed.Point26_6, tag uint8) {
		o.Points = append(o.Points, fixed.Point26_6{X: p.X, Y: -p.Y})
		o.Tags = append(o.Tags, tag)
	}
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(o.Points) > 0 {
				o.Ends = append(o.Ends, len(o.Points))
			}
			add(seg.Args[0], TagOn)
		case sfnt.SegmentOpLineTo:
			add(seg.Args[0], TagOn)
		case sfnt.SegmentOpQuadTo:
			add(seg.Args[0], 0)
			add(seg.Args[1], TagOn)
		case sfnt.SegmentOpCubeTo:
			add(seg.Args[0], TagCubic)
			add(seg.Args[1], TagCubic)
			add(seg.Args[2], TagOn)
		}
	}
	if len(o.Points) > 0 {
		o.Ends = append(o.Ends, len(o.Points))
	}
	return g, nil
}

func (fc *sfntFace) Metrics() Metrics { return fc.metrics }

func (fc *sfntFace) Close() error { return nil }
