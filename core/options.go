package core

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jmigpin/glyphren/util/fontutil"
	"github.com/jmigpin/glyphren/util/imageutil"
)

type Options struct {
	Font      string // empty: go regular
	Fallbacks FontPathsOpt
	FontSize  float64
	FontOpt   fontutil.FontOptions
	TabWidth  int

	Fg, Bg  imageutil.ColorFlag
	Padding int // logical units around the text

	Output string // "-": stdout
	Zoom   int
	Watch  bool

	Text string
}

func NewDefaultOptions() *Options {
	opt := &Options{
		FontSize: 16,
		TabWidth: 4,
		Padding:  4,
		Output:   "-",
		Zoom:     1,
	}
	opt.FontOpt.Antialiasing = fontutil.AntialiasingGrayscale
	opt.FontOpt.Hinting = fontutil.HintingFull
	opt.FontOpt.Scale = 1
	opt.Fg.C = color.NRGBA{0, 0, 0, 0xff}
	opt.Bg.C = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	return opt
}

func (opt *Options) Validate() error {
	if opt.FontSize <= 0 {
		return fmt.Errorf("bad font size: %v", opt.FontSize)
	}
	if opt.FontOpt.Scale < 1 {
		return fmt.Errorf("bad scale: %v", opt.FontOpt.Scale)
	}
	if opt.Zoom < 1 {
		return fmt.Errorf("bad zoom: %v", opt.Zoom)
	}
	if opt.TabWidth < 0 {
		return fmt.Errorf("bad tab width: %v", opt.TabWidth)
	}
	if n := 1 + len(opt.Fallbacks.Paths); n > fontutil.FontFallbackMax {
		return fmt.Errorf("too many fonts: %v > %v", n, fontutil.FontFallbackMax)
	}
	return nil
}

//----------

// implements flag.Value interface
type FontPathsOpt struct {
	Paths []string
}

func (o *FontPathsOpt) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			o.Paths = append(o.Paths, p)
		}
	}
	return nil
}

func (o *FontPathsOpt) String() string {
	if o == nil {
		return ""
	}
	return strings.Join(o.Paths, ",")
}
