package fontutil

import (
	"fmt"
	"strings"

	"github.com/jmigpin/glyphren/util/rastutil"
	"golang.org/x/image/math/fixed"
)

type FontOptions struct {
	Antialiasing Antialiasing
	Hinting      Hinting
	Style        Style
	Scale        int // device pixels per logical unit
}

func (opt *FontOptions) scale() int {
	if opt.Scale < 1 {
		return 1
	}
	return opt.Scale
}

//----------

// implements flag.Value interface
type Antialiasing int

const (
	AntialiasingNone Antialiasing = iota
	AntialiasingGrayscale
	AntialiasingSubpixel
)

var antialiasingNames = []string{"none", "grayscale", "subpixel"}

func (aa Antialiasing) String() string { return enumName(antialiasingNames, int(aa)) }
func (aa *Antialiasing) Set(s string) error {
	v, err := enumValue(antialiasingNames, s)
	if err != nil {
		return err
	}
	*aa = Antialiasing(v)
	return nil
}

//----------

// implements flag.Value interface
type Hinting int

const (
	HintingNone Hinting = iota
	HintingSlight
	HintingFull
)

var hintingNames = []string{"none", "slight", "full"}

func (h Hinting) String() string { return enumName(hintingNames, int(h)) }
func (h *Hinting) Set(s string) error {
	v, err := enumValue(hintingNames, s)
	if err != nil {
		return err
	}
	*h = Hinting(v)
	return nil
}

//----------

// implements flag.Value interface
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
)

var styleNames = []string{"bold", "italic", "underline"}

func (st Style) Has(st2 Style) bool { return st&st2 != 0 }

func (st Style) String() string {
	u := []string{}
	for i, name := range styleNames {
		if st.Has(1 << uint(i)) {
			u = append(u, name)
		}
	}
	return strings.Join(u, ",")
}

// Comma separated style names.
func (st *Style) Set(s string) error {
	*st = 0
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, err := enumValue(styleNames, name)
		if err != nil {
			return err
		}
		*st |= 1 << uint(v)
	}
	return nil
}

//----------

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func enumValue(names []string, s string) (int, error) {
	s = strings.ToLower(s)
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q, expecting one of %v", s, strings.Join(names, "|"))
}

//----------

func (f *Font) LoadOptions() rastutil.LoadFlags {
	var fl rastutil.LoadFlags
	switch {
	case f.Opt.Antialiasing == AntialiasingNone:
		fl |= rastutil.LoadTargetMono
	case f.Opt.Hinting == HintingSlight:
		fl |= rastutil.LoadTargetLight
	}
	if f.Opt.Hinting == HintingNone {
		fl |= rastutil.LoadNoHinting
	} else {
		fl |= rastutil.LoadForceAutohint
	}
	return fl
}

// The lcd filter is part of the returned value; nothing is configured
// globally.
func (f *Font) RenderOptions() rastutil.RenderOptions {
	switch f.Opt.Antialiasing {
	case AntialiasingNone:
		return rastutil.RenderOptions{Mode: rastutil.RenderMono}
	case AntialiasingSubpixel:
		opt := rastutil.RenderOptions{Mode: rastutil.RenderLCD}
		if f.Opt.Hinting != HintingNone {
			opt.Filter = rastutil.LCDFilterDefault
		}
		return opt
	}
	if f.Opt.Hinting == HintingNone {
		return rastutil.RenderOptions{Mode: rastutil.RenderNormal}
	}
	return rastutil.RenderOptions{Mode: rastutil.RenderLight}
}

//----------

var italicMatrix = rastutil.Matrix{XX: 1 << 16, XY: 1 << 14, YY: 1 << 16}

// Translation realizes the subpixel phase, in 26.6 units.
func ApplyStyle(o *rastutil.Outline, xTranslation fixed.Int26_6, st Style) {
	o.Translate(xTranslation, 0)
	if st.Has(StyleBold) {
		o.EmboldenXY(1<<5, 0)
	}
	if st.Has(StyleItalic) {
		o.Transform(italicMatrix)
	}
}
