package fontutil

import (
	"flag"
	"testing"

	"github.com/jmigpin/glyphren/util/rastutil"
)

func TestLoadOptions(t *testing.T) {
	type in struct {
		aa Antialiasing
		h  Hinting
	}
	tests := []struct {
		in  in
		out rastutil.LoadFlags
	}{
		{in{AntialiasingNone, HintingNone}, rastutil.LoadTargetMono | rastutil.LoadNoHinting},
		{in{AntialiasingNone, HintingSlight}, rastutil.LoadTargetMono | rastutil.LoadForceAutohint},
		{in{AntialiasingGrayscale, HintingSlight}, rastutil.LoadTargetLight | rastutil.LoadForceAutohint},
		{in{AntialiasingGrayscale, HintingFull}, rastutil.LoadForceAutohint},
		{in{AntialiasingSubpixel, HintingNone}, rastutil.LoadNoHinting},
	}
	for _, tt := range tests {
		f := &Font{Opt: FontOptions{Antialiasing: tt.in.aa, Hinting: tt.in.h}}
		if v := f.LoadOptions(); v != tt.out {
			t.Errorf("%v,%v: got %v, expecting %v", tt.in.aa, tt.in.h, v, tt.out)
		}
	}
}

func TestRenderOptions(t *testing.T) {
	type in struct {
		aa Antialiasing
		h  Hinting
	}
	tests := []struct {
		in     in
		mode   rastutil.RenderMode
		filter bool
	}{
		{in{AntialiasingNone, HintingFull}, rastutil.RenderMono, false},
		{in{AntialiasingGrayscale, HintingNone}, rastutil.RenderNormal, false},
		{in{AntialiasingGrayscale, HintingSlight}, rastutil.RenderLight, false},
		{in{AntialiasingSubpixel, HintingNone}, rastutil.RenderLCD, false},
		{in{AntialiasingSubpixel, HintingSlight}, rastutil.RenderLCD, true},
		{in{AntialiasingSubpixel, HintingFull}, rastutil.RenderLCD, true},
	}
	for _, tt := range tests {
		f := &Font{Opt: FontOptions{Antialiasing: tt.in.aa, Hinting: tt.in.h}}
		ro := f.RenderOptions()
		if ro.Mode != tt.mode || ro.Filter.IsZero() == tt.filter {
			t.Errorf("%v,%v: got %v", tt.in.aa, tt.in.h, ro)
		}
		if tt.filter && ro.Filter != rastutil.LCDFilterDefault {
			t.Errorf("%v,%v: got %v", tt.in.aa, tt.in.h, ro.Filter)
		}
	}
}

// Options derived from one font don't leak into the next.
func TestRenderOptionsIndependent(t *testing.T) {
	f1 := &Font{Opt: FontOptions{Antialiasing: AntialiasingSubpixel, Hinting: HintingFull}}
	f2 := &Font{Opt: FontOptions{Antialiasing: AntialiasingSubpixel, Hinting: HintingNone}}
	ro1 := f1.RenderOptions()
	ro2 := f2.RenderOptions()
	if ro1.Filter.IsZero() || !ro2.Filter.IsZero() {
		t.Fatal(ro1, ro2)
	}
	if f1.RenderOptions() != ro1 {
		t.Fatal("options changed")
	}
}

//----------

func TestOptionsFlags(t *testing.T) {
	var opt FontOptions
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&opt.Antialiasing, "aa", "")
	fs.Var(&opt.Hinting, "hinting", "")
	fs.Var(&opt.Style, "style", "")
	args := []string{"-aa=Subpixel", "-hinting=slight", "-style=bold, underline"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if opt.Antialiasing != AntialiasingSubpixel || opt.Hinting != HintingSlight {
		t.Fatal(opt)
	}
	if opt.Style != StyleBold|StyleUnderline {
		t.Fatal(opt.Style)
	}
	if s := opt.Style.String(); s != "bold,underline" {
		t.Fatal(s)
	}
	if s := opt.Antialiasing.String(); s != "subpixel" {
		t.Fatal(s)
	}
}

func TestOptionsFlagsError(t *testing.T) {
	aa := AntialiasingGrayscale
	if err := aa.Set("lcd"); err == nil {
		t.Fatal("expecting error")
	}
	if aa != AntialiasingGrayscale {
		t.Fatal(aa)
	}
	var st Style
	if err := st.Set("bold,wide"); err == nil {
		t.Fatal("expecting error")
	}
	if s := Hinting(7).String(); s != "7" {
		t.Fatal(s)
	}
}

func TestOptionsScale(t *testing.T) {
	opt := FontOptions{}
	if opt.scale() != 1 {
		t.Fatal(opt.scale())
	}
	opt.Scale = 3
	if opt.scale() != 3 {
		t.Fatal(opt.scale())
	}
}

//----------

func TestApplyStyle(t *testing.T) {
	newOutline := func() rastutil.Outline {
		g, _ := newTestFace("x", 1).Load(1, 0)
		return g.Outline
	}

	o := newOutline()
	ApplyStyle(&o, 32, 0)
	b := o.Bounds()
	if b.Min.X != 64+32 || b.Max.X != 6*64+32 {
		t.Fatal(b)
	}

	o = newOutline()
	ApplyStyle(&o, 0, StyleBold)
	b2 := o.Bounds()
	if b2.Max.X-b2.Min.X <= 5*64 || b2.Max.Y-b2.Min.Y != 10*64 {
		t.Fatal(b2)
	}

	// shear moves the top right by a quarter of the height
	o = newOutline()
	ApplyStyle(&o, 0, StyleItalic)
	b3 := o.Bounds()
	if b3.Min.X != 64 || b3.Max.X != 6*64+10*64/4 {
		t.Fatal(b3)
	}
}
