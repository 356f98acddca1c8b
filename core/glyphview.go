package core

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/go-logr/logr"
	"github.com/jmigpin/glyphren/core/fswatcher"
	"github.com/jmigpin/glyphren/util/drawutil"
	"github.com/jmigpin/glyphren/util/fontutil"
	"github.com/jmigpin/glyphren/util/imageutil"
	"github.com/jmigpin/glyphren/util/iout"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"
)

// file name that indicates stdout is being used
const pipeName = "-"

// Renders text with a font group into a png.
type GlyphView struct {
	opt   *Options
	log   logr.Logger
	fonts []*fontutil.Font

	defaultFont string // temporary file with go regular
}

func NewGlyphView(opt *Options, log logr.Logger) *GlyphView {
	return &GlyphView{opt: opt, log: log}
}

func (gv *GlyphView) Close() error {
	gv.closeFonts()
	if gv.defaultFont == "" {
		return nil
	}
	return iout.MultiErrors(
		fontutil.FontsMan.Close(gv.defaultFont),
		os.Remove(gv.defaultFont),
	)
}

//----------

func (gv *GlyphView) FontPaths() ([]string, error) {
	primary := gv.opt.Font
	if primary == "" {
		if gv.defaultFont == "" {
			name, err := writeTempFont(goregular.TTF)
			if err != nil {
				return nil, err
			}
			gv.defaultFont = name
		}
		primary = gv.defaultFont
	}
	return append([]string{primary}, gv.opt.Fallbacks.Paths...), nil
}

// Loads (or reloads) every font. Fallback fonts that fail to open are
// skipped; the primary font is required.
func (gv *GlyphView) LoadFonts() error {
	paths, err := gv.FontPaths()
	if err != nil {
		return err
	}
	gv.closeFonts()
	// always read from disk; a path listed twice shares one parsed file
	for _, path := range uniquePaths(paths) {
		if err := fontutil.FontsMan.Close(path); err != nil {
			gv.log.Error(err, "close font file", "file", path)
		}
	}
	for i, path := range paths {
		f, err := fontutil.LoadFont(path, gv.opt.FontSize, gv.opt.FontOpt)
		if err != nil {
			if i == 0 {
				return err
			}
			gv.log.Error(err, "fallback font")
			continue
		}
		gv.fonts = append(gv.fonts, f)
	}
	gv.FontGroup().SetTabSize(gv.opt.TabWidth)
	gv.log.V(1).Info("fonts loaded", "fonts", len(gv.fonts), "size", gv.opt.FontSize)
	return nil
}

func (gv *GlyphView) closeFonts() {
	for _, f := range gv.fonts {
		if err := f.Close(); err != nil {
			gv.log.Error(err, "close font", "font", f.Path)
		}
	}
	gv.fonts = nil
}

func (gv *GlyphView) FontGroup() fontutil.FontGroup {
	return fontutil.FontGroup(gv.fonts)
}

//----------

// Draws the text on a surface sized to fit it.
func (gv *GlyphView) Render() *imageutil.Surface {
	fg := gv.FontGroup()
	scale := gv.opt.FontOpt.Scale
	pad := gv.opt.Padding
	w := int(math.Ceil(fg.Width(gv.opt.Text))) + pad*2
	h := fg.Height() + pad*2

	s := imageutil.NewSurface(w*scale, h*scale, imageutil.FormatBGRA)
	r := drawutil.NewRenderer(s, scale)
	r.DrawRect(image.Rect(0, 0, w, h), gv.opt.Bg.C)
	x := r.DrawText(fg, gv.opt.Text, float64(pad), pad, gv.opt.Fg.C)
	gv.log.V(1).Info("rendered", "w", w, "h", h, "penX", x)
	return s
}

func (gv *GlyphView) Image() image.Image {
	s := gv.Render()
	if z := gv.opt.Zoom; z > 1 {
		return imaging.Resize(s, s.Width*z, s.Height*z, imaging.NearestNeighbor)
	}
	return s
}

func (gv *GlyphView) WriteTo(w io.Writer) error {
	return png.Encode(w, gv.Image())
}

func (gv *GlyphView) WriteOutput() error {
	if gv.opt.Output == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return gv.WriteTo(os.Stdout)
	}
	f, err := os.Create(gv.opt.Output)
	if err != nil {
		return fmt.Errorf("unable to create the output file: %w", err)
	}
	defer f.Close()
	if err := gv.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

//----------

// Renders once; with the watch option, renders again on every font file
// change until the context is done.
func Run(ctx context.Context, opt *Options, log logr.Logger) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	gv := NewGlyphView(opt, log)
	defer gv.Close()

	if err := gv.LoadFonts(); err != nil {
		return err
	}
	if err := gv.WriteOutput(); err != nil {
		return err
	}
	if !opt.Watch {
		return nil
	}
	if opt.Output == pipeName {
		return errors.New("watch needs an output file")
	}
	return gv.watch(ctx)
}

func (gv *GlyphView) watch(ctx context.Context) error {
	w, err := fswatcher.NewFsnWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetOpMask(fswatcher.Create | fswatcher.Modify)

	paths, err := gv.FontPaths()
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if err, ok := ev.(error); ok {
				gv.log.Error(err, "watcher")
				continue
			}
			ev2 := ev.(*fswatcher.Event)
			gv.log.Info("font changed", "file", ev2.Name, "op", ev2.Op.String())
			if err := gv.LoadFonts(); err != nil {
				gv.log.Error(err, "reload")
				continue
			}
			if err := gv.WriteOutput(); err != nil {
				return err
			}
		}
	}
}

//----------

func uniquePaths(paths []string) []string {
	seen := map[string]bool{}
	u := []string{}
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			u = append(u, p)
		}
	}
	return u
}

func writeTempFont(b []byte) (string, error) {
	f, err := os.CreateTemp("", "glyphview*.ttf")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
