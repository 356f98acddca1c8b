// Renders text with fallback fonts into a png.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/go-logr/stdr"
	"github.com/jmigpin/glyphren/core"
	"github.com/jmigpin/glyphren/util/drawutil"
	"github.com/jmigpin/glyphren/util/fontutil"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("glyphview: ")
	if err := main2(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func main2() error {
	opt := core.NewDefaultOptions()

	flag.StringVar(&opt.Font, "font", opt.Font, "font file (default: go regular)")
	flag.Var(&opt.Fallbacks, "fallback", "fallback font files, comma separated or repeated")
	flag.Float64Var(&opt.FontSize, "size", opt.FontSize, "font size")
	flag.Var(&opt.FontOpt.Antialiasing, "aa", "antialiasing: none|grayscale|subpixel")
	flag.Var(&opt.FontOpt.Hinting, "hinting", "hinting: none|slight|full")
	flag.Var(&opt.FontOpt.Style, "style", "comma separated: bold,italic,underline")
	flag.IntVar(&opt.FontOpt.Scale, "scale", opt.FontOpt.Scale, "device pixels per unit")
	flag.Var(&opt.Fg, "fg", "text color: name or #rrggbb[aa]")
	flag.Var(&opt.Bg, "bg", "background color: name or #rrggbb[aa]")
	flag.IntVar(&opt.TabWidth, "tab", opt.TabWidth, "tab width in spaces")
	flag.IntVar(&opt.Padding, "padding", opt.Padding, "padding around the text")
	flag.StringVar(&opt.Output, "o", opt.Output, "output png file, - for stdout")
	flag.IntVar(&opt.Zoom, "zoom", opt.Zoom, "upscale the output (nearest neighbour)")
	flag.BoolVar(&opt.Watch, "watch", false, "render again when a font file changes")
	verbose := flag.Int("v", 0, "log verbosity")
	version := flag.Bool("version", false, "output version and exit")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: glyphview [flags] text...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(core.Version())
		return nil
	}

	stdr.SetVerbosity(*verbose)
	logger := stdr.New(log.Default())
	fontutil.SetLogger(logger)
	drawutil.SetLogger(logger)

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	opt.Text = strings.Join(flag.Args(), " ")
	if opt.Text == "" {
		flag.Usage()
		return fmt.Errorf("missing text")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return core.Run(ctx, opt, logger)
}
