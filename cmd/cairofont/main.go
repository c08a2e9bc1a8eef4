// Command cairofont prints the font options, face and extents cairo
// computes for a piece of text.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/cairo"
)

func main() {
	var (
		fontFile    = flag.String("font", "", "TrueType/OpenType font file (default: toy face)")
		family      = flag.String("family", "sans-serif", "toy face family")
		italic      = flag.Bool("italic", false, "toy face italic slant")
		bold        = flag.Bool("bold", false, "toy face bold weight")
		size        = flag.Float64("size", 16, "font size in user units")
		scale       = flag.Float64("scale", 1, "device scale of the CTM")
		antialias   = flag.String("antialias", "default", "antialias mode")
		subpixel    = flag.String("subpixel", "default", "subpixel order")
		hintStyle   = flag.String("hint-style", "default", "hint style")
		hintMetrics = flag.String("hint-metrics", "default", "hint metrics")
		variations  = flag.String("variations", "", "font variations, e.g. wght=200,wdth=140.5")
		verbose     = flag.Bool("v", false, "debug logging and leak report")
	)
	flag.Parse()

	if *verbose {
		cairo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		cairo.SetLeakTracking(true)
	}

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		text = "Hello, cairo"
	}

	cfg := config{
		fontFile:    *fontFile,
		family:      *family,
		italic:      *italic,
		bold:        *bold,
		size:        *size,
		scale:       *scale,
		antialias:   *antialias,
		subpixel:    *subpixel,
		hintStyle:   *hintStyle,
		hintMetrics: *hintMetrics,
		variations:  *variations,
	}
	if err := run(os.Stdout, cfg, text); err != nil {
		log.Fatalf("cairofont: %v", err)
	}

	if *verbose {
		if n := cairo.ReportLeaks(nil); n > 0 {
			log.Fatalf("cairofont: %d leaked handles", n)
		}
	}
}

type config struct {
	fontFile    string
	family      string
	italic      bool
	bold        bool
	size        float64
	scale       float64
	antialias   string
	subpixel    string
	hintStyle   string
	hintMetrics string
	variations  string
}

func run(w io.Writer, cfg config, text string) error {
	opts, err := newOptions(cfg)
	if err != nil {
		return err
	}
	defer opts.Destroy()

	face, err := newFace(cfg)
	if err != nil {
		return err
	}
	defer face.Destroy()

	sf := cairo.NewScaledFont(face, cairo.Scale(cfg.size, cfg.size), cairo.Scale(cfg.scale, cfg.scale), opts)
	if err := sf.Err(); err != nil {
		return fmt.Errorf("scaled font: %w", err)
	}
	defer sf.Destroy()

	fe := sf.Extents()
	te := sf.TextExtents(text)
	if err := sf.Err(); err != nil {
		return fmt.Errorf("text extents: %w", err)
	}

	fmt.Fprintf(w, "options:  %v\n", opts)
	fmt.Fprintf(w, "hash:     %#016x\n", opts.Hash())
	fmt.Fprintf(w, "face:     %v\n", face)
	fmt.Fprintf(w, "scaled:   %v\n", sf)
	fmt.Fprintf(w, "font:     ascent=%.3f descent=%.3f height=%.3f max-x-advance=%.3f\n",
		fe.Ascent, fe.Descent, fe.Height, fe.MaxXAdvance)
	fmt.Fprintf(w, "text:     %q\n", text)
	fmt.Fprintf(w, "extents:  bearing=(%.3f, %.3f) size=%.3fx%.3f advance=(%.3f, %.3f)\n",
		te.XBearing, te.YBearing, te.Width, te.Height, te.XAdvance, te.YAdvance)
	return nil
}

func newOptions(cfg config) (*cairo.FontOptions, error) {
	opts, err := cairo.NewFontOptions()
	if err != nil {
		return nil, err
	}

	aa, ok := cairo.ParseAntialias(cfg.antialias)
	if !ok {
		opts.Destroy()
		return nil, fmt.Errorf("unknown antialias %q", cfg.antialias)
	}
	sp, ok := cairo.ParseSubpixelOrder(cfg.subpixel)
	if !ok {
		opts.Destroy()
		return nil, fmt.Errorf("unknown subpixel order %q", cfg.subpixel)
	}
	hs, ok := cairo.ParseHintStyle(cfg.hintStyle)
	if !ok {
		opts.Destroy()
		return nil, fmt.Errorf("unknown hint style %q", cfg.hintStyle)
	}
	hm, ok := cairo.ParseHintMetrics(cfg.hintMetrics)
	if !ok {
		opts.Destroy()
		return nil, fmt.Errorf("unknown hint metrics %q", cfg.hintMetrics)
	}

	opts.SetAntialias(aa)
	opts.SetSubpixelOrder(sp)
	opts.SetHintStyle(hs)
	opts.SetHintMetrics(hm)
	opts.SetVariations(cfg.variations)
	if err := opts.Err(); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("font options: %w", err)
	}
	return opts, nil
}

func newFace(cfg config) (*cairo.FontFace, error) {
	if cfg.fontFile != "" {
		return cairo.NewFontFaceFromFile(cfg.fontFile)
	}

	slant := cairo.FontSlantNormal
	if cfg.italic {
		slant = cairo.FontSlantItalic
	}
	weight := cairo.FontWeightNormal
	if cfg.bold {
		weight = cairo.FontWeightBold
	}
	face := cairo.NewToyFontFace(cfg.family, slant, weight)
	if err := face.Err(); err != nil {
		return nil, fmt.Errorf("toy face: %w", err)
	}
	return face, nil
}
