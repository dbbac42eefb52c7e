// Command areactl renders, inspects and repairs print-area documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ha1tch/printarea/pkg/config"
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/render"
	"github.com/ha1tch/printarea/pkg/side"
	"github.com/ha1tch/printarea/pkg/sidefile"
)

const usage = `areactl - print area toolkit

Usage:
  areactl <command> [options]

Commands:
  render     Render a side to PNG or SVG
  info       Show sides and area counts
  validate   Check every area lies on the surface and is large enough
  normalize  Clamp every area onto the surface

Examples:
  areactl render shirt.json -o front.png
  areactl render shirt.json --side 1 --scale 2 -o back.png
  areactl render shirt.json -o front.svg
  areactl validate shirt.json
  areactl normalize shirt.json -o fixed.json --pretty

Surface size and log level come from ~/.areaedit, .env and AREAEDIT_* variables.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "render":
		cmdRender(cfg, args)
	case "info":
		cmdInfo(cfg, args)
	case "validate":
		cmdValidate(cfg, args)
	case "normalize":
		cmdNormalize(cfg, args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// options holds the flags shared by the subcommands.
type options struct {
	input  string
	output string
	side   int
	scale  int
	pretty bool
	images string
}

func parseOptions(args []string) (options, error) {
	opts := options{scale: 1}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s needs a value", arg)
			}
			i++
			return args[i], nil
		}
		number := func() (int, error) {
			v, err := value()
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", arg, err)
			}
			return n, nil
		}

		var err error
		switch arg {
		case "-o", "--output":
			opts.output, err = value()
		case "--side":
			opts.side, err = number()
		case "--scale":
			opts.scale, err = number()
		case "--images":
			opts.images, err = value()
		case "--pretty":
			opts.pretty = true
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown option %s", arg)
			}
			if opts.input != "" {
				return opts, fmt.Errorf("unexpected argument %s", arg)
			}
			opts.input = arg
		}
		if err != nil {
			return opts, err
		}
	}
	if opts.input == "" {
		return opts, fmt.Errorf("missing input file")
	}
	if opts.scale < 1 {
		return opts, fmt.Errorf("--scale must be at least 1")
	}
	if opts.images == "" {
		opts.images = filepath.Dir(opts.input)
	}
	return opts, nil
}

func mustOptions(args []string, usageLine string) options {
	opts, err := parseOptions(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: "+usageLine)
		os.Exit(1)
	}
	return opts
}

func mustLoad(path string) *side.Product {
	p, err := sidefile.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return p
}

func cmdRender(cfg config.Config, args []string) {
	opts := mustOptions(args, "areactl render <input> [-o output.png|output.svg] [--side N] [--scale N] [--images dir]")
	p := mustLoad(opts.input)

	s := p.Side(opts.side)
	if s == nil {
		fmt.Fprintf(os.Stderr, "Error: side %d out of range (document has %d)\n", opts.side, len(p.Sides))
		os.Exit(1)
	}
	if opts.output == "" {
		opts.output = defaultOutput(opts.input, s.Name)
	}

	loader := render.SchemeLoader{
		Files: render.FileLoader{Dir: opts.images},
		HTTP:  render.NewHTTPLoader(cfg.HTTPTimeout),
	}
	if err := renderSide(cfg.Bounds(), s, loader, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", opts.output, err)
		os.Exit(1)
	}
	fmt.Printf("%s: side %q rendered to %s\n", opts.input, s.Name, opts.output)
}

func defaultOutput(input, sideName string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s-%s.png", base, strings.ToLower(strings.ReplaceAll(sideName, " ", "-")))
}

// renderSide writes s to opts.output, choosing SVG or PNG by extension.
// A template image that fails to load is left out of the picture.
func renderSide(b geom.Bounds, s *side.Side, loader render.Loader, opts options) error {
	cache := render.NewImageCache(loader)
	if s.Image != "" {
		if err := cache.Preload(context.Background(), s.Image); err != nil {
			logrus.WithError(err).WithField("image", s.Image).Warn("Rendering without template image")
		}
	}

	r, err := render.New(b, cache, render.DefaultOptions())
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer f.Close()

	frame := render.Frame{Side: s, Selection: side.NoRef}
	if strings.EqualFold(filepath.Ext(opts.output), ".svg") {
		err = r.WriteSVG(f, frame)
	} else {
		err = r.WritePNG(f, frame, opts.scale)
	}
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": opts.output, "side": s.Name, "scale": opts.scale}).Debug("Rendered side")
	return f.Close()
}

func cmdInfo(cfg config.Config, args []string) {
	opts := mustOptions(args, "areactl info <input>")
	p := mustLoad(opts.input)
	printInfo(os.Stdout, p, cfg.Bounds())
}

func printInfo(w io.Writer, p *side.Product, b geom.Bounds) {
	if p.Name != "" {
		fmt.Fprintf(w, "Product:  %s\n", p.Name)
	}
	fmt.Fprintf(w, "Surface:  %dx%d\n", b.Width, b.Height)
	fmt.Fprintf(w, "Sides:    %d\n", len(p.Sides))
	for i := range p.Sides {
		s := &p.Sides[i]
		fmt.Fprintln(w)
		fmt.Fprintf(w, "[%d] %s\n", i, s.Name)
		if s.Image != "" {
			fmt.Fprintf(w, "    Image:        %s\n", s.Image)
		}
		fmt.Fprintf(w, "    Print:        %d\n", len(s.PrintAreas))
		for _, a := range s.PrintAreas {
			fmt.Fprintf(w, "      %-20s %4d,%-4d %4dx%d\n", a.Name, a.Rect.X, a.Rect.Y, a.Rect.Width, a.Rect.Height)
		}
		fmt.Fprintf(w, "    Restriction:  %d\n", len(s.RestrictionAreas))
		for _, a := range s.RestrictionAreas {
			fmt.Fprintf(w, "      %-20s %4d,%-4d %4dx%d\n", a.Name, a.Rect.X, a.Rect.Y, a.Rect.Width, a.Rect.Height)
		}
	}
}

func cmdValidate(cfg config.Config, args []string) {
	opts := mustOptions(args, "areactl validate <input>")
	p := mustLoad(opts.input)

	problems := validateProduct(p, cfg.Bounds())
	if len(problems) > 0 {
		for _, msg := range problems {
			fmt.Fprintln(os.Stderr, msg)
		}
		fmt.Fprintf(os.Stderr, "Validation failed: %d problems\n", len(problems))
		os.Exit(1)
	}
	fmt.Printf("%s: valid, %d sides\n", opts.input, len(p.Sides))
}

// validateProduct returns one line per violation, prefixed with its side.
func validateProduct(p *side.Product, b geom.Bounds) []string {
	var out []string
	for i := range p.Sides {
		for _, v := range side.Validate(&p.Sides[i], b) {
			out = append(out, fmt.Sprintf("%s: %s", p.Sides[i].Name, v.Error()))
		}
	}
	return out
}

func cmdNormalize(cfg config.Config, args []string) {
	opts := mustOptions(args, "areactl normalize <input> [-o output] [--pretty]")
	p := mustLoad(opts.input)
	if opts.output == "" {
		opts.output = opts.input
	}

	changed := 0
	for i := range p.Sides {
		changed += side.Normalize(&p.Sides[i], cfg.Bounds())
	}

	data, err := sidefile.ToJSON(p, opts.pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", opts.output, err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d areas adjusted, written to %s\n", opts.input, changed, opts.output)
}
