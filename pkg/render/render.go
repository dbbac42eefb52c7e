// Package render draws a side and the editor's transient state onto a 2D
// raster surface, and exports the result as PNG or SVG.
package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// Frame is everything a redraw needs: the current side plus the
// interaction state layered over it.
type Frame struct {
	Side      *side.Side
	Selection side.Ref
	Hover     geom.Handle

	// Drawing is set while a draw gesture is in progress.
	Drawing  bool
	Temp     geom.Rect
	TempType side.AreaType
}

// Options configures the raster pipeline.
type Options struct {
	GridSpacing int
	HandleSize  int
	LabelSize   float64
}

// DefaultOptions returns the standard look.
func DefaultOptions() Options {
	return Options{
		GridSpacing: 20,
		HandleSize:  8,
		LabelSize:   12,
	}
}

// Colors used in rendering
var (
	colorBackground = gg.Hex("#f3f4f6")
	colorGrid       = gg.RGBA2(0, 0, 0, 0.07)
	colorPrimary    = gg.Hex("#2563eb")
	colorAccent     = gg.Hex("#f59e0b")
	colorDanger     = gg.Hex("#dc2626")
	colorHandle     = gg.Hex("#ffffff")
	colorHandleBdr  = gg.Hex("#111827")
	colorLabel      = gg.Hex("#111827")
)

// areaStyle is the fill and border treatment of one rectangle.
type areaStyle struct {
	fill, border gg.RGBA
	dashed       bool
}

func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A = a
	return c
}

func styleFor(t side.AreaType, selected bool) areaStyle {
	switch {
	case t == side.TypeRestriction && selected:
		return areaStyle{withAlpha(colorDanger, 0.30), colorDanger, true}
	case t == side.TypeRestriction:
		return areaStyle{withAlpha(colorDanger, 0.12), withAlpha(colorDanger, 0.65), true}
	case selected:
		return areaStyle{withAlpha(colorAccent, 0.25), colorAccent, true}
	default:
		return areaStyle{withAlpha(colorPrimary, 0.12), withAlpha(colorPrimary, 0.75), true}
	}
}

// Renderer redraws frames. Every call paints the whole surface.
type Renderer struct {
	bounds geom.Bounds
	opts   Options
	images *ImageCache
	face   text.Face
}

// New creates a renderer for a surface of size b. images may be nil, in
// which case template images are never drawn.
func New(b geom.Bounds, images *ImageCache, opts Options) (*Renderer, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", b.Width, b.Height)
	}
	if opts.GridSpacing <= 0 {
		opts.GridSpacing = DefaultOptions().GridSpacing
	}
	if opts.HandleSize <= 0 {
		opts.HandleSize = DefaultOptions().HandleSize
	}
	if opts.LabelSize <= 0 {
		opts.LabelSize = DefaultOptions().LabelSize
	}

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}

	return &Renderer{
		bounds: b,
		opts:   opts,
		images: images,
		face:   src.Face(opts.LabelSize),
	}, nil
}

// Bounds returns the logical surface size.
func (r *Renderer) Bounds() geom.Bounds { return r.bounds }

// Render paints f and returns the finished image at logical resolution.
func (r *Renderer) Render(f Frame) image.Image {
	dc := gg.NewContext(r.bounds.Width, r.bounds.Height)
	defer dc.Close()
	dc.SetFont(r.face)
	r.paint(dc, f)
	_ = dc.FlushGPU()
	return dc.Image()
}

func (r *Renderer) paint(dc *gg.Context, f Frame) {
	w, h := float64(r.bounds.Width), float64(r.bounds.Height)

	// 1. background
	dc.ClearWithColor(colorBackground)

	// 2. template image, if already loaded
	if f.Side != nil && f.Side.Image != "" && r.images != nil {
		if img, ok := r.images.Get(f.Side.Image); ok {
			dc.DrawImageEx(img, gg.DrawImageOptions{
				DstWidth:      w,
				DstHeight:     h,
				Interpolation: gg.InterpBilinear,
			})
		}
	}

	// 3. grid
	r.drawGrid(dc, w, h)

	if f.Side == nil {
		return
	}

	// 4, 5. restriction areas below print areas
	for i, a := range f.Side.RestrictionAreas {
		sel := f.Selection == side.Ref{Type: side.TypeRestriction, Index: i}
		r.drawArea(dc, a.Rect, a.Name, styleFor(side.TypeRestriction, sel))
	}
	for i, a := range f.Side.PrintAreas {
		sel := f.Selection == side.Ref{Type: side.TypePrint, Index: i}
		r.drawArea(dc, a.Rect, a.Name, styleFor(side.TypePrint, sel))
	}

	// 6. the rectangle being drawn
	if f.Drawing {
		c := colorPrimary
		if f.TempType == side.TypeRestriction {
			c = colorDanger
		}
		label := fmt.Sprintf("%d×%d", f.Temp.Width, f.Temp.Height)
		r.drawArea(dc, f.Temp, label, areaStyle{withAlpha(c, 0.08), c, true})
	}

	// 7. handles of the selection
	if a, ok := f.Side.Area(f.Selection); ok {
		r.drawHandles(dc, a.Rect, f.Hover)
	}
}

func (r *Renderer) drawGrid(dc *gg.Context, w, h float64) {
	dc.ClearDash()
	dc.SetLineWidth(1)
	dc.SetRGBA(colorGrid.R, colorGrid.G, colorGrid.B, colorGrid.A)
	step := r.opts.GridSpacing
	for x := step; x < r.bounds.Width; x += step {
		dc.DrawLine(float64(x)+0.5, 0, float64(x)+0.5, h)
	}
	for y := step; y < r.bounds.Height; y += step {
		dc.DrawLine(0, float64(y)+0.5, w, float64(y)+0.5)
	}
	dc.Stroke()
}

func (r *Renderer) drawArea(dc *gg.Context, rect geom.Rect, label string, st areaStyle) {
	x, y := float64(rect.X), float64(rect.Y)
	w, h := float64(rect.Width), float64(rect.Height)

	setColor(dc, st.fill)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	setColor(dc, st.border)
	dc.SetLineWidth(2)
	if st.dashed {
		dc.SetDash(6, 4)
	}
	dc.DrawRectangle(x+1, y+1, w-2, h-2)
	dc.Stroke()
	dc.ClearDash()

	if label != "" {
		setColor(dc, colorLabel)
		dc.DrawString(label, x+4, y+4+r.opts.LabelSize)
	}
}

func (r *Renderer) drawHandles(dc *gg.Context, rect geom.Rect, hover geom.Handle) {
	size := float64(r.opts.HandleSize)
	dc.ClearDash()
	dc.SetLineWidth(1)
	for _, h := range geom.Handles {
		a := geom.Anchor(rect, h)
		x, y := float64(a.X)-size/2, float64(a.Y)-size/2

		fill := colorHandle
		if h == hover {
			fill = colorAccent
		}
		setColor(dc, fill)
		dc.DrawRectangle(x, y, size, size)
		dc.Fill()

		setColor(dc, colorHandleBdr)
		dc.DrawRectangle(x, y, size, size)
		dc.Stroke()
	}
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}
