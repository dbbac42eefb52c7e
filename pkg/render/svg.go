package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/gogpu/gg"

	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// SVG returns the frame as an SVG document, painted in the same order
// and colours as the raster pipeline. The template image is referenced,
// not embedded.
func (r *Renderer) SVG(f Frame) string {
	var sb strings.Builder
	w, h := r.bounds.Width, r.bounds.Height

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", w, h, w, h))
	sb.WriteString(fmt.Sprintf(`  <rect width="%d" height="%d" fill="%s"/>`+"\n", w, h, svgColor(colorBackground)))

	if f.Side != nil && f.Side.Image != "" {
		sb.WriteString(fmt.Sprintf(`  <image href="%s" x="0" y="0" width="%d" height="%d" preserveAspectRatio="none"/>`+"\n",
			html.EscapeString(f.Side.Image), w, h))
	}

	sb.WriteString(fmt.Sprintf(`  <g stroke="%s" stroke-opacity="%.2f" stroke-width="1">`+"\n", svgColor(colorGrid), colorGrid.A))
	for x := r.opts.GridSpacing; x < w; x += r.opts.GridSpacing {
		sb.WriteString(fmt.Sprintf(`    <line x1="%d" y1="0" x2="%d" y2="%d"/>`+"\n", x, x, h))
	}
	for y := r.opts.GridSpacing; y < h; y += r.opts.GridSpacing {
		sb.WriteString(fmt.Sprintf(`    <line x1="0" y1="%d" x2="%d" y2="%d"/>`+"\n", y, w, y))
	}
	sb.WriteString("  </g>\n")

	if f.Side != nil {
		for i, a := range f.Side.RestrictionAreas {
			sel := f.Selection == side.Ref{Type: side.TypeRestriction, Index: i}
			writeSVGArea(&sb, a.Rect, a.Name, styleFor(side.TypeRestriction, sel), r.opts.LabelSize)
		}
		for i, a := range f.Side.PrintAreas {
			sel := f.Selection == side.Ref{Type: side.TypePrint, Index: i}
			writeSVGArea(&sb, a.Rect, a.Name, styleFor(side.TypePrint, sel), r.opts.LabelSize)
		}
		if f.Drawing {
			c := colorPrimary
			if f.TempType == side.TypeRestriction {
				c = colorDanger
			}
			label := fmt.Sprintf("%d×%d", f.Temp.Width, f.Temp.Height)
			writeSVGArea(&sb, f.Temp, label, areaStyle{withAlpha(c, 0.08), c, true}, r.opts.LabelSize)
		}
		if a, ok := f.Side.Area(f.Selection); ok {
			size := r.opts.HandleSize
			for _, hd := range geom.Handles {
				p := geom.Anchor(a.Rect, hd)
				fill := colorHandle
				if hd == f.Hover {
					fill = colorAccent
				}
				sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s"/>`+"\n",
					p.X-size/2, p.Y-size/2, size, size, svgColor(fill), svgColor(colorHandleBdr)))
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes the SVG document for f to w.
func (r *Renderer) WriteSVG(w io.Writer, f Frame) error {
	_, err := io.WriteString(w, r.SVG(f))
	return err
}

func writeSVGArea(sb *strings.Builder, rect geom.Rect, label string, st areaStyle, labelSize float64) {
	dash := ""
	if st.dashed {
		dash = ` stroke-dasharray="6 4"`
	}
	sb.WriteString(fmt.Sprintf(`  <rect x="%d" y="%d" width="%d" height="%d" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-opacity="%.2f" stroke-width="2"%s/>`+"\n",
		rect.X, rect.Y, rect.Width, rect.Height,
		svgColor(st.fill), st.fill.A, svgColor(st.border), st.border.A, dash))
	if label != "" {
		sb.WriteString(fmt.Sprintf(`  <text x="%d" y="%.0f" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
			rect.X+4, float64(rect.Y)+4+labelSize, labelSize, svgColor(colorLabel), html.EscapeString(label)))
	}
}

func svgColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}
