package main

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/ha1tch/printarea/pkg/geom"
)

// viewport is the block of terminal cells showing the surface. Each cell
// carries two vertically stacked pixels drawn with a half-block rune, so
// the display rectangle is cols wide and rows*2 tall.
type viewport struct {
	cols, rows int
}

// fitViewport returns the largest viewport with the surface's aspect
// ratio that fits in cw x ch cells.
func fitViewport(cw, ch int, b geom.Bounds) viewport {
	if cw <= 0 || ch <= 0 || b.Width <= 0 || b.Height <= 0 {
		return viewport{}
	}
	cols := cw
	halves := cols * b.Height / b.Width
	if halves > ch*2 {
		halves = ch * 2
		cols = halves * b.Width / b.Height
	}
	rows := (halves + 1) / 2
	if cols < 1 || rows < 1 {
		return viewport{}
	}
	return viewport{cols: cols, rows: rows}
}

func (v viewport) empty() bool { return v.cols == 0 || v.rows == 0 }

func (v viewport) display() geom.DisplayRect {
	return geom.DisplayRect{Width: float64(v.cols), Height: float64(v.rows * 2)}
}

func (v viewport) contains(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < v.cols && cy < v.rows
}

// pointer returns the display position of the centre of cell (cx, cy).
func (v viewport) pointer(cx, cy int) (float64, float64) {
	return float64(cx) + 0.5, float64(cy*2) + 1
}

// cell returns the cell showing logical point p.
func (v viewport) cell(p geom.Point, b geom.Bounds) (int, int) {
	x, y := geom.ToDisplay(p, v.display(), b.Width, b.Height)
	return int(x), int(y) / 2
}

// sample shrinks a rendered frame to the viewport's pixel grid.
func (v viewport) sample(img image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, v.cols, v.rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// halfBlock returns the style that paints top over bottom in one cell.
func halfBlock(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
}
