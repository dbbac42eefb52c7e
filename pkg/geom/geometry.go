// Package geom provides the integer geometry of the print-area editing surface:
// logical coordinates, rectangles, surface bounds and resize handles.
package geom

import "math"

// MinSize is the smallest width or height an area rectangle may have.
const MinSize = 20

// Point is a position in logical surface coordinates.
type Point struct {
	X, Y int
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in logical pixels.
// X, Y is the top-left corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// RectFromPoints returns the rectangle spanned by two corner points,
// normalized so that width and height are non-negative.
func RectFromPoints(a, b Point) Rect {
	x, w := a.X, b.X-a.X
	if w < 0 {
		x, w = b.X, -w
	}
	y, h := a.Y, b.Y-a.Y
	if h < 0 {
		y, h = b.Y, -h
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Bounds is the size of the logical surface. Valid rectangles lie within
// [0, Width] x [0, Height].
type Bounds struct {
	Width, Height int
}

// ClampPoint limits p to the surface.
func (b Bounds) ClampPoint(p Point) Point {
	return Point{clampInt(p.X, 0, b.Width), clampInt(p.Y, 0, b.Height)}
}

// ClampOrigin moves r so that it lies fully inside the surface without
// changing its size. A rectangle larger than the surface is pinned at 0.
func (b Bounds) ClampOrigin(r Rect) Rect {
	r.X = clampInt(r.X, 0, b.Width-r.Width)
	r.Y = clampInt(r.Y, 0, b.Height-r.Height)
	return r
}

// Clamp floors the size of r at MinSize, caps it at the surface size and
// then moves it inside the surface.
func (b Bounds) Clamp(r Rect) Rect {
	r = floorSize(r)
	if r.Width > b.Width && b.Width >= MinSize {
		r.Width = b.Width
	}
	if r.Height > b.Height && b.Height >= MinSize {
		r.Height = b.Height
	}
	return b.ClampOrigin(r)
}

// Fits reports whether r satisfies the area invariants on this surface.
func (b Bounds) Fits(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.Right() <= b.Width && r.Bottom() <= b.Height &&
		r.Width >= MinSize && r.Height >= MinSize
}

// DisplayRect is the on-screen bounding box of the surface, in host
// display units.
type DisplayRect struct {
	Left, Top     float64
	Width, Height float64
}

// ToLogical maps a pointer position in display coordinates to logical
// surface coordinates. The result is not clamped to the surface.
// A degenerate display rectangle maps everything to the origin.
func ToLogical(pointerX, pointerY float64, disp DisplayRect, logicalWidth, logicalHeight int) Point {
	if disp.Width <= 0 || disp.Height <= 0 {
		return Point{}
	}
	sx := float64(logicalWidth) / disp.Width
	sy := float64(logicalHeight) / disp.Height
	return Point{
		X: int(math.Round((pointerX - disp.Left) * sx)),
		Y: int(math.Round((pointerY - disp.Top) * sy)),
	}
}

// ToDisplay is the inverse of ToLogical, without rounding.
func ToDisplay(p Point, disp DisplayRect, logicalWidth, logicalHeight int) (x, y float64) {
	if logicalWidth <= 0 || logicalHeight <= 0 {
		return disp.Left, disp.Top
	}
	x = disp.Left + float64(p.X)*disp.Width/float64(logicalWidth)
	y = disp.Top + float64(p.Y)*disp.Height/float64(logicalHeight)
	return x, y
}

func floorSize(r Rect) Rect {
	if r.Width < MinSize {
		r.Width = MinSize
	}
	if r.Height < MinSize {
		r.Height = MinSize
	}
	return r
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
