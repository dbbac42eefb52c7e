package geom

// Handle identifies one of the eight resize handles of a rectangle.
type Handle string

const (
	HandleNone   Handle = ""
	HandleTL     Handle = "tl"
	HandleTR     Handle = "tr"
	HandleBL     Handle = "bl"
	HandleBR     Handle = "br"
	HandleTop    Handle = "top"
	HandleRight  Handle = "right"
	HandleBottom Handle = "bottom"
	HandleLeft   Handle = "left"
)

// HandleTolerance is the half-width, in logical pixels, of the square
// window around a handle anchor that counts as a hit.
const HandleTolerance = 6

// Handles lists all handles in hit-test order: corners, then edge midpoints.
var Handles = []Handle{
	HandleTL, HandleTR, HandleBL, HandleBR,
	HandleTop, HandleRight, HandleBottom, HandleLeft,
}

// Valid reports whether h names a real handle.
func (h Handle) Valid() bool {
	switch h {
	case HandleTL, HandleTR, HandleBL, HandleBR,
		HandleTop, HandleRight, HandleBottom, HandleLeft:
		return true
	}
	return false
}

// movesLeftEdge reports whether dragging h moves the rectangle's left
// edge, which means x changes and the right edge is the fixed one.
func (h Handle) movesLeftEdge() bool {
	return h == HandleTL || h == HandleBL || h == HandleLeft
}

// movesTopEdge is the vertical counterpart of movesLeftEdge.
func (h Handle) movesTopEdge() bool {
	return h == HandleTL || h == HandleTR || h == HandleTop
}

// Cursor returns the CSS-style cursor name conventionally shown over h.
func (h Handle) Cursor() string {
	switch h {
	case HandleTL, HandleBR:
		return "nwse-resize"
	case HandleTR, HandleBL:
		return "nesw-resize"
	case HandleTop, HandleBottom:
		return "ns-resize"
	case HandleLeft, HandleRight:
		return "ew-resize"
	}
	return "default"
}

// Anchor returns the anchor point of handle h on r.
func Anchor(r Rect, h Handle) Point {
	midX := r.X + r.Width/2
	midY := r.Y + r.Height/2
	switch h {
	case HandleTL:
		return Point{r.X, r.Y}
	case HandleTR:
		return Point{r.Right(), r.Y}
	case HandleBL:
		return Point{r.X, r.Bottom()}
	case HandleBR:
		return Point{r.Right(), r.Bottom()}
	case HandleTop:
		return Point{midX, r.Y}
	case HandleRight:
		return Point{r.Right(), midY}
	case HandleBottom:
		return Point{midX, r.Bottom()}
	case HandleLeft:
		return Point{r.X, midY}
	}
	return Point{midX, midY}
}

// HandleAt returns the first handle of r whose tolerance window contains p,
// or HandleNone.
func HandleAt(p Point, r Rect, tolerance int) Handle {
	for _, h := range Handles {
		a := Anchor(r, h)
		if abs(p.X-a.X) <= tolerance && abs(p.Y-a.Y) <= tolerance {
			return h
		}
	}
	return HandleNone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
