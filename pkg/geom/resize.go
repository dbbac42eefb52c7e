package geom

// Resize applies a handle drag of (dx, dy) to r and returns the new rectangle.
//
// The edge or corner opposite the handle stays fixed. The transform is
// applied first, then width and height are floored at MinSize (an origin
// that moves with the handle is capped so the fixed edge does not move),
// and finally the rectangle is clamped inside b. An unknown handle
// returns r unchanged.
func Resize(r Rect, h Handle, dx, dy int, b Bounds) Rect {
	out := r
	switch h {
	case HandleBR:
		out.Width += dx
		out.Height += dy
	case HandleBL:
		out.Width -= dx
		out.Height += dy
		out.X += dx
	case HandleTR:
		out.Width += dx
		out.Height -= dy
		out.Y += dy
	case HandleTL:
		out.Width -= dx
		out.Height -= dy
		out.X += dx
		out.Y += dy
	case HandleTop:
		out.Height -= dy
		out.Y += dy
	case HandleBottom:
		out.Height += dy
	case HandleLeft:
		out.Width -= dx
		out.X += dx
	case HandleRight:
		out.Width += dx
	default:
		return r
	}

	if out.Width < MinSize {
		if h.movesLeftEdge() {
			out.X = r.X + r.Width - MinSize
		}
		out.Width = MinSize
	}
	if out.Height < MinSize {
		if h.movesTopEdge() {
			out.Y = r.Y + r.Height - MinSize
		}
		out.Height = MinSize
	}

	return b.Clamp(out)
}
