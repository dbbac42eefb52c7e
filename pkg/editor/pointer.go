package editor

import (
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// PointerDown starts a gesture at logical point p.
//
// With a draw tool it begins a temp area. With the select tool it starts
// a resize when p is on a handle of the selection, otherwise selects and
// starts moving the topmost area under p, otherwise clears the selection.
func (e *Editor) PointerDown(p geom.Point) {
	if e.model == nil || e.state.Interaction != InteractionNone {
		return
	}

	if t, ok := e.state.Tool.areaType(); ok {
		p = e.bounds.ClampPoint(p)
		e.state.Interaction = InteractionDrawing
		e.state.Anchor = p
		e.state.Temp = geom.Rect{X: p.X, Y: p.Y}
		e.state.TempType = t
		e.redraw()
		return
	}

	if a, ok := e.SelectedArea(); ok {
		if h := geom.HandleAt(p, a.Rect, e.tolerance); h != geom.HandleNone {
			e.state.Interaction = InteractionResizing
			e.state.Handle = h
			e.state.Anchor = p
			e.before = a
			e.redraw()
			return
		}
	}

	ref, ok := e.model.AreaAt(p)
	if !ok {
		e.setSelection(side.NoRef)
		e.redraw()
		return
	}
	e.setSelection(ref)
	a, _ := e.model.Side.Area(ref)
	e.state.Interaction = InteractionMoving
	e.state.Offset = p.Sub(a.Rect.Origin())
	e.before = a
	e.redraw()
}

// PointerMove advances the gesture in progress, or updates hover state
// when there is none.
func (e *Editor) PointerMove(p geom.Point) {
	if e.model == nil {
		return
	}

	switch e.state.Interaction {
	case InteractionDrawing:
		e.state.Temp = geom.RectFromPoints(e.state.Anchor, e.bounds.ClampPoint(p))
	case InteractionMoving:
		e.model.MoveAreaTo(e.state.Selection, p.X-e.state.Offset.X, p.Y-e.state.Offset.Y)
	case InteractionResizing:
		d := p.Sub(e.state.Anchor)
		e.model.ResizeArea(e.state.Selection, e.state.Handle, d.X, d.Y)
		e.state.Anchor = p
	default:
		if e.hover(p) {
			e.redraw()
		}
		return
	}
	e.redraw()
}

// hover records what is under p and reports whether the hovered handle
// changed.
func (e *Editor) hover(p geom.Point) bool {
	_, e.state.OverArea = e.model.AreaAt(p)
	h := geom.HandleNone
	if a, ok := e.SelectedArea(); ok {
		h = geom.HandleAt(p, a.Rect, e.tolerance)
	}
	if h == e.state.Hover {
		return false
	}
	e.state.Hover = h
	return true
}

// PointerUp ends the gesture. A drawn area of at least geom.MinSize on
// both axes is committed, selected, and the tool reverts to select;
// anything smaller is discarded.
func (e *Editor) PointerUp() {
	if e.model == nil || e.state.Interaction == InteractionNone {
		return
	}

	switch e.state.Interaction {
	case InteractionDrawing:
		r, t := e.state.Temp, e.state.TempType
		e.endGesture()
		if r.Width >= geom.MinSize && r.Height >= geom.MinSize {
			ref, _ := e.model.AddArea(t, e.model.Side.DefaultName(t), r)
			a, _ := e.model.Side.Area(ref)
			e.history.push(command{kind: opCreate, side: e.state.SideIndex, ref: ref, after: a})
			e.state.Tool = ToolSelect
			e.setSelection(ref)
			if e.hooks.Committed != nil {
				e.hooks.Committed(ref)
			}
		}

	case InteractionMoving, InteractionResizing:
		before := e.before
		e.endGesture()
		e.recordChange(e.state.Selection, before)
	}
	e.redraw()
}

// PointerLeave ends the gesture as PointerUp does and clears hover.
func (e *Editor) PointerLeave() {
	if e.model == nil {
		return
	}
	e.PointerUp()
	if e.state.Hover != geom.HandleNone || e.state.OverArea {
		e.state.Hover = geom.HandleNone
		e.state.OverArea = false
		e.redraw()
	}
}
