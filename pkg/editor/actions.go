package editor

import (
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// busy reports whether an edit outside the pointer machinery must wait.
func (e *Editor) busy() bool {
	return e.model == nil || e.state.Interaction != InteractionNone
}

// Duplicate copies the selected area offset by side.DuplicateOffset and
// selects the copy.
func (e *Editor) Duplicate() bool {
	if e.busy() {
		return false
	}
	ref, ok := e.model.DuplicateArea(e.state.Selection)
	if !ok {
		return false
	}
	a, _ := e.model.Side.Area(ref)
	e.history.push(command{kind: opCreate, side: e.state.SideIndex, ref: ref, after: a})
	e.setSelection(ref)
	e.redraw()
	return true
}

// Delete removes the selected area and resets the canvas state.
func (e *Editor) Delete() bool {
	if e.busy() {
		return false
	}
	ref := e.state.Selection
	a, ok := e.model.Side.Area(ref)
	if !ok {
		return false
	}
	e.model.RemoveArea(ref)
	e.history.push(command{kind: opDelete, side: e.state.SideIndex, ref: ref, before: a})
	e.reset()
	e.redraw()
	return true
}

// Nudge moves the selected area by (dx, dy), kept on the surface.
func (e *Editor) Nudge(dx, dy int) bool {
	if e.busy() {
		return false
	}
	before, ok := e.SelectedArea()
	if !ok {
		return false
	}
	e.model.MoveArea(e.state.Selection, dx, dy)
	e.recordChange(e.state.Selection, before)
	e.redraw()
	return true
}

// RenameSelected sets the selected area's name.
func (e *Editor) RenameSelected(name string) bool {
	if e.busy() {
		return false
	}
	before, ok := e.SelectedArea()
	if !ok {
		return false
	}
	e.model.Rename(e.state.Selection, name)
	e.recordChange(e.state.Selection, before)
	e.redraw()
	return true
}

// SetSelectedRect replaces the selected area's geometry. The value is
// floored at geom.MinSize and kept on the surface.
func (e *Editor) SetSelectedRect(r geom.Rect) bool {
	if e.busy() {
		return false
	}
	before, ok := e.SelectedArea()
	if !ok {
		return false
	}
	e.model.SetRect(e.state.Selection, r)
	e.recordChange(e.state.Selection, before)
	e.redraw()
	return true
}

// recordChange pushes an undo step if the area at ref differs from before.
func (e *Editor) recordChange(ref side.Ref, before side.Area) {
	after, ok := e.model.Side.Area(ref)
	if !ok || after == before {
		return
	}
	e.history.push(command{kind: opChange, side: e.state.SideIndex, ref: ref, before: before, after: after})
}
