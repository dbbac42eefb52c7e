package editor

import (
	"github.com/ha1tch/printarea/pkg/side"
)

const maxUndoLevels = 50

type opKind int

const (
	opCreate opKind = iota
	opDelete
	opChange
)

// command is one invertible edit. Indices stay valid because commands are
// undone and redone strictly in stack order.
type command struct {
	kind   opKind
	side   int
	ref    side.Ref
	before side.Area // opDelete, opChange
	after  side.Area // opCreate, opChange
}

// History is a bounded undo/redo stack of inverse operations.
type History struct {
	undo    []command
	redo    []command
	version int
}

func (h *History) push(c command) {
	h.version++
	h.undo = append(h.undo, c)
	if len(h.undo) > maxUndoLevels {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// CanUndo reports whether there is a step to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is a step to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Version changes every time an edit is pushed, undone or redone.
func (h *History) Version() int { return h.version }

// Clear drops all steps.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}

// Undo reverts the most recent edit, switching to its side if needed, and
// selects what it touched. It reports false when there is nothing to undo
// or a gesture is in progress.
func (e *Editor) Undo() bool {
	if e.state.Interaction != InteractionNone || !e.history.CanUndo() {
		return false
	}
	h := &e.history
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, c)
	h.version++

	e.apply(c, true)
	return true
}

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() bool {
	if e.state.Interaction != InteractionNone || !e.history.CanRedo() {
		return false
	}
	h := &e.history
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, c)
	h.version++

	e.apply(c, false)
	return true
}

func (e *Editor) apply(c command, inverse bool) {
	if e.state.SideIndex != c.side {
		e.selectSide(c.side)
	}
	if e.model == nil {
		return
	}

	sel := c.ref
	switch {
	case c.kind == opCreate && inverse, c.kind == opDelete && !inverse:
		e.model.RemoveArea(c.ref)
		sel = side.NoRef
	case c.kind == opCreate:
		e.model.InsertArea(c.ref, c.after)
	case c.kind == opDelete:
		e.model.InsertArea(c.ref, c.before)
	case inverse:
		e.model.ReplaceArea(c.ref, c.before)
	default:
		e.model.ReplaceArea(c.ref, c.after)
	}
	e.setSelection(sel)
	e.redraw()
}
