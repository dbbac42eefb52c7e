// Package editor implements the print-area interaction controller: tool
// modes, the pointer gesture state machine that creates, selects, moves
// and resizes areas, and the side-panel style edits around it.
//
// An Editor is driven from a single goroutine. It never blocks and never
// fails: gestures that cannot apply simply have no effect.
package editor

import (
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/render"
	"github.com/ha1tch/printarea/pkg/side"
)

// ToolMode is the gesture intent chosen by the user.
type ToolMode int

const (
	ToolSelect ToolMode = iota
	ToolDrawPrint
	ToolDrawRestriction
)

func (m ToolMode) String() string {
	switch m {
	case ToolSelect:
		return "select"
	case ToolDrawPrint:
		return "draw-print"
	case ToolDrawRestriction:
		return "draw-restriction"
	}
	return "unknown"
}

// areaType returns the type of area a draw tool creates.
func (m ToolMode) areaType() (side.AreaType, bool) {
	switch m {
	case ToolDrawPrint:
		return side.TypePrint, true
	case ToolDrawRestriction:
		return side.TypeRestriction, true
	}
	return "", false
}

// InteractionMode is the phase of the gesture in progress.
type InteractionMode int

const (
	InteractionNone InteractionMode = iota
	InteractionDrawing
	InteractionMoving
	InteractionResizing
)

func (m InteractionMode) String() string {
	switch m {
	case InteractionNone:
		return "none"
	case InteractionDrawing:
		return "drawing"
	case InteractionMoving:
		return "moving"
	case InteractionResizing:
		return "resizing"
	}
	return "unknown"
}

// State is the transient canvas state. It is never persisted.
type State struct {
	SideIndex   int // -1 when no side is selected
	Tool        ToolMode
	Interaction InteractionMode
	Selection   side.Ref

	Anchor geom.Point  // drag anchor; last pointer position while resizing
	Offset geom.Point  // pointer minus area origin while moving
	Handle geom.Handle // handle being dragged

	Temp     geom.Rect // in-progress area while drawing
	TempType side.AreaType

	Hover    geom.Handle // handle of the selection under the pointer
	OverArea bool        // pointer is over some area
}

// Hooks are the signals an Editor sends to its host. Any may be nil.
type Hooks struct {
	// SelectionChanged fires when the selected area changes, including
	// to none.
	SelectionChanged func(sel side.Ref)

	// Committed fires after a draw gesture creates an area.
	Committed func(ref side.Ref)

	// Redraw fires after every state-affecting operation with the frame
	// to paint.
	Redraw func(f render.Frame)
}

// Editor owns the canvas state for one product.
type Editor struct {
	product   *side.Product
	bounds    geom.Bounds
	tolerance int
	hooks     Hooks

	state   State
	model   *side.Model // nil when no side is selected
	history History

	// before holds the selected area as it was when a move or resize
	// gesture began.
	before side.Area
}

// New returns an editor over p on a surface of size b, with the first
// side selected. A non-positive tolerance uses geom.HandleTolerance.
func New(p *side.Product, b geom.Bounds, tolerance int, hooks Hooks) *Editor {
	if p == nil {
		p = &side.Product{}
	}
	if tolerance <= 0 {
		tolerance = geom.HandleTolerance
	}
	e := &Editor{
		product:   p,
		bounds:    b,
		tolerance: tolerance,
		hooks:     hooks,
	}
	e.selectSide(0)
	return e
}

// Product returns the product being edited.
func (e *Editor) Product() *side.Product { return e.product }

// Bounds returns the logical surface size.
func (e *Editor) Bounds() geom.Bounds { return e.bounds }

// State returns a copy of the canvas state.
func (e *Editor) State() State { return e.state }

// Side returns the current side, or nil.
func (e *Editor) Side() *side.Side {
	if e.model == nil {
		return nil
	}
	return e.model.Side
}

// Selection returns the selected area reference, or side.NoRef.
func (e *Editor) Selection() side.Ref { return e.state.Selection }

// SelectedArea returns a copy of the selected area.
func (e *Editor) SelectedArea() (side.Area, bool) {
	if e.model == nil {
		return side.Area{}, false
	}
	return e.model.Side.Area(e.state.Selection)
}

// History returns the undo history.
func (e *Editor) History() *History { return &e.history }

// Logical maps a host pointer position to surface coordinates. The result
// is not clamped.
func (e *Editor) Logical(px, py float64, disp geom.DisplayRect) geom.Point {
	return geom.ToLogical(px, py, disp, e.bounds.Width, e.bounds.Height)
}

// Frame returns what the renderer needs to paint the current state.
func (e *Editor) Frame() render.Frame {
	f := render.Frame{
		Side:      e.Side(),
		Selection: e.state.Selection,
		Hover:     e.state.Hover,
	}
	if e.state.Interaction == InteractionDrawing {
		f.Drawing = true
		f.Temp = e.state.Temp
		f.TempType = e.state.TempType
	}
	return f
}

// Cursor returns a CSS-style cursor name for the pointer's last position.
func (e *Editor) Cursor() string {
	switch e.state.Interaction {
	case InteractionDrawing:
		return "crosshair"
	case InteractionMoving:
		return "move"
	case InteractionResizing:
		return e.state.Handle.Cursor()
	}
	if e.model == nil {
		return "default"
	}
	if _, ok := e.state.Tool.areaType(); ok {
		return "crosshair"
	}
	if e.state.Hover != geom.HandleNone {
		return e.state.Hover.Cursor()
	}
	if e.state.OverArea {
		return "move"
	}
	return "default"
}

// SelectSide switches to side i of the product. Any gesture and the
// selection are dropped. An out-of-range index leaves no side selected,
// and pointer handlers then do nothing.
func (e *Editor) SelectSide(i int) {
	e.selectSide(i)
	e.redraw()
}

func (e *Editor) selectSide(i int) {
	prev := e.state.Selection
	tool := e.state.Tool
	e.state = State{SideIndex: -1, Tool: tool, Selection: side.NoRef}
	e.model = nil
	if s := e.product.Side(i); s != nil {
		e.state.SideIndex = i
		e.model = side.NewModel(s, e.bounds)
	}
	if prev.Valid() {
		e.selectionChanged()
	}
}

// SetTool changes the tool mode. The selection is kept.
func (e *Editor) SetTool(m ToolMode) {
	if e.state.Tool == m {
		return
	}
	e.state.Tool = m
	e.redraw()
}

func (e *Editor) setSelection(r side.Ref) {
	if e.state.Selection == r {
		return
	}
	e.state.Selection = r
	e.state.Hover = geom.HandleNone
	e.selectionChanged()
}

func (e *Editor) selectionChanged() {
	if e.hooks.SelectionChanged != nil {
		e.hooks.SelectionChanged(e.state.Selection)
	}
}

func (e *Editor) redraw() {
	if e.hooks.Redraw != nil {
		e.hooks.Redraw(e.Frame())
	}
}

// endGesture resets interaction state after pointer-up.
func (e *Editor) endGesture() {
	e.state.Interaction = InteractionNone
	e.state.Temp = geom.Rect{}
	e.state.TempType = ""
	e.state.Anchor = geom.Point{}
	e.state.Offset = geom.Point{}
	e.state.Handle = geom.HandleNone
	e.before = side.Area{}
}

// reset clears every piece of canvas state except the current side.
func (e *Editor) reset() {
	e.endGesture()
	e.state.Tool = ToolSelect
	e.state.Hover = geom.HandleNone
	e.state.OverArea = false
	e.setSelection(side.NoRef)
}
