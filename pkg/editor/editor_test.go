package editor

import (
	"strings"
	"testing"

	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/render"
	"github.com/ha1tch/printarea/pkg/side"
)

var surface = geom.Bounds{Width: 600, Height: 600}

// recorder counts hook calls.
type recorder struct {
	selections []side.Ref
	commits    []side.Ref
	redraws    int
	last       render.Frame
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		SelectionChanged: func(sel side.Ref) { r.selections = append(r.selections, sel) },
		Committed:        func(ref side.Ref) { r.commits = append(r.commits, ref) },
		Redraw: func(f render.Frame) {
			r.redraws++
			r.last = f
		},
	}
}

func newTestEditor(areas ...side.Area) (*Editor, *recorder) {
	s := side.Side{Name: "Front"}
	for _, a := range areas {
		if a.Type == side.TypeRestriction {
			s.RestrictionAreas = append(s.RestrictionAreas, a)
		} else {
			a.Type = side.TypePrint
			s.PrintAreas = append(s.PrintAreas, a)
		}
	}
	rec := &recorder{}
	e := New(&side.Product{Name: "Shirt", Sides: []side.Side{s}}, surface, 0, rec.hooks())
	return e, rec
}

func area(id string, x, y, w, h int) side.Area {
	return side.Area{ID: id, Name: id, Rect: geom.Rect{X: x, Y: y, Width: w, Height: h}, Type: side.TypePrint}
}

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

func drag(e *Editor, from geom.Point, to ...geom.Point) {
	e.PointerDown(from)
	for _, p := range to {
		e.PointerMove(p)
	}
	e.PointerUp()
}

func TestModeStrings(t *testing.T) {
	if ToolDrawRestriction.String() != "draw-restriction" {
		t.Errorf("Expected draw-restriction, got %s", ToolDrawRestriction)
	}
	if InteractionResizing.String() != "resizing" {
		t.Errorf("Expected resizing, got %s", InteractionResizing)
	}
}

func TestDrawUpLeftCommitsNormalizedArea(t *testing.T) {
	e, rec := newTestEditor()
	e.SetTool(ToolDrawPrint)
	drag(e, pt(50, 50), pt(30, 30), pt(10, 10))

	s := e.Side()
	if len(s.PrintAreas) != 1 {
		t.Fatalf("Expected 1 print area, got %d", len(s.PrintAreas))
	}
	a := s.PrintAreas[0]
	expected := geom.Rect{X: 10, Y: 10, Width: 40, Height: 40}
	if a.Rect != expected {
		t.Errorf("Expected %v, got %v", expected, a.Rect)
	}
	if a.Name != "Print Area 1" {
		t.Errorf("Expected name 'Print Area 1', got %q", a.Name)
	}
	if a.ID == "" {
		t.Error("Committed area has no id")
	}

	st := e.State()
	if st.Tool != ToolSelect {
		t.Errorf("Expected tool to revert to select, got %s", st.Tool)
	}
	if st.Interaction != InteractionNone {
		t.Errorf("Expected interaction none, got %s", st.Interaction)
	}
	want := side.Ref{Type: side.TypePrint, Index: 0}
	if st.Selection != want {
		t.Errorf("Expected selection %v, got %v", want, st.Selection)
	}
	if len(rec.commits) != 1 || rec.commits[0] != want {
		t.Errorf("Expected one commit of %v, got %v", want, rec.commits)
	}
	if len(rec.selections) != 1 || rec.selections[0] != want {
		t.Errorf("Expected one selection change to %v, got %v", want, rec.selections)
	}
	if st.Temp != (geom.Rect{}) || st.Anchor != (geom.Point{}) {
		t.Errorf("Temp area and anchor should be cleared, got %v %v", st.Temp, st.Anchor)
	}
}

func TestDrawBelowFloorIsDiscarded(t *testing.T) {
	tests := []struct {
		name string
		to   geom.Point
	}{
		{"15x30", pt(115, 130)},
		{"30x15", pt(130, 115)},
		{"click", pt(100, 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, rec := newTestEditor()
			e.SetTool(ToolDrawPrint)
			drag(e, pt(100, 100), tc.to)

			if n := len(e.Side().PrintAreas); n != 0 {
				t.Errorf("Expected no area, got %d", n)
			}
			if len(rec.commits) != 0 {
				t.Errorf("Expected no commit, got %v", rec.commits)
			}
			st := e.State()
			if st.Tool != ToolDrawPrint {
				t.Errorf("Tool should stay draw-print after a discarded draw, got %s", st.Tool)
			}
			if st.Interaction != InteractionNone || st.Selection.Valid() {
				t.Errorf("Unexpected state after discard: %+v", st)
			}
		})
	}
}

func TestDrawRestrictionNumbering(t *testing.T) {
	e, _ := newTestEditor(side.Area{ID: "r1", Name: "Seam", Rect: geom.Rect{X: 0, Y: 0, Width: 20, Height: 20}, Type: side.TypeRestriction})
	e.SetTool(ToolDrawRestriction)
	drag(e, pt(100, 100), pt(200, 150))

	s := e.Side()
	if len(s.RestrictionAreas) != 2 {
		t.Fatalf("Expected 2 restriction areas, got %d", len(s.RestrictionAreas))
	}
	got := s.RestrictionAreas[1]
	if got.Name != "Restriction 2" || got.Type != side.TypeRestriction {
		t.Errorf("Unexpected area %+v", got)
	}
	if len(s.PrintAreas) != 0 {
		t.Error("Restriction tool created a print area")
	}
}

func TestDrawIsClampedToSurface(t *testing.T) {
	e, _ := newTestEditor()
	e.SetTool(ToolDrawPrint)
	drag(e, pt(550, 560), pt(900, -40))

	a := e.Side().PrintAreas[0]
	expected := geom.Rect{X: 550, Y: 0, Width: 50, Height: 560}
	if a.Rect != expected {
		t.Errorf("Expected %v, got %v", expected, a.Rect)
	}
}

func TestFrameShowsTempAreaWhileDrawing(t *testing.T) {
	e, rec := newTestEditor()
	e.SetTool(ToolDrawRestriction)
	e.PointerDown(pt(10, 10))
	e.PointerMove(pt(40, 70))

	f := rec.last
	if !f.Drawing || f.TempType != side.TypeRestriction {
		t.Errorf("Expected restriction temp area in frame, got %+v", f)
	}
	if f.Temp != (geom.Rect{X: 10, Y: 10, Width: 30, Height: 60}) {
		t.Errorf("Unexpected temp rect %v", f.Temp)
	}
	if e.Cursor() != "crosshair" {
		t.Errorf("Expected crosshair while drawing, got %s", e.Cursor())
	}

	e.PointerUp()
	if rec.last.Drawing {
		t.Error("Frame after pointer-up should not be drawing")
	}
}

func TestSelectAndMove(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50))

	e.PointerDown(pt(110, 120))
	st := e.State()
	if st.Interaction != InteractionMoving {
		t.Fatalf("Expected moving, got %s", st.Interaction)
	}
	if st.Offset != pt(10, 20) {
		t.Errorf("Expected offset (10,20), got %v", st.Offset)
	}
	if len(rec.selections) != 1 {
		t.Errorf("Expected one selection change, got %d", len(rec.selections))
	}

	e.PointerMove(pt(210, 220))
	if r := e.Side().PrintAreas[0].Rect; r.X != 200 || r.Y != 200 {
		t.Errorf("Expected origin (200,200), got (%d,%d)", r.X, r.Y)
	}

	e.PointerMove(pt(1000, -1000))
	expected := geom.Rect{X: 550, Y: 0, Width: 50, Height: 50}
	if r := e.Side().PrintAreas[0].Rect; r != expected {
		t.Errorf("Expected clamped %v, got %v", expected, r)
	}

	e.PointerUp()
	if e.State().Interaction != InteractionNone {
		t.Errorf("Expected interaction none after up, got %s", e.State().Interaction)
	}
	if !e.Selection().Valid() {
		t.Error("Selection should survive the move")
	}
}

func TestSelectTopmost(t *testing.T) {
	e, _ := newTestEditor(
		area("low", 100, 100, 100, 100),
		area("high", 150, 150, 100, 100),
		side.Area{ID: "r", Rect: geom.Rect{X: 0, Y: 0, Width: 600, Height: 600}, Type: side.TypeRestriction},
	)

	tests := []struct {
		p    geom.Point
		want side.Ref
	}{
		{pt(175, 175), side.Ref{Type: side.TypePrint, Index: 1}},
		{pt(110, 110), side.Ref{Type: side.TypePrint, Index: 0}},
		{pt(500, 500), side.Ref{Type: side.TypeRestriction, Index: 0}},
	}
	for _, tc := range tests {
		drag(e, tc.p)
		if got := e.Selection(); got != tc.want {
			t.Errorf("Click at %v: expected %v, got %v", tc.p, tc.want, got)
		}
	}
}

func TestClickEmptyClearsSelection(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50), area("b", 300, 300, 50, 50))
	drag(e, pt(120, 120))
	drag(e, pt(10, 10))

	if e.Selection().Valid() {
		t.Errorf("Expected no selection, got %v", e.Selection())
	}
	if n := len(rec.selections); n != 2 || rec.selections[1].Valid() {
		t.Errorf("Expected select then clear, got %v", rec.selections)
	}
	if e.State().Interaction != InteractionNone {
		t.Errorf("Expected interaction none, got %s", e.State().Interaction)
	}
}

func TestResizeRelativeToLastAnchor(t *testing.T) {
	e, _ := newTestEditor(area("a", 100, 100, 50, 50))
	drag(e, pt(120, 120))

	e.PointerDown(pt(150, 150))
	st := e.State()
	if st.Interaction != InteractionResizing || st.Handle != geom.HandleBR {
		t.Fatalf("Expected resizing from br, got %s %q", st.Interaction, st.Handle)
	}
	if e.Cursor() != "nwse-resize" {
		t.Errorf("Expected nwse-resize cursor, got %s", e.Cursor())
	}

	e.PointerMove(pt(160, 170))
	expected := geom.Rect{X: 100, Y: 100, Width: 60, Height: 70}
	if r := e.Side().PrintAreas[0].Rect; r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
	if e.State().Anchor != pt(160, 170) {
		t.Errorf("Anchor should follow the pointer, got %v", e.State().Anchor)
	}

	e.PointerMove(pt(170, 170))
	expected.Width = 70
	if r := e.Side().PrintAreas[0].Rect; r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
	e.PointerUp()
}

func TestResizeFloorsAtMinimum(t *testing.T) {
	e, _ := newTestEditor(area("a", 100, 100, 50, 50))
	drag(e, pt(120, 120))
	drag(e, pt(100, 100), pt(400, 400))

	expected := geom.Rect{X: 130, Y: 130, Width: 20, Height: 20}
	if r := e.Side().PrintAreas[0].Rect; r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestHandleBeatsAreaUnderPointer(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50), area("b", 140, 140, 100, 100))
	drag(e, pt(105, 105))
	rec.selections = nil

	e.PointerDown(pt(150, 150))
	if e.State().Interaction != InteractionResizing {
		t.Errorf("Expected resizing, got %s", e.State().Interaction)
	}
	if e.Selection() != (side.Ref{Type: side.TypePrint, Index: 0}) {
		t.Errorf("Selection should stay on a, got %v", e.Selection())
	}
	if len(rec.selections) != 0 {
		t.Errorf("Expected no selection change, got %v", rec.selections)
	}
}

func TestToolChangePreservesSelection(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50))
	drag(e, pt(120, 120))
	before := rec.redraws

	e.SetTool(ToolDrawRestriction)
	if !e.Selection().Valid() {
		t.Error("Selection lost on tool change")
	}
	if rec.redraws != before+1 {
		t.Errorf("Expected a redraw on tool change")
	}
	e.SetTool(ToolDrawRestriction)
	if rec.redraws != before+1 {
		t.Errorf("Setting the same tool should not redraw")
	}
	if e.Cursor() != "crosshair" {
		t.Errorf("Expected crosshair with a draw tool, got %s", e.Cursor())
	}
}

func TestDuplicate(t *testing.T) {
	e, _ := newTestEditor(area("a", 100, 100, 50, 50))
	drag(e, pt(120, 120))

	if !e.Duplicate() {
		t.Fatal("Duplicate returned false")
	}
	s := e.Side()
	if len(s.PrintAreas) != 2 {
		t.Fatalf("Expected 2 areas, got %d", len(s.PrintAreas))
	}
	dup := s.PrintAreas[1]
	expected := geom.Rect{X: 120, Y: 120, Width: 50, Height: 50}
	if dup.Rect != expected {
		t.Errorf("Expected %v, got %v", expected, dup.Rect)
	}
	if dup.ID == "a" || dup.ID == "" {
		t.Errorf("Expected a fresh id, got %q", dup.ID)
	}
	if !strings.HasSuffix(dup.Name, " (Copy)") {
		t.Errorf("Expected ' (Copy)' suffix, got %q", dup.Name)
	}
	if e.Selection() != (side.Ref{Type: side.TypePrint, Index: 1}) {
		t.Errorf("Duplicate should become the selection, got %v", e.Selection())
	}
}

func TestDuplicateNearEdgeIsClamped(t *testing.T) {
	e, _ := newTestEditor(area("a", 560, 560, 40, 40))
	drag(e, pt(580, 580))
	e.Duplicate()

	expected := geom.Rect{X: 560, Y: 560, Width: 40, Height: 40}
	if r := e.Side().PrintAreas[1].Rect; r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestDeleteResetsState(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50), area("b", 300, 300, 50, 50))
	drag(e, pt(120, 120))
	e.SetTool(ToolDrawPrint)

	if !e.Delete() {
		t.Fatal("Delete returned false")
	}
	if e.Selection().Valid() {
		t.Errorf("Expected no selection after delete, got %v", e.Selection())
	}
	st := e.State()
	if st.Tool != ToolSelect || st.Interaction != InteractionNone || st.Hover != geom.HandleNone {
		t.Errorf("Expected full reset, got %+v", st)
	}
	if n := len(e.Side().PrintAreas); n != 1 || e.Side().PrintAreas[0].ID != "b" {
		t.Errorf("Expected only b to remain, got %+v", e.Side().PrintAreas)
	}
	if last := rec.selections[len(rec.selections)-1]; last.Valid() {
		t.Errorf("Expected final selection change to none, got %v", last)
	}
	if e.Delete() {
		t.Error("Delete without selection should report false")
	}
}

func TestNoSideHandlersAreNoops(t *testing.T) {
	rec := &recorder{}
	e := New(&side.Product{}, surface, 0, rec.hooks())

	e.SetTool(ToolDrawPrint)
	rec.redraws = 0
	e.PointerDown(pt(10, 10))
	e.PointerMove(pt(100, 100))
	e.PointerUp()
	e.PointerLeave()

	if rec.redraws != 0 || len(rec.commits) != 0 {
		t.Errorf("Expected no activity without a side, got %d redraws %d commits", rec.redraws, len(rec.commits))
	}
	if e.Duplicate() || e.Delete() || e.Nudge(1, 1) || e.RenameSelected("x") || e.Undo() {
		t.Error("Edit succeeded without a side")
	}
	if e.State().SideIndex != -1 {
		t.Errorf("Expected side index -1, got %d", e.State().SideIndex)
	}
}

func TestSelectSide(t *testing.T) {
	rec := &recorder{}
	p := &side.Product{Sides: []side.Side{
		{Name: "Front", PrintAreas: []side.Area{area("f", 100, 100, 50, 50)}},
		{Name: "Back"},
	}}
	e := New(p, surface, 0, rec.hooks())
	drag(e, pt(120, 120))

	e.SelectSide(1)
	if e.Side().Name != "Back" || e.State().SideIndex != 1 {
		t.Errorf("Expected Back selected, got %+v", e.State())
	}
	if e.Selection().Valid() {
		t.Error("Selection should not survive a side switch")
	}

	e.SelectSide(7)
	if e.Side() != nil {
		t.Error("Out-of-range side should leave no side selected")
	}
	e.PointerDown(pt(120, 120))
	if e.State().Interaction != InteractionNone {
		t.Error("Pointer handlers should no-op without a side")
	}
}

func TestHoverAndCursor(t *testing.T) {
	e, rec := newTestEditor(area("a", 100, 100, 50, 50))
	drag(e, pt(120, 120))

	tests := []struct {
		p      geom.Point
		hover  geom.Handle
		cursor string
	}{
		{pt(151, 149), geom.HandleBR, "nwse-resize"},
		{pt(125, 100), geom.HandleTop, "ns-resize"},
		{pt(130, 130), geom.HandleNone, "move"},
		{pt(400, 400), geom.HandleNone, "default"},
	}
	for _, tc := range tests {
		e.PointerMove(tc.p)
		if e.State().Hover != tc.hover {
			t.Errorf("At %v: expected hover %q, got %q", tc.p, tc.hover, e.State().Hover)
		}
		if e.Cursor() != tc.cursor {
			t.Errorf("At %v: expected cursor %s, got %s", tc.p, tc.cursor, e.Cursor())
		}
	}

	e.PointerMove(pt(150, 150))
	if rec.last.Hover != geom.HandleBR {
		t.Errorf("Frame should carry hovered handle, got %q", rec.last.Hover)
	}
	e.PointerLeave()
	if e.State().Hover != geom.HandleNone {
		t.Errorf("Leave should clear hover, got %q", e.State().Hover)
	}
}

func TestPointerLeaveEndsGesture(t *testing.T) {
	e, rec := newTestEditor()
	e.SetTool(ToolDrawPrint)
	e.PointerDown(pt(10, 10))
	e.PointerMove(pt(60, 60))
	e.PointerLeave()

	if len(rec.commits) != 1 {
		t.Errorf("Expected leave to commit like pointer-up, got %d commits", len(rec.commits))
	}
	if e.State().Interaction != InteractionNone {
		t.Errorf("Expected interaction none, got %s", e.State().Interaction)
	}
}

func TestDownIgnoredDuringGesture(t *testing.T) {
	e, _ := newTestEditor(area("a", 100, 100, 50, 50))
	e.PointerDown(pt(120, 120))
	e.PointerDown(pt(400, 400))

	if e.State().Interaction != InteractionMoving || !e.Selection().Valid() {
		t.Errorf("Second pointer-down should not interrupt the move, got %+v", e.State())
	}
}

func TestNudge(t *testing.T) {
	e, _ := newTestEditor(area("a", 10, 10, 50, 50))
	drag(e, pt(20, 20))

	e.Nudge(-1, 0)
	e.Nudge(-100, 5)
	expected := geom.Rect{X: 0, Y: 15, Width: 50, Height: 50}
	if r := e.Side().PrintAreas[0].Rect; r != expected {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestPanelEdits(t *testing.T) {
	e, _ := newTestEditor(area("a", 10, 10, 50, 50))
	if e.RenameSelected("x") {
		t.Error("Rename without selection should report false")
	}
	drag(e, pt(20, 20))

	e.RenameSelected("Chest")
	e.SetSelectedRect(geom.Rect{X: 590, Y: 100, Width: 5, Height: 700})

	a, _ := e.SelectedArea()
	if a.Name != "Chest" {
		t.Errorf("Expected name Chest, got %q", a.Name)
	}
	expected := geom.Rect{X: 580, Y: 0, Width: 20, Height: 600}
	if a.Rect != expected {
		t.Errorf("Expected %v, got %v", expected, a.Rect)
	}
}

func TestLogical(t *testing.T) {
	e, _ := newTestEditor()
	disp := geom.DisplayRect{Left: 100, Top: 50, Width: 300, Height: 300}
	if p := e.Logical(250, 200, disp); p != pt(300, 300) {
		t.Errorf("Expected (300,300), got %v", p)
	}
}
