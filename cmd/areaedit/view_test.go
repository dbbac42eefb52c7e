package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/ha1tch/printarea/pkg/editor"
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

var surface = geom.Bounds{Width: 600, Height: 600}

// TestFitViewport verifies the canvas keeps the surface aspect ratio
func TestFitViewport(t *testing.T) {
	tests := []struct {
		cw, ch      int
		bounds      geom.Bounds
		cols, rows  int
		description string
	}{
		{100, 50, surface, 100, 50, "exact fit"},
		{200, 30, surface, 60, 30, "height limited"},
		{40, 100, surface, 40, 20, "width limited"},
		{120, 40, geom.Bounds{Width: 600, Height: 300}, 120, 30, "wide surface"},
		{0, 10, surface, 0, 0, "no room"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			v := fitViewport(tt.cw, tt.ch, tt.bounds)
			if v.cols != tt.cols || v.rows != tt.rows {
				t.Errorf("fitViewport(%d,%d): got %dx%d, want %dx%d", tt.cw, tt.ch, v.cols, v.rows, tt.cols, tt.rows)
			}
		})
	}
}

// TestCellMapping verifies cells map to logical points at their centre
func TestCellMapping(t *testing.T) {
	v := viewport{cols: 100, rows: 50}
	tests := []struct {
		cx, cy int
		want   geom.Point
	}{
		{0, 0, geom.Point{X: 3, Y: 6}},
		{50, 25, geom.Point{X: 303, Y: 306}},
		{99, 49, geom.Point{X: 597, Y: 594}},
	}
	for _, tt := range tests {
		px, py := v.pointer(tt.cx, tt.cy)
		got := geom.ToLogical(px, py, v.display(), surface.Width, surface.Height)
		if got != tt.want {
			t.Errorf("cell (%d,%d): got %v, want %v", tt.cx, tt.cy, got, tt.want)
		}
		cx, cy := v.cell(got, surface)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("cell(%v): got (%d,%d), want (%d,%d)", got, cx, cy, tt.cx, tt.cy)
		}
	}

	if v.contains(100, 0) || v.contains(0, 50) || v.contains(-1, 0) {
		t.Error("contains accepted a cell outside the viewport")
	}
}

// TestCellCanHitHandles verifies a terminal cell is fine enough to grab
// every handle of a small area
func TestCellCanHitHandles(t *testing.T) {
	v := viewport{cols: 100, rows: 50}
	r := geom.Rect{X: 100, Y: 100, Width: 60, Height: 60}

	for _, h := range geom.Handles {
		cx, cy := v.cell(geom.Anchor(r, h), surface)
		px, py := v.pointer(cx, cy)
		p := geom.ToLogical(px, py, v.display(), surface.Width, surface.Height)
		if got := geom.HandleAt(p, r, geom.HandleTolerance); got != h {
			t.Errorf("handle %s: cell (%d,%d) maps to %v, hits %q", h, cx, cy, p, got)
		}
	}
}

// TestMouseEdges verifies button state changes drive the pointer gestures
func TestMouseEdges(t *testing.T) {
	ed := editor.New(&side.Product{Sides: []side.Side{{Name: "Front"}}}, surface, 0, editor.Hooks{})
	app := &App{ed: ed, view: viewport{cols: 100, rows: 50}}
	ed.SetTool(editor.ToolDrawPrint)

	press := func(cx, cy int, down bool) {
		p := ed.Logical(app.pointer(cx, cy))
		switch {
		case down && !app.leftDown:
			app.leftDown = true
			ed.PointerDown(p)
		case down:
			ed.PointerMove(p)
		case app.leftDown:
			app.leftDown = false
			ed.PointerMove(p)
			ed.PointerUp()
		}
	}

	press(10, 10, true)
	if ed.State().Interaction != editor.InteractionDrawing {
		t.Fatalf("Expected drawing after press, got %s", ed.State().Interaction)
	}
	press(20, 15, true)
	press(30, 20, false)

	areas := ed.Side().PrintAreas
	if len(areas) != 1 {
		t.Fatalf("Expected 1 area, got %d", len(areas))
	}
	want := geom.Rect{X: 63, Y: 126, Width: 120, Height: 120}
	if areas[0].Rect != want {
		t.Errorf("got %v, want %v", areas[0].Rect, want)
	}
}

func TestSample(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 600, 600))
	red := color.RGBA{200, 0, 0, 255}
	for y := 0; y < 600; y++ {
		for x := 0; x < 600; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	out := viewport{cols: 30, rows: 15}.sample(src)
	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Fatalf("Expected 30x30 sample, got %v", out.Bounds())
	}
	if got := out.RGBAAt(15, 15); got != red {
		t.Errorf("got %v, want %v", got, red)
	}
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("10 20 30 40")
	if err != nil {
		t.Fatal(err)
	}
	if r != (geom.Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("got %v", r)
	}
	if _, err := parseRect("10 20"); err == nil {
		t.Error("Expected error for short input")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Front", 10, "Front"},
		{"Print Area 12", 8, "Print..."},
		{"Print", 2, "Pr"},
		{"×××××", 4, "×..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
