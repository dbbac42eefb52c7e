package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/printarea/pkg/editor"
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/side"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleSidebar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSidebarSel = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput      = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (app *App) draw() {
	app.screen.Clear()
	w, h := app.screen.Size()

	v := fitViewport(w-app.sidebarWidth-1, h-2, app.ed.Bounds())
	if v != app.view {
		app.view = v
		app.dirty = true
	}

	app.drawCanvas()
	app.drawSidebar(w, h)
	app.drawStatusBar(w, h)

	switch app.mode {
	case ModeInput:
		app.drawInputBox(w, h)
	case ModeHelp:
		app.drawHelp(w, h)
	}
}

func (app *App) drawCanvas() {
	if app.view.empty() {
		return
	}
	if app.dirty || app.raster == nil {
		app.raster = app.view.sample(app.renderer.Render(app.ed.Frame()))
		app.dirty = false
	}

	for cy := 0; cy < app.view.rows; cy++ {
		for cx := 0; cx < app.view.cols; cx++ {
			top := app.raster.RGBAAt(cx, cy*2)
			bottom := app.raster.RGBAAt(cx, cy*2+1)
			app.screen.SetContent(cx, cy, '▀', nil, halfBlock(top, bottom))
		}
	}

	// Names are unreadable at cell resolution, so they are overlaid as text.
	s := app.ed.Side()
	if s == nil {
		return
	}
	for _, t := range []side.AreaType{side.TypeRestriction, side.TypePrint} {
		for _, a := range s.Areas(t) {
			app.drawCanvasLabel(a.Rect, a.Name)
		}
	}
	if st := app.ed.State(); st.Interaction == editor.InteractionDrawing {
		app.drawCanvasLabel(st.Temp, fmt.Sprintf("%d×%d", st.Temp.Width, st.Temp.Height))
	}
}

func (app *App) drawCanvasLabel(r geom.Rect, label string) {
	b := app.ed.Bounds()
	x0, y0 := app.view.cell(geom.Point{X: r.X, Y: r.Y}, b)
	x1, _ := app.view.cell(geom.Point{X: r.Right(), Y: r.Y}, b)
	width := x1 - x0 - 1
	if width < 1 || label == "" {
		return
	}
	for i, ch := range []rune(truncate(label, width)) {
		cx := x0 + 1 + i
		if !app.view.contains(cx, y0) {
			return
		}
		bg := app.raster.RGBAAt(cx, y0*2+1)
		style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcellColor(bg))
		app.screen.SetContent(cx, y0, ch, nil, style)
	}
}

func (app *App) drawSidebar(w, h int) {
	divider := w - app.sidebarWidth - 1
	for y := 0; y < h-2; y++ {
		app.screen.SetContent(divider, y, '│', nil, styleBorder)
	}

	x := divider + 2
	maxLen := app.sidebarWidth - 2
	y := 0
	line := func(s string, style tcell.Style) {
		if y < h-2 {
			app.drawString(x, y, truncate(s, maxLen), style)
		}
		y++
	}

	p := app.ed.Product()
	line(p.Name, styleSidebarH)
	y++

	st := app.ed.State()
	line("Sides:", styleSidebarH)
	for i, sd := range p.Sides {
		style := styleSidebar
		if i == st.SideIndex {
			style = styleSidebarSel
		}
		line(fmt.Sprintf("  %s (%d/%d)", sd.Name, len(sd.PrintAreas), len(sd.RestrictionAreas)), style)
	}
	y++

	line("Tool: "+st.Tool.String(), styleSidebar)
	line("Mode: "+st.Interaction.String(), styleSidebar)
	line("Cursor: "+app.ed.Cursor(), styleSidebar)
	y++

	s := app.ed.Side()
	if s == nil {
		line("No side selected", styleSidebar)
		return
	}
	if s.Image != "" {
		status := ""
		if app.images.Pending(s.Image) {
			status = " (loading)"
		}
		line("Image: "+filepath.Base(s.Image)+status, styleSidebar)
		y++
	}

	line("Selected:", styleSidebarH)
	a, ok := app.ed.SelectedArea()
	if !ok {
		line("  none", styleSidebar)
		return
	}
	r := a.Rect
	line("  "+a.Name, styleSidebar)
	line("  type: "+string(a.Type), styleSidebar)
	line("  id:   "+a.ID, styleSidebar)
	line(fmt.Sprintf("  x: %d  y: %d", r.X, r.Y), styleSidebar)
	line(fmt.Sprintf("  w: %d  h: %d", r.Width, r.Height), styleSidebar)
}

func (app *App) drawStatusBar(w, h int) {
	y := h - 1
	for x := 0; x < w; x++ {
		app.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	fileInfo := "[New]"
	if app.filename != "" {
		fileInfo = filepath.Base(app.filename)
	}
	if app.modified() {
		fileInfo += " *"
	}
	app.drawString(1, y, fileInfo, styleStatus)

	modeStr := strings.ToUpper(app.ed.State().Tool.String())
	app.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if app.message != "" {
		style := styleMsgInfo
		switch app.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		}
		msg := truncate(app.message, w/2-2)
		app.drawString(w-len([]rune(msg))-2, y, msg, style)
	}

	y = h - 2
	for x := 0; x < w; x++ {
		app.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	app.drawString(1, y, truncate(app.helpString(), w-2), styleHelp)
}

func (app *App) helpString() string {
	switch app.mode {
	case ModeInput:
		return "Type text  Enter:Confirm  Esc:Cancel"
	case ModeHelp:
		return "Any key:Close"
	}
	return "s:Select  p:Print  r:Restrict  d:Dup  Del:Delete  n:Name  g:Geometry  Tab:Side  ^Z/^Y:Undo/Redo  ^S:Save  ?:Help  q:Quit"
}

var helpLines = []string{
	"Mouse",
	"  drag with p/r    draw a print/restriction area",
	"  click            select the topmost area",
	"  drag area        move it",
	"  drag handle      resize the selection",
	"",
	"Keys",
	"  s p r            select / draw print / draw restriction",
	"  arrows           nudge (shift: 10px)",
	"  d  Del           duplicate / delete selection",
	"  n  g             rename / edit x y w h",
	"  i                set the side's template image",
	"  Tab  Shift-Tab   next / previous side",
	"  ^Z  ^Y           undo / redo",
	"  ^S  e  v         save / export PNG / validate",
	"  q                quit",
}

func (app *App) drawHelp(w, h int) {
	boxW, boxH := 60, len(helpLines)+4
	boxX, boxY := (w-boxW)/2, (h-boxH)/2
	app.drawBox(boxX, boxY, boxW, boxH, styleInput)
	app.drawString(boxX+2, boxY+1, "Help", styleSidebarH.Background(tcell.ColorNavy))
	for i, l := range helpLines {
		app.drawString(boxX+2, boxY+3+i, truncate(l, boxW-4), styleInput)
	}
}

func (app *App) drawInputBox(w, h int) {
	boxW := 60
	boxH := 3
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	app.drawBox(boxX, boxY, boxW, boxH, styleInput)
	app.drawString(boxX+2, boxY+1, app.inputPrompt, styleInput)
	app.drawString(boxX+2+len([]rune(app.inputPrompt)), boxY+1, app.inputBuffer+"_", styleInput)
}

func (app *App) drawBox(x, y, w, h int, style tcell.Style) {
	app.screen.SetContent(x, y, '┌', nil, styleBorder)
	app.screen.SetContent(x+w-1, y, '┐', nil, styleBorder)
	app.screen.SetContent(x, y+h-1, '└', nil, styleBorder)
	app.screen.SetContent(x+w-1, y+h-1, '┘', nil, styleBorder)

	for i := x + 1; i < x+w-1; i++ {
		app.screen.SetContent(i, y, '─', nil, styleBorder)
		app.screen.SetContent(i, y+h-1, '─', nil, styleBorder)
	}
	for i := y + 1; i < y+h-1; i++ {
		app.screen.SetContent(x, i, '│', nil, styleBorder)
		app.screen.SetContent(x+w-1, i, '│', nil, styleBorder)
	}
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			app.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (app *App) drawString(x, y int, s string, style tcell.Style) {
	i := 0
	for _, r := range s {
		app.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		if maxLen < 0 {
			maxLen = 0
		}
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
