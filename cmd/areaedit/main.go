// Command areaedit is a terminal editor for the print and restriction
// areas of a product's sides.
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/ha1tch/printarea/pkg/config"
	"github.com/ha1tch/printarea/pkg/editor"
	"github.com/ha1tch/printarea/pkg/geom"
	"github.com/ha1tch/printarea/pkg/render"
	"github.com/ha1tch/printarea/pkg/side"
	"github.com/ha1tch/printarea/pkg/sidefile"
)

// Mode represents the host's input mode
type Mode int

const (
	ModeCanvas Mode = iota
	ModeInput
	ModeHelp
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// App holds the terminal host state around an editor.Editor.
type App struct {
	screen   tcell.Screen
	config   config.Config
	ed       *editor.Editor
	renderer *render.Renderer
	images   *render.ImageCache

	filename     string
	savedVersion int

	mode        Mode
	message     string
	messageType MessageType

	// Raster of the last rendered frame, sampled to the viewport
	view   viewport
	raster *image.RGBA
	dirty  bool

	// Mouse edge detection
	leftDown bool
	inCanvas bool

	// Input state
	inputPrompt string
	inputBuffer string
	inputAction func(string)

	sidebarWidth int
}

func main() {
	cfg := config.Load()

	logFile, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	app := &App{
		config:       cfg,
		sidebarWidth: 32,
	}

	filename := cfg.LastFile
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}
	product, err := app.open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()
	app.screen = screen

	if err := app.setup(product); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app.run()
	screen.Fini()
}

func setupLogging(cfg config.Config) (*os.File, error) {
	path := ".areaedit.log"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".areaedit.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)
	logrus.SetLevel(cfg.Level())
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return f, nil
}

// open loads path, or returns a blank two-sided product when path is
// empty or does not exist yet.
func (app *App) open(path string) (*side.Product, error) {
	if path != "" {
		p, err := sidefile.ReadFile(path)
		if err == nil {
			app.filename = path
			return p, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
		app.filename = path
	}
	return &side.Product{
		Name:  "Untitled",
		Sides: []side.Side{{Name: "Front"}, {Name: "Back"}},
	}, nil
}

func (app *App) setup(p *side.Product) error {
	loader := render.SchemeLoader{
		Files: render.FileLoader{Dir: app.config.ImageDir},
		HTTP:  render.NewHTTPLoader(app.config.HTTPTimeout),
	}
	app.images = render.NewImageCache(loader)
	app.images.OnLoad = func(string) {
		app.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}

	opts := render.DefaultOptions()
	opts.GridSpacing = app.config.GridSpacing
	r, err := render.New(app.config.Bounds(), app.images, opts)
	if err != nil {
		return err
	}
	app.renderer = r

	app.ed = editor.New(p, app.config.Bounds(), app.config.HandleTolerance, editor.Hooks{
		Committed: func(ref side.Ref) {
			if a, ok := app.ed.SelectedArea(); ok {
				app.showMessage("Created "+a.Name, MsgSuccess)
			}
		},
		Redraw: func(render.Frame) { app.dirty = true },
	})
	app.dirty = true

	logrus.WithFields(logrus.Fields{
		"file":    app.filename,
		"sides":   len(p.Sides),
		"surface": fmt.Sprintf("%dx%d", app.config.SurfaceWidth, app.config.SurfaceHeight),
	}).Info("Editor started")
	return nil
}

func (app *App) run() {
	for {
		app.draw()
		app.screen.Show()

		ev := app.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			app.screen.Sync()
			app.dirty = true
		case *tcell.EventKey:
			if app.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			app.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Template image finished loading
			app.dirty = true
		}
	}
}

func (app *App) modified() bool {
	return app.ed.History().Version() != app.savedVersion
}

func (app *App) handleKey(ev *tcell.EventKey) bool {
	switch app.mode {
	case ModeInput:
		return app.handleInputKey(ev)
	case ModeHelp:
		app.mode = ModeCanvas
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlS:
		app.save()
		return false
	case tcell.KeyCtrlZ:
		if !app.ed.Undo() {
			app.showMessage("Nothing to undo", MsgInfo)
		}
		return false
	case tcell.KeyCtrlY:
		if !app.ed.Redo() {
			app.showMessage("Nothing to redo", MsgInfo)
		}
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		if a, ok := app.ed.SelectedArea(); ok && app.ed.Delete() {
			app.showMessage("Deleted "+a.Name, MsgSuccess)
		}
		return false
	case tcell.KeyTab:
		app.cycleSide(1)
		return false
	case tcell.KeyBacktab:
		app.cycleSide(-1)
		return false
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		app.nudge(ev)
		return false
	case tcell.KeyEscape:
		app.ed.SetTool(editor.ToolSelect)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return app.quit()
	case 's':
		app.ed.SetTool(editor.ToolSelect)
	case 'p':
		app.ed.SetTool(editor.ToolDrawPrint)
	case 'r':
		app.ed.SetTool(editor.ToolDrawRestriction)
	case 'd':
		if app.ed.Duplicate() {
			app.showMessage("Duplicated", MsgSuccess)
		}
	case 'n':
		app.renameSelected()
	case 'g':
		app.editGeometry()
	case 'i':
		app.setImage()
	case 'e':
		app.exportPNG()
	case 'v':
		app.validate()
	case '?':
		app.mode = ModeHelp
	}
	return false
}

func (app *App) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.mode = ModeCanvas
	case tcell.KeyEnter:
		app.mode = ModeCanvas
		if app.inputAction != nil {
			app.inputAction(app.inputBuffer)
		}
		app.inputBuffer = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.inputBuffer) > 0 {
			r := []rune(app.inputBuffer)
			app.inputBuffer = string(r[:len(r)-1])
		}
	case tcell.KeyRune:
		app.inputBuffer += string(ev.Rune())
	}
	return false
}

func (app *App) prompt(label, initial string, action func(string)) {
	app.inputPrompt = label
	app.inputBuffer = initial
	app.inputAction = action
	app.mode = ModeInput
}

func (app *App) handleMouse(ev *tcell.EventMouse) {
	if app.mode != ModeCanvas {
		return
	}
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	inside := app.view.contains(x, y)

	if !inside {
		if app.inCanvas || app.leftDown {
			app.ed.PointerLeave()
		}
		app.inCanvas, app.leftDown = false, false
		return
	}
	app.inCanvas = true

	p := app.ed.Logical(app.pointer(x, y))
	switch {
	case pressed && !app.leftDown:
		app.leftDown = true
		app.ed.PointerDown(p)
	case pressed:
		app.ed.PointerMove(p)
	case app.leftDown:
		app.leftDown = false
		app.ed.PointerMove(p)
		app.ed.PointerUp()
	default:
		app.ed.PointerMove(p)
	}
}

func (app *App) pointer(cx, cy int) (float64, float64, geom.DisplayRect) {
	px, py := app.view.pointer(cx, cy)
	return px, py, app.view.display()
}

func (app *App) cycleSide(step int) {
	n := len(app.ed.Product().Sides)
	if n == 0 {
		return
	}
	i := (app.ed.State().SideIndex + step + n) % n
	app.ed.SelectSide(i)
	app.showMessage("Side: "+app.ed.Side().Name, MsgInfo)
}

func (app *App) nudge(ev *tcell.EventKey) {
	step := 1
	if ev.Modifiers()&tcell.ModShift != 0 {
		step = 10
	}
	switch ev.Key() {
	case tcell.KeyUp:
		app.ed.Nudge(0, -step)
	case tcell.KeyDown:
		app.ed.Nudge(0, step)
	case tcell.KeyLeft:
		app.ed.Nudge(-step, 0)
	case tcell.KeyRight:
		app.ed.Nudge(step, 0)
	}
}

func (app *App) renameSelected() {
	a, ok := app.ed.SelectedArea()
	if !ok {
		app.showMessage("Nothing selected", MsgInfo)
		return
	}
	app.prompt("Rename area: ", a.Name, func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || name == a.Name {
			return
		}
		app.ed.RenameSelected(name)
	})
}

func (app *App) editGeometry() {
	a, ok := app.ed.SelectedArea()
	if !ok {
		app.showMessage("Nothing selected", MsgInfo)
		return
	}
	r := a.Rect
	app.prompt("x y w h: ", fmt.Sprintf("%d %d %d %d", r.X, r.Y, r.Width, r.Height), func(s string) {
		r, err := parseRect(s)
		if err != nil {
			app.showMessage("Error: "+err.Error(), MsgError)
			return
		}
		app.ed.SetSelectedRect(r)
	})
}

// parseRect reads "x y w h" as typed into the geometry prompt.
func parseRect(s string) (geom.Rect, error) {
	var r geom.Rect
	n, err := fmt.Sscanf(s, "%d %d %d %d", &r.X, &r.Y, &r.Width, &r.Height)
	if err != nil || n != 4 {
		return geom.Rect{}, fmt.Errorf("expected four integers, got %q", s)
	}
	return r, nil
}

func (app *App) setImage() {
	s := app.ed.Side()
	if s == nil {
		return
	}
	app.prompt("Template image: ", s.Image, func(ref string) {
		s.Image = strings.TrimSpace(ref)
		app.images.Invalidate()
		app.savedVersion = -1
		app.dirty = true
	})
}

func (app *App) save() {
	if app.filename == "" {
		app.prompt("Save as: ", "product.json", func(path string) {
			if path = strings.TrimSpace(path); path != "" {
				app.filename = path
				app.save()
			}
		})
		return
	}
	if err := sidefile.WriteFile(app.filename, app.ed.Product()); err != nil {
		logrus.WithError(err).WithField("file", app.filename).Error("Save failed")
		app.showMessage("Error: "+err.Error(), MsgError)
		return
	}
	app.savedVersion = app.ed.History().Version()
	app.showMessage("Saved: "+app.filename, MsgSuccess)

	if abs, err := filepath.Abs(app.filename); err == nil {
		app.config.LastFile = abs
		if err := config.Save(app.config); err != nil {
			logrus.WithError(err).Warn("Failed to save config")
		}
	}
}

func (app *App) exportPNG() {
	s := app.ed.Side()
	if s == nil {
		return
	}
	base := strings.TrimSuffix(app.filename, filepath.Ext(app.filename))
	if base == "" {
		base = "product"
	}
	out := fmt.Sprintf("%s-%s.png", base, strings.ToLower(strings.ReplaceAll(s.Name, " ", "-")))

	f, err := os.Create(out)
	if err != nil {
		app.showMessage("Error: "+err.Error(), MsgError)
		return
	}
	defer f.Close()

	start := time.Now()
	if err := app.renderer.WritePNG(f, render.Frame{Side: s, Selection: side.NoRef}, 1); err != nil {
		app.showMessage("Error: "+err.Error(), MsgError)
		return
	}
	logrus.WithFields(logrus.Fields{"file": out, "elapsed": time.Since(start)}).Info("Exported side")
	app.showMessage("Exported: "+out, MsgSuccess)
}

func (app *App) validate() {
	s := app.ed.Side()
	if s == nil {
		return
	}
	v := side.Validate(s, app.ed.Bounds())
	if len(v) == 0 {
		app.showMessage("Side is valid", MsgSuccess)
		return
	}
	app.showMessage(fmt.Sprintf("%d problems: %s", len(v), v[0].Error()), MsgError)
}

func (app *App) quit() bool {
	if !app.modified() {
		return true
	}
	app.prompt("Unsaved changes. Quit anyway? (y/n): ", "", func(s string) {
		if strings.ToLower(strings.TrimSpace(s)) == "y" {
			app.screen.Fini()
			os.Exit(0)
		}
	})
	return false
}

func (app *App) showMessage(msg string, msgType MessageType) {
	app.message = msg
	app.messageType = msgType
}
