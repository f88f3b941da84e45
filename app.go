package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/cellux/gradnoise/internal/config"
	"github.com/cellux/gradnoise/internal/glyphs"
	"github.com/cellux/gradnoise/internal/render"
	"github.com/cellux/gradnoise/noise"
)

const (
	fontSize      = 12
	atlasCols     = 16
	readoutLines  = 7
	readoutMargin = 4
)

var (
	gridColor   = [4]float32{1, 0, 0, 1}
	vectorColor = [4]float32{0, 0, 0, 1}
	probeColor  = [4]float32{0, 0.6, 0, 1}
	textColor   = [4]float32{0, 0, 0, 1}
	errorColor  = [4]float32{0.8, 0, 0, 1}
)

var cornerNames = [4]string{
	noise.TopLeft:     "TL",
	noise.TopRight:    "TR",
	noise.BottomLeft:  "BL",
	noise.BottomRight: "BR",
}

// App is the interactive viewer: a heat map of the field with overlays and
// a readout of the noise computation under the cursor.
type App struct {
	cfg        config.Config
	palette    render.Palette
	field      *noise.Field
	values     [][]float64
	gridSegs   []render.Segment
	vectorSegs []render.Segment

	showGrid    bool
	showVectors bool
	showNoise   bool

	atlas  *glyphs.Atlas
	tm     *TileMap
	text   *TileDrawList
	heat   *HeatMapDisplay
	lines  *LineDisplay
	keyMap KeyMap
	cursor mgl64.Vec2
	probe  *noise.Probe
	heatOK bool

	lastError  error
	shouldExit bool
}

// CreateApp prepares a viewer for f. The glyph atlas is rasterized here so
// the window can be sized for the readout before GL is up.
func CreateApp(cfg config.Config, f *noise.Field) (*App, error) {
	palette, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, err
	}
	atlas, err := glyphs.New(gomono.TTF, fontSize, atlasCols)
	if err != nil {
		return nil, err
	}
	app := &App{
		cfg:         cfg,
		palette:     palette,
		showGrid:    cfg.Grid,
		showVectors: cfg.Vectors,
		showNoise:   true,
		atlas:       atlas,
	}
	app.setField(f)
	return app, nil
}

func (app *App) lineHeight() int {
	return app.atlas.Cell.Y
}

// WindowSize is the field plus the shift margin on every side, with room for
// the readout underneath.
func (app *App) WindowSize() (int, int) {
	shift := int(app.cfg.Shift)
	w := app.field.Width() + 2*shift
	h := app.field.Height() + 2*shift + readoutLines*app.lineHeight() + 2*readoutMargin
	return w, h
}

func (app *App) origin() Point {
	shift := int(app.cfg.Shift)
	return Point{X: shift, Y: shift}
}

func (app *App) setField(f *noise.Field) {
	app.field = f
	app.values = f.EvaluateAll()
	app.gridSegs = render.GridLines(f.Lattice().Cols(), f.Lattice().Rows(), f.CellSize())
	app.vectorSegs = render.GradientArrows(f.Lattice(), f.CellSize())
	app.probe = nil
	app.heatOK = false
}

func (app *App) SetLastError(err error) {
	app.lastError = err
	if err != nil {
		logger.Error("viewer", "error", err)
	}
}

func (app *App) ClearLastError() {
	app.lastError = nil
}

func (app *App) Init() error {
	tm, err := CreateTileMap(app.atlas)
	if err != nil {
		return err
	}
	app.tm = tm
	app.text = tm.CreateDrawList()
	heat, err := CreateHeatMapDisplay()
	if err != nil {
		return err
	}
	app.heat = heat
	lines, err := CreateLineDisplay()
	if err != nil {
		return err
	}
	app.lines = lines

	keyMap := CreateKeyMap()
	keyMap.Bind("Escape", app.Quit)
	keyMap.Bind("C-q", app.Quit)
	keyMap.Bind("r", app.Reseed)
	keyMap.Bind("g", func() { app.showGrid = !app.showGrid })
	keyMap.Bind("v", func() { app.showVectors = !app.showVectors })
	keyMap.Bind("n", func() { app.showNoise = !app.showNoise })
	keyMap.Bind("C-c", app.CopySeed)
	keyMap.Bind("C-S-c", app.CopyReadout)
	keyMap.Bind("s", app.SavePNG)
	app.keyMap = keyMap
	return nil
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func (app *App) Quit() {
	app.shouldExit = true
}

// Reseed replaces the lattice with one drawn from a fresh clock seed. The
// geometry stays the same.
func (app *App) Reseed() {
	seed := noise.TimeSeed()
	l, err := noise.NewLattice(app.cfg.Cols, app.cfg.Rows, seed)
	if err != nil {
		app.SetLastError(err)
		return
	}
	f, err := noise.NewField(l, app.cfg.CellSize)
	if err != nil {
		app.SetLastError(err)
		return
	}
	f.SetWorkers(app.cfg.Workers)
	app.setField(f)
	logger.Info("reseeded", "seed", seed)
}

func (app *App) seed() uint64 {
	return app.field.Lattice().Seed()
}

func (app *App) CopySeed() {
	if err := clipboard.WriteAll(strconv.FormatUint(app.seed(), 10)); err != nil {
		app.SetLastError(err)
	}
}

func (app *App) CopyReadout() {
	if err := clipboard.WriteAll(strings.Join(app.readout(), "\n")); err != nil {
		app.SetLastError(err)
	}
}

func (app *App) SavePNG() {
	path := fmt.Sprintf("gradnoise-%d.png", app.seed())
	opts := render.Options{
		Palette: app.palette,
		Grid:    app.showGrid,
		Vectors: app.showVectors,
		Scale:   app.cfg.Scale,
	}
	if err := render.SavePNG(path, app.field, app.values, opts); err != nil {
		app.SetLastError(err)
		return
	}
	logger.Info("saved", "path", path)
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, modes glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	var keyName string
	switch key {
	case glfw.KeyLeftShift, glfw.KeyLeftControl, glfw.KeyLeftAlt, glfw.KeyLeftSuper:
		return
	case glfw.KeyRightShift, glfw.KeyRightControl, glfw.KeyRightAlt, glfw.KeyRightSuper:
		return
	case glfw.KeySpace:
		keyName = "Space"
	case glfw.KeyEscape:
		keyName = "Escape"
	case glfw.KeyEnter:
		keyName = "Enter"
	default:
		keyName = glfw.GetKeyName(key, scancode)
	}
	if keyName == "" {
		return
	}
	if modes&glfw.ModShift != 0 {
		keyName = "S-" + keyName
	}
	if modes&glfw.ModAlt != 0 {
		keyName = "M-" + keyName
	}
	if modes&glfw.ModControl != 0 {
		keyName = "C-" + keyName
	}
	app.ClearLastError()
	if !app.keyMap.HandleKey(keyName) {
		logger.Debug("unbound key", "key", keyName)
	}
}

func (app *App) OnCursorPos(x, y float64) {
	app.cursor = mgl64.Vec2{x, y}
}

func (app *App) OnFramebufferSize(width, height int) {
	logger.Debug("framebuffer resized", "width", width, "height", height)
}

func (app *App) BgColor() (r, g, b, a float32) {
	return 1, 1, 1, 1
}

// Update refreshes the probe under the cursor.
func (app *App) Update() error {
	o := app.origin()
	x := app.cursor[0] - float64(o.X)
	y := app.cursor[1] - float64(o.Y)
	if !app.field.Contains(x, y) {
		app.probe = nil
		return nil
	}
	p, err := app.field.Probe(x, y)
	if err != nil {
		return err
	}
	app.probe = &p
	return nil
}

func (app *App) Render() error {
	o := app.origin()
	if !app.heatOK {
		if err := app.heat.SetImage(render.HeatMap(app.values, app.palette)); err != nil {
			return err
		}
		app.heatOK = true
	}
	if app.showNoise {
		app.heat.Render(o)
	}
	if app.showGrid {
		app.lines.Render(app.gridSegs, o, gridColor)
	}
	if app.showVectors {
		app.lines.Render(app.vectorSegs, o, vectorColor)
	}
	if app.probe != nil {
		app.lines.Render(render.ProbeArrows(*app.probe, app.field.CellSize()), o, probeColor)
	}

	app.text.Clear()
	lh := app.lineHeight()
	y0 := app.field.Height() + 2*o.Y + readoutMargin
	for i, line := range app.readout() {
		app.text.DrawString(readoutMargin, y0+i*lh, line)
	}
	if err := app.text.Render(textColor); err != nil {
		return err
	}
	if app.lastError != nil {
		app.text.Clear()
		app.text.DrawString(readoutMargin, readoutMargin, app.lastError.Error())
		return app.text.Render(errorColor)
	}
	return nil
}

// readout describes the computation at the cursor, one line per item.
func (app *App) readout() []string {
	lines := []string{fmt.Sprintf("seed %d", app.seed())}
	p := app.probe
	if p == nil {
		return append(lines, "cursor outside the field")
	}
	lines = append(lines, fmt.Sprintf("pos %.1f, %.1f  cell %d, %d", p.X, p.Y, p.CellX, p.CellY))
	for i, v := range p.Offsets {
		lines = append(lines, fmt.Sprintf("%s %s", cornerNames[i], formatVec(v)))
	}
	return append(lines, fmt.Sprintf("noise %.4f", p.Value))
}

// formatVec renders v as x, y, angle (radians) and magnitude.
func formatVec(v mgl64.Vec2) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f, %.3f", v[0], v[1], math.Atan2(v[1], v[0]), v.Len())
}

func (app *App) Close() {
	if app.lines != nil {
		app.lines.Close()
	}
	if app.heat != nil {
		app.heat.Close()
	}
	if app.tm != nil {
		app.tm.Close()
	}
}
