package noise

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Corner indices used by Probe.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// Field evaluates gradient noise over a lattice at a given cell size in
// pixels. It only reads the lattice.
type Field struct {
	lattice  *Lattice
	cellSize float64
	width    int
	height   int
	workers  int
}

// Probe is the full breakdown of one evaluation, for debug overlays.
type Probe struct {
	X, Y float64
	// owning cell
	CellX, CellY int
	// offset within the cell, in cell units
	FX, FY float64
	// displacement from each corner to the point, in cell units
	Offsets [4]mgl64.Vec2
	// gradient at each corner
	Gradients [4]mgl64.Vec2
	// gradient . displacement per corner
	Dots  [4]float64
	Raw   float64
	Value float64
}

// NewField prepares a field of trunc(cols*cellSize) x trunc(rows*cellSize)
// pixels over l.
func NewField(l *Lattice, cellSize float64) (*Field, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("cell size %v: %w", cellSize, ErrInvalidDimensions)
	}
	width := int(float64(l.cols) * cellSize)
	height := int(float64(l.rows) * cellSize)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("field %dx%d at cell size %v: %w", width, height, cellSize, ErrInvalidDimensions)
	}
	return &Field{
		lattice:  l,
		cellSize: cellSize,
		width:    width,
		height:   height,
		workers:  runtime.GOMAXPROCS(0),
	}, nil
}

func (f *Field) Lattice() *Lattice {
	return f.lattice
}

func (f *Field) CellSize() float64 {
	return f.cellSize
}

// Width is the number of pixel columns produced by EvaluateAll.
func (f *Field) Width() int {
	return f.width
}

// Height is the number of pixel rows produced by EvaluateAll.
func (f *Field) Height() int {
	return f.height
}

// SetWorkers sets how many goroutines EvaluateAll uses. n < 1 means one.
func (f *Field) SetWorkers(n int) {
	f.workers = max(n, 1)
}

// Contains reports whether (x, y) lies in [0, cols*cellSize) x [0, rows*cellSize).
func (f *Field) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 &&
		x < float64(f.lattice.cols)*f.cellSize &&
		y < float64(f.lattice.rows)*f.cellSize
}

// Sample returns the normalized noise value at (x, y).
func (f *Field) Sample(x, y float64) (float64, error) {
	if !f.Contains(x, y) {
		return 0, f.domainError(x, y)
	}
	return f.value(x, y), nil
}

// Probe evaluates (x, y) and returns every intermediate of the computation.
func (f *Field) Probe(x, y float64) (Probe, error) {
	if !f.Contains(x, y) {
		return Probe{}, f.domainError(x, y)
	}
	p := Probe{X: x, Y: y}
	p.CellX, p.CellY, p.FX, p.FY = f.locate(x, y)
	p.Offsets = offsets(p.FX, p.FY)
	p.Gradients = f.corners(p.CellX, p.CellY)
	p.Dots = dots(p.Gradients, p.Offsets)
	p.Raw = blend(p.Dots, p.FX, p.FY)
	p.Value = Normalize(p.Raw)
	return p, nil
}

// EvaluateAll samples every pixel (px, py) at the point (px, py) and
// returns the values indexed [py][px]. Rows are split into contiguous bands,
// one per worker.
func (f *Field) EvaluateAll() [][]float64 {
	values := make([][]float64, f.height)
	backing := make([]float64, f.width*f.height)
	for py := range values {
		values[py] = backing[py*f.width : (py+1)*f.width]
	}
	workers := min(f.workers, f.height)
	band := (f.height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < f.height; y0 += band {
		y1 := min(y0+band, f.height)
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.fillRows(values, y0, y1)
		}()
	}
	wg.Wait()
	return values
}

func (f *Field) fillRows(values [][]float64, y0, y1 int) {
	for py := y0; py < y1; py++ {
		row := values[py]
		for px := range row {
			row[px] = f.value(float64(px), float64(py))
		}
	}
}

// value is the single evaluation path behind EvaluateAll, Sample and Probe.
func (f *Field) value(x, y float64) float64 {
	cx, cy, fx, fy := f.locate(x, y)
	d := dots(f.corners(cx, cy), offsets(fx, fy))
	return Normalize(blend(d, fx, fy))
}

func (f *Field) locate(x, y float64) (cx, cy int, fx, fy float64) {
	cx = min(int(math.Floor(x/f.cellSize)), f.lattice.cols-1)
	cy = min(int(math.Floor(y/f.cellSize)), f.lattice.rows-1)
	fx = (x - float64(cx)*f.cellSize) / f.cellSize
	fy = (y - float64(cy)*f.cellSize) / f.cellSize
	return
}

func (f *Field) corners(cx, cy int) [4]mgl64.Vec2 {
	l := f.lattice
	return [4]mgl64.Vec2{
		TopLeft:     l.at(cx, cy),
		TopRight:    l.at(cx+1, cy),
		BottomLeft:  l.at(cx, cy+1),
		BottomRight: l.at(cx+1, cy+1),
	}
}

func (f *Field) domainError(x, y float64) error {
	return fmt.Errorf("point (%v,%v) outside [0,%v)x[0,%v): %w", x, y,
		float64(f.lattice.cols)*f.cellSize, float64(f.lattice.rows)*f.cellSize, ErrOutOfDomain)
}

func offsets(fx, fy float64) [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{
		TopLeft:     {fx, fy},
		TopRight:    {fx - 1, fy},
		BottomLeft:  {fx, fy - 1},
		BottomRight: {fx - 1, fy - 1},
	}
}

func dots(gradients, offsets [4]mgl64.Vec2) [4]float64 {
	var d [4]float64
	for i := range d {
		d[i] = gradients[i].Dot(offsets[i])
	}
	return d
}

func blend(d [4]float64, fx, fy float64) float64 {
	u := Fade(fx)
	top := Lerp(d[TopLeft], d[TopRight], u)
	bottom := Lerp(d[BottomLeft], d[BottomRight], u)
	return Lerp(top, bottom, Fade(fy))
}
