package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cellux/gradnoise/noise"
)

// Segment is a line from (X0, Y0) to (X1, Y1) in pixel coordinates.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// GridLines returns the cell boundaries of a cols x rows lattice.
func GridLines(cols, rows int, cellSize float64) []Segment {
	w := float64(cols) * cellSize
	h := float64(rows) * cellSize
	lines := make([]Segment, 0, cols+rows+2)
	for cx := 0; cx <= cols; cx++ {
		x := float64(cx) * cellSize
		lines = append(lines, Segment{x, 0, x, h})
	}
	for cy := 0; cy <= rows; cy++ {
		y := float64(cy) * cellSize
		lines = append(lines, Segment{0, y, w, y})
	}
	return lines
}

// Arrow returns the shaft and the two head strokes of an arrow from (x, y)
// along v scaled by length. The head strokes are length/8 long and sit at
// 45 degrees to the shaft.
func Arrow(x, y float64, v mgl64.Vec2, length float64) []Segment {
	tx := x + v[0]*length
	ty := y + v[1]*length
	head := length / 8
	angle := math.Atan2(v[1], v[0])
	r := angle + math.Pi/4
	l := angle - math.Pi/4
	return []Segment{
		{x, y, tx, ty},
		{tx - head*math.Sin(r), ty + head*math.Cos(r), tx, ty},
		{tx + head*math.Sin(l), ty - head*math.Cos(l), tx, ty},
	}
}

// GradientArrows draws every lattice gradient from its corner, one cell
// long.
func GradientArrows(l *noise.Lattice, cellSize float64) []Segment {
	segs := make([]Segment, 0, 3*l.Corners())
	for i, v := range l.Gradients() {
		cx := i % (l.Cols() + 1)
		cy := i / (l.Cols() + 1)
		segs = append(segs, Arrow(float64(cx)*cellSize, float64(cy)*cellSize, v, cellSize)...)
	}
	return segs
}

// ProbeArrows draws the four displacement vectors of p from the corners of
// its cell; every tip lands on the probed point.
func ProbeArrows(p noise.Probe, cellSize float64) []Segment {
	corners := [4][2]int{
		noise.TopLeft:     {0, 0},
		noise.TopRight:    {1, 0},
		noise.BottomLeft:  {0, 1},
		noise.BottomRight: {1, 1},
	}
	segs := make([]Segment, 0, 12)
	for i, c := range corners {
		x := float64(p.CellX+c[0]) * cellSize
		y := float64(p.CellY+c[1]) * cellSize
		segs = append(segs, Arrow(x, y, p.Offsets[i], cellSize)...)
	}
	return segs
}
