package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/cellux/gradnoise/noise"
)

var (
	gridColor  = gg.RGB(1, 0, 0)
	arrowColor = gg.RGB(0, 0, 0)
)

// Options control what Draw puts on the picture.
type Options struct {
	Palette Palette
	Grid    bool
	Vectors bool
	// Scale is the integer upsampling factor; values below 1 mean 1.
	Scale int
}

// Draw paints values as a heat map and strokes the requested overlays on
// top. values must come from f.EvaluateAll. The caller owns the returned
// context and must Close it.
func Draw(f *noise.Field, values [][]float64, opts Options) (*gg.Context, error) {
	if len(values) != f.Height() || (len(values) > 0 && len(values[0]) != f.Width()) {
		return nil, fmt.Errorf("values do not match a %dx%d field", f.Width(), f.Height())
	}
	scale := max(opts.Scale, 1)
	heat := HeatMap(values, opts.Palette)
	if scale > 1 {
		heat = Upscale(heat, scale)
	}
	dc := gg.NewContextForImage(heat)
	cellSize := f.CellSize() * float64(scale)
	l := f.Lattice()
	dc.SetLineWidth(1)
	if opts.Grid {
		if err := stroke(dc, GridLines(l.Cols(), l.Rows(), cellSize), gridColor); err != nil {
			dc.Close()
			return nil, err
		}
	}
	if opts.Vectors {
		if err := stroke(dc, GradientArrows(l, cellSize), arrowColor); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// WritePNG encodes the rendered field to w.
func WritePNG(w io.Writer, f *noise.Field, values [][]float64, opts Options) error {
	dc, err := Draw(f, values, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG writes the rendered field to the file at path.
func SavePNG(path string, f *noise.Field, values [][]float64, opts Options) error {
	dc, err := Draw(f, values, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}

func stroke(dc *gg.Context, segs []Segment, col gg.RGBA) error {
	if len(segs) == 0 {
		return nil
	}
	dc.SetRGB(col.R, col.G, col.B)
	for _, s := range segs {
		dc.DrawLine(s.X0, s.Y0, s.X1, s.Y1)
	}
	return dc.Stroke()
}
